package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/config"
)

const (
	configCollection    = "configuration"
	configUpdateChannel = "config_updates"

	// MapAccessTokenKey is the runtime setting holding the map provider
	// access token. Map features stay disabled until an admin sets it.
	MapAccessTokenKey = "map_access_token"
)

// ErrConfigKeyNotSet is returned when a runtime setting has never been set.
var ErrConfigKeyNotSet = errors.New("configuration key not set")

// IConfigService gives access to runtime settings stored in the database,
// cached in memory and refreshed through Redis Pub/Sub.
type IConfigService interface {
	Load(ctx context.Context) error
	SubscribeToChanges(ctx context.Context) error
	GetString(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type configService struct {
	db    *mongo.Database
	cfg   *config.Config
	rdb   *redis.Client
	cache map[string]string
	mutex sync.RWMutex
}

// NewConfigService creates the service and primes its cache from the DB. A
// failed initial load is logged, not fatal: settings simply read as unset
// until the next reload.
func NewConfigService(db *mongo.Database, initialCfg *config.Config, rdb *redis.Client) IConfigService {
	s := &configService{
		db:    db,
		cfg:   initialCfg,
		rdb:   rdb,
		cache: make(map[string]string),
	}
	if err := s.Load(context.Background()); err != nil {
		log.Printf("WARNING: failed to load runtime settings from DB: %v", err)
	}
	go func() {
		if err := s.SubscribeToChanges(context.Background()); err != nil {
			log.Printf("CRITICAL: settings Pub/Sub listener stopped: %v", err)
		}
	}()
	return s
}

// ConfigEntry is a document in the configuration collection.
type ConfigEntry struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

// Load replaces the in-memory cache with the configuration collection.
func (s *configService) Load(ctx context.Context) error {
	cursor, err := s.db.Collection(configCollection).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to query configuration collection: %w", err)
	}
	defer cursor.Close(ctx)

	newCache := make(map[string]string)
	for cursor.Next(ctx) {
		var entry ConfigEntry
		if err := cursor.Decode(&entry); err != nil {
			log.Printf("Warning: failed to decode configuration entry: %v", err)
			continue
		}
		newCache[entry.Key] = entry.Value
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("error iterating configuration cursor: %w", err)
	}

	s.mutex.Lock()
	s.cache = newCache
	s.mutex.Unlock()
	return nil
}

// GetString returns a runtime setting from the cache.
func (s *configService) GetString(ctx context.Context, key string) (string, error) {
	s.mutex.RLock()
	val, exists := s.cache[key]
	s.mutex.RUnlock()
	if !exists || val == "" {
		return "", ErrConfigKeyNotSet
	}
	return val, nil
}

// Set upserts a runtime setting and notifies the other instances via Redis.
func (s *configService) Set(ctx context.Context, key, value string) error {
	filter := bson.M{"key": key}
	update := bson.M{"$set": bson.M{"key": key, "value": value}}
	opts := options.Update().SetUpsert(true)
	if _, err := s.db.Collection(configCollection).UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert configuration key %q: %w", key, err)
	}

	s.mutex.Lock()
	s.cache[key] = value
	s.mutex.Unlock()

	if s.rdb != nil {
		if err := s.rdb.Publish(ctx, configUpdateChannel, key).Err(); err != nil {
			log.Printf("Warning: failed to publish settings update for key %q: %v", key, err)
		}
	}
	return nil
}

// SubscribeToChanges reloads the cache whenever any instance publishes a
// settings update.
func (s *configService) SubscribeToChanges(ctx context.Context) error {
	if s.rdb == nil {
		log.Println("Redis client not configured, skipping settings update subscription.")
		return nil
	}

	pubsub := s.rdb.Subscribe(ctx, configUpdateChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to confirm Pub/Sub subscription: %w", err)
	}

	for msg := range pubsub.Channel() {
		log.Printf("Settings update received for key %q, reloading.", msg.Payload)
		if err := s.Load(context.Background()); err != nil {
			log.Printf("ERROR reloading runtime settings after notification: %v", err)
		}
	}
	return nil
}
