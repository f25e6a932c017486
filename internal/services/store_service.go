package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
)

// IStoreService defines the interface for store-locator operations.
type IStoreService interface {
	FetchAll(ctx context.Context) ([]models.Store, error)
}

const storesCollection = "stores"

// storeService implements IStoreService.
type storeService struct {
	db *mongo.Database
}

// NewStoreService creates a new StoreService.
func NewStoreService(db *mongo.Database) IStoreService {
	return &storeService{db: db}
}

// FetchAll reads every store row in one pass. The dataset is small enough
// that the locator holds it in memory; there is no pagination.
func (s *storeService) FetchAll(ctx context.Context) ([]models.Store, error) {
	cursor, err := s.db.Collection(storesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	defer cursor.Close(ctx)

	var stores []models.Store
	if err = cursor.All(ctx, &stores); err != nil {
		return nil, fmt.Errorf("failed to decode stores: %w", err)
	}
	return stores, nil
}

// FilterStoresByCategory returns the subset of stores whose category equals
// the selector. A nil selector returns the full input, unchanged.
func FilterStoresByCategory(stores []models.Store, category *string) []models.Store {
	if category == nil {
		return stores
	}
	filtered := make([]models.Store, 0, len(stores))
	for _, store := range stores {
		if store.Category != nil && *store.Category == *category {
			filtered = append(filtered, store)
		}
	}
	return filtered
}
