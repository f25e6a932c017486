package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/auth"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/config"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/db"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
)

const usersCollection = "users"

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrResetTokenInvalid  = errors.New("password reset token is invalid or expired")
)

type IUserService interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CreateResetToken(ctx context.Context, userID string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type userService struct {
	db     *mongo.Database
	rdb    *redis.Client
	config *config.Config
}

func NewUserService(db *mongo.Database, rdb *redis.Client, config *config.Config) IUserService {
	return &userService{db: db, rdb: rdb, config: config}
}

// SignUp registers a new account. Uniqueness is enforced by the unique email
// index; a duplicate key surfaces as ErrEmailTaken.
func (s *userService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = db.Try(func() error {
		user.ID = uuid.NewString()
		_, err := s.db.Collection(usersCollection).InsertOne(ctx, user)
		return err
	})
	if err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate checks the credentials against the stored hash. A missing
// account and a wrong password return the same error.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateResetToken mints a one-time password reset token and stores it in
// Redis with a short TTL.
func (s *userService) CreateResetToken(ctx context.Context, userID string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	err := s.rdb.Set(ctx, resetTokenKey(token), userID, s.config.ResetTokenTTL).Err()
	if err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// ResetPassword consumes a reset token and replaces the account password.
func (s *userService) ResetPassword(ctx context.Context, token, newPassword string) error {
	key := resetTokenKey(token)
	userID, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	_, err = s.db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	// Single use: drop the token once spent.
	s.rdb.Del(ctx, key)
	return nil
}

func resetTokenKey(token string) string {
	return "reset:" + token
}
