package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/config"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/db"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/utils"
)

// IReservationService defines the interface for reservation persistence.
type IReservationService interface {
	Create(ctx context.Context, userID string, res *models.Reservation) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
}

const reservationsCollection = "reservations"

// reservationService implements IReservationService.
type reservationService struct {
	db  *mongo.Database
	cfg *config.Config
}

// NewReservationService creates a new ReservationService.
func NewReservationService(db *mongo.Database, cfg *config.Config) IReservationService {
	return &reservationService{db: db, cfg: cfg}
}

// Create inserts one reservation row. The status is always set server-side to
// pending; a booking reference is generated when the caller did not provide
// one. No idempotency key is attached: a retried confirm after a lost
// response produces a second booking (known gap, carried over deliberately).
func (s *reservationService) Create(ctx context.Context, userID string, res *models.Reservation) (*models.Reservation, error) {
	collection := s.db.Collection(reservationsCollection)
	now := time.Now().UTC()

	var inserted *models.Reservation

	operation := func() error {
		r := *res
		r.ID = uuid.NewString()
		r.UserID = userID
		r.Status = models.ReservationStatusPending
		r.CreatedAt = now
		if r.BookingReference == "" {
			r.BookingReference = utils.NewBookingReference()
		}
		inserted = &r
		_, insertErr := collection.InsertOne(ctx, &r)
		return insertErr
	}

	if err := db.Try(operation); err != nil {
		return nil, fmt.Errorf("failed to insert reservation for user %s: %w", userID, err)
	}

	return inserted, nil
}

// ListByUser returns the user's reservations, newest first.
func (s *reservationService) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	collection := s.db.Collection(reservationsCollection)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}
