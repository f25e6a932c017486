package models

import (
	"time"
)

// Store represents a point-of-interest accepting crypto payments, rendered
// on the store-locator map. Rows are read-only from the API's perspective
// apart from seeding.
type Store struct {
	ID             string    `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string    `bson:"name" json:"name"`
	Address        string    `bson:"address" json:"address"`
	Latitude       float64   `bson:"latitude" json:"latitude"`
	Longitude      float64   `bson:"longitude" json:"longitude"`
	Category       *string   `bson:"category,omitempty" json:"category,omitempty"` // e.g. "restaurant", "retail"
	AcceptedCrypto []string  `bson:"accepted_crypto" json:"accepted_crypto"`
	Phone          *string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Website        *string   `bson:"website,omitempty" json:"website,omitempty"`
	OpeningHours   *string   `bson:"opening_hours,omitempty" json:"opening_hours,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
