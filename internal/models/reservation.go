package models

import (
	"time"
)

// TripType distinguishes what kind of travel product a search or booking
// refers to.
type TripType string

const (
	TripTypeFlight TripType = "flight"
	TripTypeHotel  TripType = "hotel"
	TripTypeBoth   TripType = "both" // search-only; a booking is always one or the other
)

// Reservation statuses. The status is set server-side on insert and only ever
// transitioned by back-office tooling, never by this API's clients.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

// Offer is a synthetic flight/hotel search result. Offers are generated from
// a fixed provider catalogue and are not tied to real inventory.
type Offer struct {
	ID            string     `json:"id"`
	Type          TripType   `json:"type"` // flight or hotel
	Provider      string     `json:"provider"`
	Destination   string     `json:"destination"`
	DepartureDate time.Time  `json:"departure_date"` // check-in for hotels
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	Price         int64      `json:"price"`
	Available     bool       `json:"available"`
	RoomType      string     `json:"room_type,omitempty"` // hotels only
}

// IsHotel reports whether the offer is a hotel stay (dates read as
// check-in/check-out rather than departure/return).
func (o *Offer) IsHotel() bool { return o.Type == TripTypeHotel }

// Tax returns the 7% tax on the offer price, rounded to the nearest unit.
func (o *Offer) Tax() int64 {
	return int64(float64(o.Price)*0.07 + 0.5)
}

// Total returns the price including tax, rounded to the nearest unit.
func (o *Offer) Total() int64 {
	return int64(float64(o.Price)*1.07 + 0.5)
}

// Reservation is a confirmed booking row in the `reservations` collection.
type Reservation struct {
	ID               string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           string     `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Type             TripType   `bson:"type" json:"type"`
	Destination      string     `bson:"destination" json:"destination"`
	DepartureDate    time.Time  `bson:"departure_date" json:"departure_date"`
	ReturnDate       *time.Time `bson:"return_date,omitempty" json:"return_date,omitempty"`
	Adults           int        `bson:"adults" json:"adults"`
	Children         int        `bson:"children" json:"children"`
	Provider         string     `bson:"provider" json:"provider"`
	Price            int64      `bson:"price" json:"price"`
	BookingReference string     `bson:"booking_reference" json:"booking_reference"`
	Status           string     `bson:"status" json:"status"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at"`
}

// Tax returns the 7% tax on the booked price, rounded to the nearest unit.
func (r *Reservation) Tax() int64 {
	return int64(float64(r.Price)*0.07 + 0.5)
}

// Total returns the booked price including tax, rounded to the nearest unit.
func (r *Reservation) Total() int64 {
	return int64(float64(r.Price)*1.07 + 0.5)
}
