package models

// ListingType is the marketplace item category.
type ListingType string

const (
	ListingTypeCar      ListingType = "car"
	ListingTypeProperty ListingType = "property"
)

// Listing is a marketplace item (car or property, for sale or rent). The
// marketplace dataset is static and held in memory; listings are never
// persisted or mutated.
type Listing struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       int64       `json:"price"`
	Type        ListingType `json:"type"`
	Image       string      `json:"image"`
	IsRental    bool        `json:"is_rental"`
	Location    string      `json:"location"`
	Features    []string    `json:"features"`
}
