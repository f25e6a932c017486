package services

import (
	"strings"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
)

// Price bands used by the marketplace filter, in THB.
const (
	PriceBandLowCeiling    = 500000
	PriceBandMediumCeiling = 2000000
)

// marketplaceCatalogue is the static listing inventory. There is no seller
// flow yet, so the catalogue ships with the binary.
var marketplaceCatalogue = []models.Listing{
	{
		ID:          "car-1",
		Title:       "Toyota Camry 2022",
		Description: "Well-maintained sedan, single owner, full service history.",
		Price:       950000,
		Type:        models.ListingTypeCar,
		Image:       "/images/marketplace/camry.jpg",
		IsRental:    false,
		Location:    "Bangkok",
		Features:    []string{"Automatic", "Hybrid", "45,000 km"},
	},
	{
		ID:          "car-2",
		Title:       "Honda Civic 2021",
		Description: "Sporty hatchback in excellent condition, crypto payment welcome.",
		Price:       850000,
		Type:        models.ListingTypeCar,
		Image:       "/images/marketplace/civic.jpg",
		IsRental:    false,
		Location:    "Chiang Mai",
		Features:    []string{"Automatic", "Turbo", "38,000 km"},
	},
	{
		ID:          "car-3",
		Title:       "Mazda 2 — Monthly Rental",
		Description: "Compact city car, insurance included, flexible terms.",
		Price:       45000,
		Type:        models.ListingTypeCar,
		Image:       "/images/marketplace/mazda2.jpg",
		IsRental:    true,
		Location:    "Phuket",
		Features:    []string{"Automatic", "Insurance included", "Unlimited mileage"},
	},
	{
		ID:          "car-4",
		Title:       "Ford Ranger 2023",
		Description: "Pickup truck, barely used, ideal for upcountry trips.",
		Price:       1200000,
		Type:        models.ListingTypeCar,
		Image:       "/images/marketplace/ranger.jpg",
		IsRental:    false,
		Location:    "Khon Kaen",
		Features:    []string{"4WD", "Diesel", "12,000 km"},
	},
	{
		ID:          "prop-1",
		Title:       "Condo in Sukhumvit",
		Description: "One-bedroom condo near BTS, city view, fully furnished.",
		Price:       3500000,
		Type:        models.ListingTypeProperty,
		Image:       "/images/marketplace/sukhumvit.jpg",
		IsRental:    false,
		Location:    "Bangkok",
		Features:    []string{"1 bedroom", "35 sqm", "Near BTS"},
	},
	{
		ID:          "prop-2",
		Title:       "House in Chiang Mai",
		Description: "Detached two-storey house with garden in a quiet soi.",
		Price:       5200000,
		Type:        models.ListingTypeProperty,
		Image:       "/images/marketplace/cnxhouse.jpg",
		IsRental:    false,
		Location:    "Chiang Mai",
		Features:    []string{"3 bedrooms", "2 bathrooms", "200 sqm land"},
	},
	{
		ID:          "prop-3",
		Title:       "Beachfront Apartment — Monthly Rental",
		Description: "Sea-view apartment steps from the beach, pool access.",
		Price:       15000,
		Type:        models.ListingTypeProperty,
		Image:       "/images/marketplace/beachfront.jpg",
		IsRental:    true,
		Location:    "Pattaya",
		Features:    []string{"Studio", "Sea view", "Pool"},
	},
	{
		ID:          "prop-4",
		Title:       "Townhouse in Phuket",
		Description: "Modern townhouse in a gated community near Kathu.",
		Price:       4200000,
		Type:        models.ListingTypeProperty,
		Image:       "/images/marketplace/phukettown.jpg",
		IsRental:    false,
		Location:    "Phuket",
		Features:    []string{"2 bedrooms", "Gated community", "Parking"},
	},
}

// ListingFilter narrows the marketplace catalogue. Zero values mean "any".
type ListingFilter struct {
	Type       models.ListingType `form:"type"`
	PriceRange string             `form:"price_range"` // low | medium | high
	IsRental   *bool              `form:"is_rental"`
}

type IMarketplaceService interface {
	Listings(filter ListingFilter) []models.Listing
}

type marketplaceService struct{}

func NewMarketplaceService() IMarketplaceService {
	return &marketplaceService{}
}

// Listings returns the catalogue entries matching the filter. All
// predicates are conjunctive.
func (s *marketplaceService) Listings(filter ListingFilter) []models.Listing {
	matched := make([]models.Listing, 0, len(marketplaceCatalogue))
	for _, listing := range marketplaceCatalogue {
		if filter.Type != "" && listing.Type != filter.Type {
			continue
		}
		if filter.IsRental != nil && listing.IsRental != *filter.IsRental {
			continue
		}
		if !matchesPriceBand(listing.Price, filter.PriceRange) {
			continue
		}
		matched = append(matched, listing)
	}
	return matched
}

func matchesPriceBand(price int64, band string) bool {
	switch strings.ToLower(band) {
	case "":
		return true
	case "low":
		return price < PriceBandLowCeiling
	case "medium":
		return price >= PriceBandLowCeiling && price < PriceBandMediumCeiling
	case "high":
		return price >= PriceBandMediumCeiling
	default:
		return true
	}
}
