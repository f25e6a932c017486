package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/services"
)

// RestMarketplaceHandler handles the marketplace listing endpoints.
type RestMarketplaceHandler struct {
	marketplaceService services.IMarketplaceService
}

// NewRestMarketplaceHandler creates a new RestMarketplaceHandler.
func NewRestMarketplaceHandler(marketplaceService services.IMarketplaceService) *RestMarketplaceHandler {
	return &RestMarketplaceHandler{marketplaceService: marketplaceService}
}

// GetListings handles GET /v1/marketplace/listings with optional type,
// price_range and is_rental query filters.
func (h *RestMarketplaceHandler) GetListings(c *gin.Context) {
	filter := services.ListingFilter{
		Type:       models.ListingType(c.Query("type")),
		PriceRange: c.Query("price_range"),
	}
	if raw := c.Query("is_rental"); raw != "" {
		isRental, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_rental must be true or false"})
			return
		}
		filter.IsRental = &isRental
	}

	listings := h.marketplaceService.Listings(filter)
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}
