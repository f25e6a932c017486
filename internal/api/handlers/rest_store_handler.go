package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/services"
)

// RestStoreHandler handles REST requests for crypto-accepting stores.
type RestStoreHandler struct {
	storeService services.IStoreService
}

// NewRestStoreHandler creates a new RestStoreHandler.
func NewRestStoreHandler(storeService services.IStoreService) *RestStoreHandler {
	return &RestStoreHandler{storeService: storeService}
}

// GetStores handles GET /v1/stores. An optional ?category= query narrows the
// result; an empty or absent value returns every store.
func (h *RestStoreHandler) GetStores(c *gin.Context) {
	stores, err := h.storeService.FetchAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stores"})
		return
	}

	var category *string
	if value := c.Query("category"); value != "" {
		category = &value
	}
	stores = services.FilterStoresByCategory(stores, category)

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}
