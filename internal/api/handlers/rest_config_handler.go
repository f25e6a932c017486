package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/services"
)

// RestConfigHandler handles the runtime settings endpoints.
type RestConfigHandler struct {
	configService services.IConfigService
}

// NewRestConfigHandler creates a new RestConfigHandler.
func NewRestConfigHandler(configService services.IConfigService) *RestConfigHandler {
	return &RestConfigHandler{configService: configService}
}

// GetMapToken handles GET /v1/config/map. Until an admin has stored a map
// provider token the endpoint answers 404 and clients keep map features
// hidden.
func (h *RestConfigHandler) GetMapToken(c *gin.Context) {
	token, err := h.configService.GetString(c.Request.Context(), services.MapAccessTokenKey)
	if err != nil {
		if errors.Is(err, services.ErrConfigKeyNotSet) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Map access token not configured"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve map configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"map_access_token": token})
}

// SetMapTokenRequest carries the new map provider token.
type SetMapTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// SetMapToken handles PUT /v1/config/map, admin only.
func (h *RestConfigHandler) SetMapToken(c *gin.Context) {
	var req SetMapTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	if err := h.configService.Set(c.Request.Context(), services.MapAccessTokenKey, req.Token); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store map configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Map access token updated"})
}
