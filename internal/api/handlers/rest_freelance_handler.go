package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/services"
)

// RestFreelanceHandler handles the freelancer directory endpoints.
type RestFreelanceHandler struct {
	freelanceService services.IFreelanceService
}

// NewRestFreelanceHandler creates a new RestFreelanceHandler.
func NewRestFreelanceHandler(freelanceService services.IFreelanceService) *RestFreelanceHandler {
	return &RestFreelanceHandler{freelanceService: freelanceService}
}

// GetFreelancers handles GET /v1/freelance/freelancers with optional q and
// category query filters.
func (h *RestFreelanceHandler) GetFreelancers(c *gin.Context) {
	filter := services.FreelancerFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}
	freelancers := h.freelanceService.Search(filter)
	c.JSON(http.StatusOK, gin.H{"freelancers": freelancers})
}
