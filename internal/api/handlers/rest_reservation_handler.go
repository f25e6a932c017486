package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/api/middleware"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/services"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/tasks"
)

// ITaskEnqueuer is the slice of the asynq client the handlers need.
// Satisfied by *asynq.Client.
type ITaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RestReservationHandler handles the travel booking endpoints.
type RestReservationHandler struct {
	reservationService services.IReservationService
	userService        services.IUserService
	taskClient         ITaskEnqueuer
}

// NewRestReservationHandler creates a new RestReservationHandler.
func NewRestReservationHandler(reservationService services.IReservationService, userService services.IUserService, taskClient ITaskEnqueuer) *RestReservationHandler {
	return &RestReservationHandler{
		reservationService: reservationService,
		userService:        userService,
		taskClient:         taskClient,
	}
}

// SearchOffers handles POST /v1/reservations/search. The body carries the
// search form; the response is the offer set for these criteria.
func (h *RestReservationHandler) SearchOffers(c *gin.Context) {
	var criteria services.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search payload: " + err.Error()})
		return
	}
	if err := criteria.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offers := services.SearchOffers(criteria)
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// CreateReservationRequest is the booking confirmation payload. The "both"
// trip type exists only for searching; a booking is always a single offer.
type CreateReservationRequest struct {
	Type          models.TripType `json:"type" binding:"required,oneof=flight hotel"`
	Destination   string          `json:"destination" binding:"required"`
	DepartureDate time.Time       `json:"departure_date" binding:"required"`
	ReturnDate    *time.Time      `json:"return_date,omitempty"`
	Adults        int             `json:"adults" binding:"required,min=1"`
	Children      int             `json:"children" binding:"min=0"`
	Provider      string          `json:"provider" binding:"required"`
	Price         int64           `json:"price" binding:"required,min=0"`
}

// CreateReservation handles POST /v1/reservations. It records the booking
// with a fresh reference and enqueues the confirmation email.
func (h *RestReservationHandler) CreateReservation(c *gin.Context) {
	userID := c.GetString(middleware.ContextKeyUserID)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation payload: " + err.Error()})
		return
	}
	if req.ReturnDate != nil && req.ReturnDate.Before(req.DepartureDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Return date must not precede departure date"})
		return
	}

	reservation := &models.Reservation{
		Type:          req.Type,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Provider:      req.Provider,
		Price:         req.Price,
	}
	created, err := h.reservationService.Create(c.Request.Context(), userID, reservation)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}

	h.enqueueConfirmationEmail(c, userID, created)

	c.JSON(http.StatusCreated, created)
}

// ListReservations handles GET /v1/reservations, newest first.
func (h *RestReservationHandler) ListReservations(c *gin.Context) {
	userID := c.GetString(middleware.ContextKeyUserID)

	reservations, err := h.reservationService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// enqueueConfirmationEmail queues the booking confirmation. Failure to queue
// never fails the booking; it is logged and the task is lost.
func (h *RestReservationHandler) enqueueConfirmationEmail(c *gin.Context, userID string, reservation *models.Reservation) {
	if h.taskClient == nil {
		return
	}
	user, err := h.userService.FindByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Could not look up user %s for confirmation email: %v", userID, err)
		return
	}
	task, err := tasks.NewEmailDeliveryTask(user.Email, tasks.TemplateBookingConfirmed, map[string]interface{}{
		"reference":   reservation.BookingReference,
		"destination": reservation.Destination,
		"provider":    reservation.Provider,
		"total":       fmt.Sprintf("%d", reservation.Total()),
	})
	if err != nil {
		log.Printf("Could not build confirmation email task: %v", err)
		return
	}
	if _, err := h.taskClient.Enqueue(task); err != nil {
		log.Printf("Could not enqueue confirmation email for %s: %v", reservation.BookingReference, err)
	}
}
