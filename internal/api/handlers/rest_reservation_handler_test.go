package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/api/handlers"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/api/middleware"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/tasks"
)

// futureDate formats a date n days from now for request payloads.
func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(time.RFC3339)
}

// asUser injects an authenticated user the way AuthMiddleware would.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Next()
	}
}

func reservationTestRouter(handler *handlers.RestReservationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/reservations/search", asUser("user-1"), handler.SearchOffers)
	r.POST("/v1/reservations", asUser("user-1"), handler.CreateReservation)
	r.GET("/v1/reservations", asUser("user-1"), handler.ListReservations)
	return r
}

func TestRestReservationHandler_SearchOffers(t *testing.T) {
	handler := handlers.NewRestReservationHandler(new(MockReservationService), new(MockUserService), nil)
	r := reservationTestRouter(handler)

	body, _ := json.Marshal(map[string]interface{}{
		"type":           "both",
		"destination":    "Phuket",
		"departure_date": futureDate(30),
		"adults":         2,
		"children":       2,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/reservations/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var respBody struct {
		Offers []models.Offer `json:"offers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	require.Len(t, respBody.Offers, 4)
	for _, offer := range respBody.Offers {
		assert.True(t, offer.Available)
		assert.Equal(t, "Phuket", offer.Destination)
	}
}

func TestRestReservationHandler_SearchOffers_MissingDestination(t *testing.T) {
	handler := handlers.NewRestReservationHandler(new(MockReservationService), new(MockUserService), nil)
	r := reservationTestRouter(handler)

	body, _ := json.Marshal(map[string]interface{}{
		"type":           "flight",
		"departure_date": futureDate(30),
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/reservations/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func createReservationBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"type":           "hotel",
		"destination":    "Phuket",
		"departure_date": futureDate(30),
		"return_date":    futureDate(34),
		"adults":         2,
		"children":       2,
		"provider":       "Hilton",
		"price":          5600,
	})
	return body
}

func TestRestReservationHandler_CreateReservation(t *testing.T) {
	mockResSvc := new(MockReservationService)
	mockUserSvc := new(MockUserService)
	mockEnqueuer := new(MockTaskEnqueuer)
	handler := handlers.NewRestReservationHandler(mockResSvc, mockUserSvc, mockEnqueuer)
	r := reservationTestRouter(handler)

	created := &models.Reservation{
		ID:               "res-1",
		UserID:           "user-1",
		Type:             models.TripTypeHotel,
		Destination:      "Phuket",
		Provider:         "Hilton",
		Price:            5600,
		BookingReference: "REF-ABC12345",
		Status:           models.ReservationStatusPending,
		CreatedAt:        time.Now().UTC(),
	}
	mockResSvc.On("Create", mock.Anything, "user-1", mock.Anything).Return(created, nil)
	mockUserSvc.On("FindByID", mock.Anything, "user-1").
		Return(&models.User{ID: "user-1", Email: "alice@example.com"}, nil)
	mockEnqueuer.On("Enqueue", mock.Anything, mock.Anything).Return(&asynq.TaskInfo{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/reservations", bytes.NewReader(createReservationBody()))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var respBody models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Equal(t, "REF-ABC12345", respBody.BookingReference)
	assert.Equal(t, models.ReservationStatusPending, respBody.Status)
	mockResSvc.AssertExpectations(t)
	mockEnqueuer.AssertCalled(t, "Enqueue", mock.MatchedBy(func(task *asynq.Task) bool {
		return task.Type() == tasks.TypeEmailDelivery
	}), mock.Anything)
}

func TestRestReservationHandler_CreateReservation_ReturnBeforeDeparture(t *testing.T) {
	mockResSvc := new(MockReservationService)
	handler := handlers.NewRestReservationHandler(mockResSvc, new(MockUserService), nil)
	r := reservationTestRouter(handler)

	body, _ := json.Marshal(map[string]interface{}{
		"type":           "flight",
		"destination":    "Phuket",
		"departure_date": futureDate(40),
		"return_date":    futureDate(30),
		"adults":         1,
		"provider":       "Thai Airways",
		"price":          12500,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/reservations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockResSvc.AssertNotCalled(t, "Create")
}

func TestRestReservationHandler_CreateReservation_RejectsBothType(t *testing.T) {
	mockResSvc := new(MockReservationService)
	handler := handlers.NewRestReservationHandler(mockResSvc, new(MockUserService), nil)
	r := reservationTestRouter(handler)

	// "both" is a search filter, never a bookable type.
	body, _ := json.Marshal(map[string]interface{}{
		"type":           "both",
		"destination":    "Phuket",
		"departure_date": futureDate(30),
		"adults":         1,
		"provider":       "Thai Airways",
		"price":          12500,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/reservations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockResSvc.AssertNotCalled(t, "Create")
}

func TestRestReservationHandler_CreateReservation_InsertFailure(t *testing.T) {
	mockResSvc := new(MockReservationService)
	mockEnqueuer := new(MockTaskEnqueuer)
	handler := handlers.NewRestReservationHandler(mockResSvc, new(MockUserService), mockEnqueuer)
	r := reservationTestRouter(handler)

	mockResSvc.On("Create", mock.Anything, "user-1", mock.Anything).
		Return(nil, errors.New("insert failed"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/reservations", bytes.NewReader(createReservationBody()))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockEnqueuer.AssertNotCalled(t, "Enqueue")
}

func TestRestReservationHandler_ListReservations(t *testing.T) {
	mockResSvc := new(MockReservationService)
	handler := handlers.NewRestReservationHandler(mockResSvc, new(MockUserService), nil)
	r := reservationTestRouter(handler)

	mockResSvc.On("ListByUser", mock.Anything, "user-1").Return([]models.Reservation{
		{ID: "res-2", Destination: "Krabi"},
		{ID: "res-1", Destination: "Phuket"},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/reservations", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var respBody struct {
		Reservations []models.Reservation `json:"reservations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	require.Len(t, respBody.Reservations, 2)
	assert.Equal(t, "res-2", respBody.Reservations[0].ID)
}
