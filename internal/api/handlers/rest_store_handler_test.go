package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/api/handlers"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
)

func strPtr(s string) *string { return &s }

func storeFixtures() []models.Store {
	return []models.Store{
		{ID: "s1", Name: "Crypto Cafe", Category: strPtr("restaurant")},
		{ID: "s2", Name: "Token Hotel", Category: strPtr("hotel")},
		{ID: "s3", Name: "Satoshi Noodles", Category: strPtr("restaurant")},
	}
}

func TestRestStoreHandler_GetStores(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockStoreSvc := new(MockStoreService)
	handler := handlers.NewRestStoreHandler(mockStoreSvc)

	r := gin.New()
	r.GET("/v1/stores", handler.GetStores)

	mockStoreSvc.On("FetchAll", mock.Anything).Return(storeFixtures(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/stores", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var respBody struct {
		Stores []models.Store `json:"stores"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Len(t, respBody.Stores, 3)
	mockStoreSvc.AssertExpectations(t)
}

func TestRestStoreHandler_GetStores_CategoryFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockStoreSvc := new(MockStoreService)
	handler := handlers.NewRestStoreHandler(mockStoreSvc)

	r := gin.New()
	r.GET("/v1/stores", handler.GetStores)

	mockStoreSvc.On("FetchAll", mock.Anything).Return(storeFixtures(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/stores?category=restaurant", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var respBody struct {
		Stores []models.Store `json:"stores"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	require.Len(t, respBody.Stores, 2)
	for _, store := range respBody.Stores {
		assert.Equal(t, "restaurant", *store.Category)
	}
}

func TestRestStoreHandler_GetStores_FetchError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockStoreSvc := new(MockStoreService)
	handler := handlers.NewRestStoreHandler(mockStoreSvc)

	r := gin.New()
	r.GET("/v1/stores", handler.GetStores)

	mockStoreSvc.On("FetchAll", mock.Anything).Return(nil, errors.New("db down"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/stores", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
