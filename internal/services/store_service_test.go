package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/utils"
)

func strPtr(s string) *string { return &s }

func testStores() []models.Store {
	return []models.Store{
		{ID: "s1", Name: "Crypto Cafe", Category: strPtr("restaurant")},
		{ID: "s2", Name: "Token Hotel", Category: strPtr("hotel")},
		{ID: "s3", Name: "Satoshi Noodles", Category: strPtr("restaurant")},
		{ID: "s4", Name: "Uncategorized Kiosk", Category: nil},
	}
}

func TestFilterStoresByCategory(t *testing.T) {
	stores := testStores()

	// No selector returns the full set untouched.
	all := FilterStoresByCategory(stores, nil)
	assert.Len(t, all, 4)

	restaurants := FilterStoresByCategory(stores, strPtr("restaurant"))
	require.Len(t, restaurants, 2)
	assert.Equal(t, "s1", restaurants[0].ID)
	assert.Equal(t, "s3", restaurants[1].ID)

	// Stores without a category never match a selector.
	hotels := FilterStoresByCategory(stores, strPtr("hotel"))
	require.Len(t, hotels, 1)
	assert.Equal(t, "s2", hotels[0].ID)

	assert.Empty(t, FilterStoresByCategory(stores, strPtr("pharmacy")))
	assert.Empty(t, FilterStoresByCategory(nil, strPtr("restaurant")))
}

func TestStoreService_FetchAll(t *testing.T) {
	db := utils.SetupTestDB(t, "testdb_store_service", storesCollection)
	svc := NewStoreService(db)
	ctx := context.Background()

	stores, err := svc.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, stores)

	for _, store := range testStores() {
		_, err := db.Collection(storesCollection).InsertOne(ctx, store)
		require.NoError(t, err)
	}

	stores, err = svc.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 4)
}
