package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/config"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/utils"
)

func setupUserTestDB(t *testing.T, dbName string) *mongo.Database {
	db := utils.SetupTestDB(t, dbName, usersCollection)
	// Production relies on the unique email index; recreate it here.
	_, err := db.Collection(usersCollection).Indexes().CreateOne(
		context.Background(),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	require.NoError(t, err)
	return db
}

func TestUserService_SignUpAndAuthenticate(t *testing.T) {
	db := setupUserTestDB(t, "testdb_user_service_signup")
	svc := NewUserService(db, nil, &config.Config{})
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "alice@example.com", "correct horse battery")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	// Same email again is rejected.
	_, err = svc.SignUp(ctx, "alice@example.com", "another password")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Right credentials succeed.
	authed, err := svc.Authenticate(ctx, "alice@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	// Wrong password and unknown account return the same error.
	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_FindByEmail(t *testing.T) {
	db := setupUserTestDB(t, "testdb_user_service_find")
	svc := NewUserService(db, nil, &config.Config{})
	ctx := context.Background()

	created, err := svc.SignUp(ctx, "bob@example.com", "a long password")
	require.NoError(t, err)

	byEmail, err := svc.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", byID.Email)

	_, err = svc.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}
