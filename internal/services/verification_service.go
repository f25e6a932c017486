package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/config"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/db"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/storage"
)

const verificationsCollection = "verifications"

// Verification submission errors, all raised before any network call.
var (
	ErrConsentRequired        = errors.New("consent is required before submitting a document")
	ErrUnsupportedDocumentFmt = errors.New("document must be a PDF, JPEG or PNG file")
	ErrDocumentTooLarge       = errors.New("document exceeds the maximum allowed size")
	ErrDocumentTypeMismatch   = errors.New("document content does not match its declared type")
	ErrNoVerification         = errors.New("no verification request found")
)

var documentExtensions = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/png":       "png",
}

// DocumentUpload is a verification document submission.
type DocumentUpload struct {
	DocumentType models.DocumentType
	ContentType  string
	Size         int64
	Body         io.Reader
	Consent      bool
}

type IVerificationService interface {
	Submit(ctx context.Context, userID string, upload DocumentUpload) (*models.Verification, error)
	Latest(ctx context.Context, userID string) (*models.Verification, error)
}

type verificationService struct {
	db      *mongo.Database
	storage storage.IS3Storage
	config  *config.Config
}

func NewVerificationService(db *mongo.Database, s3 storage.IS3Storage, config *config.Config) IVerificationService {
	return &verificationService{db: db, storage: s3, config: config}
}

// Submit stores a verification document and records a pending review row.
// All local checks (consent, format, size, magic-byte sniff) run before
// anything touches the network. The upload and the insert are two independent steps with no
// transaction across them: a crash between the two leaves an orphaned object
// in the bucket, which a periodic cleanup would have to reap.
func (s *verificationService) Submit(ctx context.Context, userID string, upload DocumentUpload) (*models.Verification, error) {
	if !upload.Consent {
		return nil, ErrConsentRequired
	}
	if !upload.DocumentType.IsValid() {
		return nil, fmt.Errorf("unknown document type %q", upload.DocumentType)
	}
	ext, ok := documentExtensions[upload.ContentType]
	if !ok {
		return nil, ErrUnsupportedDocumentFmt
	}
	maxSize := int64(s.config.DocumentMaxSizeMB) * 1024 * 1024
	if upload.Size > maxSize {
		return nil, ErrDocumentTooLarge
	}

	// Read through a limited reader so a lying Content-Length header cannot
	// push an oversized body into the bucket.
	body, err := io.ReadAll(io.LimitReader(upload.Body, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if int64(len(body)) > maxSize {
		return nil, ErrDocumentTooLarge
	}
	// The declared Content-Type is client-controlled; the magic bytes are not.
	if http.DetectContentType(body) != upload.ContentType {
		return nil, ErrDocumentTypeMismatch
	}

	key := fmt.Sprintf("%s/%s_%d.%s", userID, upload.DocumentType, time.Now().Unix(), ext)
	if err := s.storage.UploadObject(ctx, key, upload.ContentType, bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	verification := &models.Verification{
		UserID:       userID,
		DocumentType: upload.DocumentType,
		DocumentPath: key,
		Status:       models.VerificationStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	err = db.Try(func() error {
		verification.ID = uuid.NewString()
		_, err := s.db.Collection(verificationsCollection).InsertOne(ctx, verification)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record verification request: %w", err)
	}
	return verification, nil
}

// Latest returns the user's most recent verification request.
func (s *verificationService) Latest(ctx context.Context, userID string) (*models.Verification, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var verification models.Verification
	err := s.db.Collection(verificationsCollection).
		FindOne(ctx, bson.M{"user_id": userID}, opts).
		Decode(&verification)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoVerification
		}
		return nil, fmt.Errorf("failed to fetch verification: %w", err)
	}
	return &verification, nil
}
