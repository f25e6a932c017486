package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/api/middleware"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/services"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/tasks"
)

// RestVerificationHandler handles identity verification uploads.
type RestVerificationHandler struct {
	verificationService services.IVerificationService
	taskClient          ITaskEnqueuer
}

// NewRestVerificationHandler creates a new RestVerificationHandler.
func NewRestVerificationHandler(verificationService services.IVerificationService, taskClient ITaskEnqueuer) *RestVerificationHandler {
	return &RestVerificationHandler{
		verificationService: verificationService,
		taskClient:          taskClient,
	}
}

// SubmitVerification handles POST /v1/verifications as a multipart form with
// fields document_type, consent and document.
func (h *RestVerificationHandler) SubmitVerification(c *gin.Context) {
	userID := c.GetString(middleware.ContextKeyUserID)

	consent, _ := strconv.ParseBool(c.PostForm("consent"))
	docType := models.DocumentType(c.PostForm("document_type"))

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A document file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	upload := services.DocumentUpload{
		DocumentType: docType,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Body:         file,
		Consent:      consent,
	}
	verification, err := h.verificationService.Submit(c.Request.Context(), userID, upload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConsentRequired),
			errors.Is(err, services.ErrUnsupportedDocumentFmt),
			errors.Is(err, services.ErrDocumentTooLarge),
			errors.Is(err, services.ErrDocumentTypeMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit verification"})
		}
		return
	}

	h.enqueueThumbnail(verification.DocumentPath, upload.ContentType)

	c.JSON(http.StatusCreated, verification)
}

// GetLatestVerification handles GET /v1/verifications/latest.
func (h *RestVerificationHandler) GetLatestVerification(c *gin.Context) {
	userID := c.GetString(middleware.ContextKeyUserID)

	verification, err := h.verificationService.Latest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNoVerification) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No verification request found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve verification"})
		return
	}
	c.JSON(http.StatusOK, verification)
}

func (h *RestVerificationHandler) enqueueThumbnail(key, contentType string) {
	if h.taskClient == nil {
		return
	}
	task, err := tasks.NewDocumentThumbnailTask(key, contentType)
	if err != nil {
		log.Printf("Could not build thumbnail task for %s: %v", key, err)
		return
	}
	if _, err := h.taskClient.Enqueue(task); err != nil {
		log.Printf("Could not enqueue thumbnail task for %s: %v", key, err)
	}
}
