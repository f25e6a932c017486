package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/nfnt/resize"
	"github.com/redis/go-redis/v9"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/config"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/email"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/storage"
)

// Task types.
const (
	TypeEmailDelivery     = "email:deliver"
	TypeDocumentThumbnail = "document:thumbnail"
)

// Queue names. Emails ride the default queue; thumbnails go to their own so
// a backlog of image work cannot starve notifications.
const (
	QueueCritical   = "critical"
	QueueDefault    = "default"
	QueueThumbnails = "thumbnails"
)

// --- Task Client (enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	})
}

// EmailTaskPayload describes one outgoing notification email.
type EmailTaskPayload struct {
	To         string                 `json:"to"`
	TemplateID string                 `json:"template_id"`
	Data       map[string]interface{} `json:"data"`
}

// NewEmailDeliveryTask builds an email delivery task for the default queue.
func NewEmailDeliveryTask(to, templateID string, data map[string]interface{}) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailTaskPayload{To: to, TemplateID: templateID, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email payload: %w", err)
	}
	return asynq.NewTask(TypeEmailDelivery, payload, asynq.Queue(QueueDefault)), nil
}

// ThumbnailTaskPayload names the stored document to thumbnail.
type ThumbnailTaskPayload struct {
	S3Key       string `json:"s3_key"`
	ContentType string `json:"content_type"`
}

// NewDocumentThumbnailTask builds a thumbnail task for the thumbnails queue.
func NewDocumentThumbnailTask(s3Key, contentType string) (*asynq.Task, error) {
	payload, err := json.Marshal(ThumbnailTaskPayload{S3Key: s3Key, ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal thumbnail payload: %w", err)
	}
	return asynq.NewTask(TypeDocumentThumbnail, payload, asynq.Queue(QueueThumbnails)), nil
}

// --- Task Server (processing tasks) ---

// TaskProcessor holds the dependencies the task handlers need.
type TaskProcessor struct {
	cfg            *config.Config
	emailSender    email.Sender
	storageService storage.IS3Storage
}

func NewTaskProcessor(cfg *config.Config, emailSender email.Sender, storageService storage.IS3Storage) *TaskProcessor {
	return &TaskProcessor{
		cfg:            cfg,
		emailSender:    emailSender,
		storageService: storageService,
	}
}

// SetupServer configures an Asynq server, registers the handlers and starts
// it. The caller stops it with Shutdown.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) *asynq.Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     rdb.Options().Addr,
			Password: rdb.Options().Password,
			DB:       rdb.Options().DB,
		},
		asynq.Config{
			Queues: map[string]int{
				QueueCritical:   6,
				QueueDefault:    3,
				QueueThumbnails: 2,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq Error] Task Type: %s, Payload: %s, Error: %v", task.Type(), string(task.Payload()), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailDelivery, processor.HandleEmailDeliveryTask)
	mux.HandleFunc(TypeDocumentThumbnail, processor.HandleDocumentThumbnailTask)

	if err := srv.Start(mux); err != nil {
		log.Fatalf("Could not start Asynq server: %v", err)
	}
	return srv
}

// --- Task Handlers ---

// emailTemplate is a built-in notification template. Placeholders use the
// {{.key}} form and are substituted from the payload data.
type emailTemplate struct {
	Subject string
	Body    string
}

// Template IDs used by the services.
const (
	TemplateBookingConfirmed = "booking_confirmed"
	TemplatePasswordReset    = "password_reset"
)

var emailTemplates = map[string]emailTemplate{
	TemplateBookingConfirmed: {
		Subject: "Your booking {{.reference}} is confirmed",
		Body: "Hello,\r\n\r\n" +
			"Your reservation to {{.destination}} with {{.provider}} has been received.\r\n" +
			"Booking reference: {{.reference}}\r\n" +
			"Total charged (incl. 7% tax): {{.total}} THB\r\n\r\n" +
			"Thank you for booking with {{.app_name}}.",
	},
	TemplatePasswordReset: {
		Subject: "Reset your {{.app_name}} password",
		Body: "Hello,\r\n\r\n" +
			"A password reset was requested for your account. Use the token below " +
			"within {{.ttl_minutes}} minutes:\r\n\r\n{{.token}}\r\n\r\n" +
			"If you did not request this, you can ignore this message.",
	},
}

// HandleEmailDeliveryTask renders a built-in template and hands the raw
// message to the configured sender.
func (p *TaskProcessor) HandleEmailDeliveryTask(ctx context.Context, t *asynq.Task) error {
	var payload EmailTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal email task payload: %v: %w", err, asynq.SkipRetry)
	}

	tmpl, ok := emailTemplates[payload.TemplateID]
	if !ok {
		log.Printf("Unknown email template %q for recipient %s", payload.TemplateID, payload.To)
		return fmt.Errorf("unknown email template: %w", asynq.SkipRetry)
	}

	data := payload.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	if _, exists := data["app_name"]; !exists {
		data["app_name"] = p.cfg.AppName
	}

	subject := tmpl.Subject
	body := tmpl.Body
	for key, val := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		valueStr := fmt.Sprintf("%v", val)
		subject = strings.ReplaceAll(subject, placeholder, valueStr)
		body = strings.ReplaceAll(body, placeholder, valueStr)
	}

	fromAddress := p.cfg.SmtpFromAddress
	if fromAddress == "" {
		fromAddress = "noreply@example.com"
		log.Printf("Warning: SmtpFromAddress not configured, using fallback %s for email to %s", fromAddress, payload.To)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("To: %s\r\n", payload.To))
	sb.WriteString(fmt.Sprintf("From: %s\r\n", fromAddress))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	sb.WriteString("\r\n")

	if err := p.emailSender.Send(ctx, []string{payload.To}, subject, []byte(sb.String())); err != nil {
		log.Printf("Email sending failed for %s: %v", payload.To, err)
		return err
	}

	log.Printf("Email task processed: To=%s, Template=%s", payload.To, payload.TemplateID)
	return nil
}

// HandleDocumentThumbnailTask renders a small JPEG preview of an uploaded
// verification image next to the original, under "<key>_thumb.jpg". PDFs
// have no raster form here and are skipped.
func (p *TaskProcessor) HandleDocumentThumbnailTask(ctx context.Context, t *asynq.Task) error {
	var payload ThumbnailTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal thumbnail task payload: %v: %w", err, asynq.SkipRetry)
	}

	if payload.ContentType == "application/pdf" {
		log.Printf("Skipping thumbnail for PDF document %s", payload.S3Key)
		return nil
	}

	data, _, err := p.storageService.DownloadObject(ctx, payload.S3Key)
	if err != nil {
		if storage.IsNotFound(err) {
			log.Printf("Stored object %s not found, cannot thumbnail.", payload.S3Key)
			return fmt.Errorf("stored object not found: %w", asynq.SkipRetry)
		}
		return fmt.Errorf("failed to download document %s: %w", payload.S3Key, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("Error decoding document %s: %v", payload.S3Key, err)
		return fmt.Errorf("unsupported image format or corrupt image: %w", asynq.SkipRetry)
	}
	log.Printf("Decoded document %s, format: %s, size: %dx%d", payload.S3Key, format, img.Bounds().Dx(), img.Bounds().Dy())

	dim := uint(p.cfg.ThumbnailDimension)
	thumb := resize.Thumbnail(dim, dim, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("failed to encode thumbnail for %s: %w", payload.S3Key, err)
	}

	thumbKey := payload.S3Key + "_thumb.jpg"
	if err := p.storageService.UploadObject(ctx, thumbKey, "image/jpeg", bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to upload thumbnail %s: %w", thumbKey, err)
	}

	log.Printf("Thumbnail task processed: Key=%s, Thumb=%s", payload.S3Key, thumbKey)
	return nil
}
