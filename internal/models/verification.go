package models

import (
	"time"
)

// DocumentType is the kind of identity document submitted for review.
type DocumentType string

const (
	DocumentTypeIDCard   DocumentType = "id_card"
	DocumentTypePassport DocumentType = "passport"
)

// IsValid reports whether the document type is one the review flow accepts.
func (d DocumentType) IsValid() bool {
	return d == DocumentTypeIDCard || d == DocumentTypePassport
}

// Verification statuses. The lifecycle is managed entirely by an external
// reviewer; this API only ever inserts rows with status "pending".
const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

// Verification is a submitted identity-document review request.
type Verification struct {
	ID              string       `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          string       `bson:"user_id" json:"user_id"`
	DocumentType    DocumentType `bson:"document_type" json:"document_type"`
	DocumentPath    string       `bson:"document_path" json:"document_path"` // object storage key
	Status          string       `bson:"status" json:"status"`
	RejectionReason *string      `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time    `bson:"created_at" json:"created_at"`
}
