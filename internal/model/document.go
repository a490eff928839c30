package model

import (
	"context"
	"io"
	"time"
)

// DocumentAPI defines backend operations on uploaded documents.
type DocumentAPI interface {
	List(ctx context.Context) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	Upload(ctx context.Context, filename string, content io.Reader) (Document, error)
	Text(ctx context.Context, id string) (ExtractedText, error)
	Delete(ctx context.Context, id string) error
}

// DocumentStatus is the processing state of an uploaded document.
type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusCompleted  DocumentStatus = "completed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Document is an uploaded source file.
type Document struct {
	ID           string         `json:"id"`
	Filename     string         `json:"filename"`
	MimeType     string         `json:"mime_type"`
	FilePath     string         `json:"file_path,omitempty"`
	Status       DocumentStatus `json:"status"`
	ErrorMessage *string        `json:"error_message,omitempty"`
	OwnerID      string         `json:"owner_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

// ExtractedText is the OCR output of a document.
type ExtractedText struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
