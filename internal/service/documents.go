package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"sync"

	"github.com/dtroode/flashcards-client/internal/logger"
	"github.com/dtroode/flashcards-client/internal/model"
)

// ErrNoDocumentSource is reported when uploading from object storage without one configured.
var ErrNoDocumentSource = errors.New("document source is not configured")

// Documents caches uploaded documents and the last extracted text.
type Documents struct {
	errorState

	api    model.DocumentAPI
	source model.DocumentSource
	logger *logger.Logger

	mu        sync.RWMutex
	documents []model.Document
	current   *model.Document
	text      *model.ExtractedText
}

// NewDocuments creates a Documents service. source may be nil.
func NewDocuments(api model.DocumentAPI, source model.DocumentSource, logger *logger.Logger) *Documents {
	return &Documents{api: api, source: source, logger: logger}
}

func (d *Documents) FetchDocuments(ctx context.Context) []model.Document {
	d.ClearError()

	docs, err := d.api.List(ctx)
	if err != nil {
		d.logger.Warn("Documents service: failed to fetch documents", "error", err.Error())
		d.fail(err, "Failed to fetch documents")
		return []model.Document{}
	}

	d.mu.Lock()
	d.documents = docs
	d.mu.Unlock()
	return slices.Clone(docs)
}

func (d *Documents) FetchDocument(ctx context.Context, id string) *model.Document {
	d.ClearError()

	doc, err := d.api.Get(ctx, id)
	if err != nil {
		d.fail(err, "Failed to fetch document")
		return nil
	}

	d.mu.Lock()
	d.current = &doc
	d.mu.Unlock()
	return &doc
}

func (d *Documents) UploadDocument(ctx context.Context, filename string, content io.Reader) *model.Document {
	d.ClearError()

	doc, err := d.api.Upload(ctx, filename, content)
	if err != nil {
		d.logger.Warn("Documents service: upload failed",
			"filename", filename,
			"error", err.Error())
		d.fail(err, "Failed to upload document")
		return nil
	}

	d.mu.Lock()
	d.documents = append(d.documents, doc)
	d.mu.Unlock()

	d.logger.Info("Documents service: document uploaded",
		"document_id", doc.ID,
		"filename", filename)
	return &doc
}

// UploadFromSource uploads the object stored under key in the document source.
// The object's base name becomes the filename.
func (d *Documents) UploadFromSource(ctx context.Context, key string) *model.Document {
	d.ClearError()

	if d.source == nil {
		d.fail(ErrNoDocumentSource, ErrNoDocumentSource.Error())
		return nil
	}

	exists, err := d.source.Exists(ctx, key)
	if err != nil {
		d.fail(err, "Failed to upload document")
		return nil
	}
	if !exists {
		d.setError(fmt.Sprintf("Object %s not found", key))
		return nil
	}

	rc, err := d.source.Download(ctx, key)
	if err != nil {
		d.fail(err, "Failed to upload document")
		return nil
	}
	defer rc.Close()

	return d.UploadDocument(ctx, path.Base(key), rc)
}

func (d *Documents) FetchDocumentText(ctx context.Context, id string) *model.ExtractedText {
	d.ClearError()

	text, err := d.api.Text(ctx, id)
	if err != nil {
		d.fail(err, "Failed to fetch document text")
		return nil
	}

	d.mu.Lock()
	d.text = &text
	d.mu.Unlock()
	return &text
}

func (d *Documents) DeleteDocument(ctx context.Context, id string) bool {
	d.ClearError()

	if err := d.api.Delete(ctx, id); err != nil {
		d.fail(err, "Failed to delete document")
		return false
	}

	d.mu.Lock()
	d.documents = slices.DeleteFunc(d.documents, func(x model.Document) bool { return x.ID == id })
	if d.current != nil && d.current.ID == id {
		d.current = nil
		d.text = nil
	}
	d.mu.Unlock()
	return true
}

func (d *Documents) DocumentByID(id string) *model.Document {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i := slices.IndexFunc(d.documents, func(x model.Document) bool { return x.ID == id }); i != -1 {
		doc := d.documents[i]
		return &doc
	}
	return nil
}

func (d *Documents) Documents() []model.Document {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.documents)
}
