package resource

import (
	"context"
	"io"
	"net/http"

	"github.com/dtroode/flashcards-client/internal/api/rest"
	"github.com/dtroode/flashcards-client/internal/model"
)

var _ model.DocumentAPI = (*Documents)(nil)

// Documents implements the /documents endpoints.
type Documents struct {
	client Doer
}

func NewDocuments(client Doer) *Documents {
	return &Documents{client: client}
}

func (d *Documents) List(ctx context.Context) ([]model.Document, error) {
	return doJSON[[]model.Document](ctx, d.client, rest.NewRequest(http.MethodGet, "/documents"))
}

func (d *Documents) Get(ctx context.Context, id string) (model.Document, error) {
	return doJSON[model.Document](ctx, d.client, rest.NewRequest(http.MethodGet, "/documents/"+escape(id)))
}

// Upload sends content as the multipart "file" field. The content is read
// fully before the first attempt.
func (d *Documents) Upload(ctx context.Context, filename string, content io.Reader) (model.Document, error) {
	req, err := rest.NewMultipartRequest(http.MethodPost, "/documents", "file", filename, content)
	if err != nil {
		return model.Document{}, err
	}
	return doJSON[model.Document](ctx, d.client, req)
}

func (d *Documents) Text(ctx context.Context, id string) (model.ExtractedText, error) {
	return doJSON[model.ExtractedText](ctx, d.client, rest.NewRequest(http.MethodGet, "/documents/"+escape(id)+"/text"))
}

func (d *Documents) Delete(ctx context.Context, id string) error {
	return doNoContent(ctx, d.client, rest.NewRequest(http.MethodDelete, "/documents/"+escape(id)))
}
