package resource

import (
	"context"
	"net/http"

	"github.com/dtroode/flashcards-client/internal/api/rest"
	"github.com/dtroode/flashcards-client/internal/model"
)

var _ model.FlashcardAPI = (*Flashcards)(nil)

// Flashcards implements the /flashcards endpoints.
type Flashcards struct {
	client Doer
}

func NewFlashcards(client Doer) *Flashcards {
	return &Flashcards{client: client}
}

func (f *Flashcards) List(ctx context.Context, deckID string) ([]model.Flashcard, error) {
	req := rest.NewRequest(http.MethodGet, "/flashcards").WithQuery("deck_id", deckID)
	return doJSON[[]model.Flashcard](ctx, f.client, req)
}

func (f *Flashcards) Get(ctx context.Context, id string) (model.Flashcard, error) {
	return doJSON[model.Flashcard](ctx, f.client, rest.NewRequest(http.MethodGet, "/flashcards/"+escape(id)))
}

func (f *Flashcards) Create(ctx context.Context, params model.CreateFlashcardParams) (model.Flashcard, error) {
	return newJSON[model.Flashcard](ctx, f.client, http.MethodPost, "/flashcards", params)
}

func (f *Flashcards) Update(ctx context.Context, id string, params model.UpdateFlashcardParams) (model.Flashcard, error) {
	return newJSON[model.Flashcard](ctx, f.client, http.MethodPut, "/flashcards/"+escape(id), params)
}

func (f *Flashcards) Delete(ctx context.Context, id string) error {
	return doNoContent(ctx, f.client, rest.NewRequest(http.MethodDelete, "/flashcards/"+escape(id)))
}
