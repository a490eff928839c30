package resource

import (
	"context"
	"net/http"

	"github.com/dtroode/flashcards-client/internal/api/rest"
	"github.com/dtroode/flashcards-client/internal/model"
)

var _ model.DeckAPI = (*Decks)(nil)

// Decks implements the /decks endpoints.
type Decks struct {
	client Doer
}

func NewDecks(client Doer) *Decks {
	return &Decks{client: client}
}

func (d *Decks) List(ctx context.Context) ([]model.Deck, error) {
	return doJSON[[]model.Deck](ctx, d.client, rest.NewRequest(http.MethodGet, "/decks"))
}

func (d *Decks) ListPublic(ctx context.Context) ([]model.Deck, error) {
	return doJSON[[]model.Deck](ctx, d.client, rest.NewRequest(http.MethodGet, "/decks/public"))
}

func (d *Decks) Get(ctx context.Context, id string) (model.Deck, error) {
	return doJSON[model.Deck](ctx, d.client, rest.NewRequest(http.MethodGet, "/decks/"+escape(id)))
}

func (d *Decks) Create(ctx context.Context, params model.CreateDeckParams) (model.Deck, error) {
	return newJSON[model.Deck](ctx, d.client, http.MethodPost, "/decks", params)
}

func (d *Decks) Update(ctx context.Context, id string, params model.UpdateDeckParams) (model.Deck, error) {
	return newJSON[model.Deck](ctx, d.client, http.MethodPut, "/decks/"+escape(id), params)
}

func (d *Decks) Delete(ctx context.Context, id string) error {
	return doNoContent(ctx, d.client, rest.NewRequest(http.MethodDelete, "/decks/"+escape(id)))
}

func (d *Decks) Share(ctx context.Context, deckID, userID string) (model.Deck, error) {
	path := "/decks/" + escape(deckID) + "/share/" + escape(userID)
	return doJSON[model.Deck](ctx, d.client, rest.NewRequest(http.MethodPost, path))
}
