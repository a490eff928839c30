package service

import (
	"context"
	"slices"
	"sync"

	"github.com/dtroode/flashcards-client/internal/logger"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/validatorx"
)

// Decks caches the user's decks, the public decks and the deck being viewed.
type Decks struct {
	errorState

	api       model.DeckAPI
	validator *validatorx.Validator
	logger    *logger.Logger

	mu          sync.RWMutex
	decks       []model.Deck
	publicDecks []model.Deck
	current     *model.Deck
}

func NewDecks(api model.DeckAPI, validator *validatorx.Validator, logger *logger.Logger) *Decks {
	return &Decks{api: api, validator: validator, logger: logger}
}

func (d *Decks) FetchDecks(ctx context.Context) []model.Deck {
	d.ClearError()

	decks, err := d.api.List(ctx)
	if err != nil {
		d.logger.Warn("Decks service: failed to fetch decks", "error", err.Error())
		d.fail(err, "Failed to fetch decks")
		return []model.Deck{}
	}

	d.mu.Lock()
	d.decks = decks
	d.mu.Unlock()
	return slices.Clone(decks)
}

func (d *Decks) FetchPublicDecks(ctx context.Context) []model.Deck {
	d.ClearError()

	decks, err := d.api.ListPublic(ctx)
	if err != nil {
		d.logger.Warn("Decks service: failed to fetch public decks", "error", err.Error())
		d.fail(err, "Failed to fetch public decks")
		return []model.Deck{}
	}

	d.mu.Lock()
	d.publicDecks = decks
	d.mu.Unlock()
	return slices.Clone(decks)
}

// FetchDeck loads a deck with its flashcards and makes it current.
func (d *Decks) FetchDeck(ctx context.Context, id string) *model.Deck {
	d.ClearError()

	deck, err := d.api.Get(ctx, id)
	if err != nil {
		d.fail(err, "Failed to fetch deck")
		return nil
	}

	d.mu.Lock()
	d.current = &deck
	d.mu.Unlock()
	return &deck
}

func (d *Decks) CreateDeck(ctx context.Context, params model.CreateDeckParams) *model.Deck {
	d.ClearError()

	if err := d.validator.Validate(params); err != nil {
		d.fail(err, "Failed to create deck")
		return nil
	}

	deck, err := d.api.Create(ctx, params)
	if err != nil {
		d.fail(err, "Failed to create deck")
		return nil
	}

	d.mu.Lock()
	d.decks = append(d.decks, deck)
	d.mu.Unlock()

	d.logger.Info("Decks service: deck created", "deck_id", deck.ID)
	return &deck
}

// UpdateDeck replaces the cached copies of the deck with the updated one.
func (d *Decks) UpdateDeck(ctx context.Context, id string, params model.UpdateDeckParams) *model.Deck {
	d.ClearError()

	if err := d.validator.Validate(params); err != nil {
		d.fail(err, "Failed to update deck")
		return nil
	}

	deck, err := d.api.Update(ctx, id, params)
	if err != nil {
		d.fail(err, "Failed to update deck")
		return nil
	}

	d.mu.Lock()
	if i := slices.IndexFunc(d.decks, func(x model.Deck) bool { return x.ID == id }); i != -1 {
		d.decks[i] = deck
	}
	if d.current != nil && d.current.ID == id {
		updated := deck
		d.current = &updated
	}
	d.mu.Unlock()

	return &deck
}

func (d *Decks) DeleteDeck(ctx context.Context, id string) bool {
	d.ClearError()

	if err := d.api.Delete(ctx, id); err != nil {
		d.fail(err, "Failed to delete deck")
		return false
	}

	d.mu.Lock()
	d.decks = slices.DeleteFunc(d.decks, func(x model.Deck) bool { return x.ID == id })
	if d.current != nil && d.current.ID == id {
		d.current = nil
	}
	d.mu.Unlock()

	d.logger.Info("Decks service: deck deleted", "deck_id", id)
	return true
}

func (d *Decks) ShareDeck(ctx context.Context, deckID, userID string) *model.Deck {
	d.ClearError()

	deck, err := d.api.Share(ctx, deckID, userID)
	if err != nil {
		d.fail(err, "Failed to share deck")
		return nil
	}
	return &deck
}

// DeckByID looks the deck up in the user's decks, then in the public decks.
func (d *Decks) DeckByID(id string) *model.Deck {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, list := range [][]model.Deck{d.decks, d.publicDecks} {
		if i := slices.IndexFunc(list, func(x model.Deck) bool { return x.ID == id }); i != -1 {
			deck := list[i]
			return &deck
		}
	}
	return nil
}

func (d *Decks) Decks() []model.Deck {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.decks)
}

func (d *Decks) PublicDecks() []model.Deck {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.publicDecks)
}

func (d *Decks) CurrentDeck() *model.Deck {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.current == nil {
		return nil
	}
	deck := *d.current
	return &deck
}
