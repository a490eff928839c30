package service

import (
	"context"
	"slices"
	"sync"

	"github.com/dtroode/flashcards-client/internal/logger"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/validatorx"
)

// Flashcards caches the flashcards of the last fetched deck.
type Flashcards struct {
	errorState

	api       model.FlashcardAPI
	validator *validatorx.Validator
	logger    *logger.Logger

	mu         sync.RWMutex
	flashcards []model.Flashcard
	current    *model.Flashcard
}

func NewFlashcards(api model.FlashcardAPI, validator *validatorx.Validator, logger *logger.Logger) *Flashcards {
	return &Flashcards{api: api, validator: validator, logger: logger}
}

func (f *Flashcards) FetchFlashcards(ctx context.Context, deckID string) []model.Flashcard {
	f.ClearError()

	cards, err := f.api.List(ctx, deckID)
	if err != nil {
		f.logger.Warn("Flashcards service: failed to fetch flashcards",
			"deck_id", deckID,
			"error", err.Error())
		f.fail(err, "Failed to fetch flashcards")
		return []model.Flashcard{}
	}

	f.mu.Lock()
	f.flashcards = cards
	f.mu.Unlock()
	return slices.Clone(cards)
}

func (f *Flashcards) FetchFlashcard(ctx context.Context, id string) *model.Flashcard {
	f.ClearError()

	card, err := f.api.Get(ctx, id)
	if err != nil {
		f.fail(err, "Failed to fetch flashcard")
		return nil
	}

	f.mu.Lock()
	f.current = &card
	f.mu.Unlock()
	return &card
}

func (f *Flashcards) CreateFlashcard(ctx context.Context, params model.CreateFlashcardParams) *model.Flashcard {
	f.ClearError()

	if err := f.validator.Validate(params); err != nil {
		f.fail(err, "Failed to create flashcard")
		return nil
	}

	card, err := f.api.Create(ctx, params)
	if err != nil {
		f.fail(err, "Failed to create flashcard")
		return nil
	}

	f.mu.Lock()
	f.flashcards = append(f.flashcards, card)
	f.mu.Unlock()
	return &card
}

func (f *Flashcards) UpdateFlashcard(ctx context.Context, id string, params model.UpdateFlashcardParams) *model.Flashcard {
	f.ClearError()

	if err := f.validator.Validate(params); err != nil {
		f.fail(err, "Failed to update flashcard")
		return nil
	}

	card, err := f.api.Update(ctx, id, params)
	if err != nil {
		f.fail(err, "Failed to update flashcard")
		return nil
	}

	f.mu.Lock()
	if i := slices.IndexFunc(f.flashcards, func(x model.Flashcard) bool { return x.ID == id }); i != -1 {
		f.flashcards[i] = card
	}
	if f.current != nil && f.current.ID == id {
		updated := card
		f.current = &updated
	}
	f.mu.Unlock()

	return &card
}

func (f *Flashcards) DeleteFlashcard(ctx context.Context, id string) bool {
	f.ClearError()

	if err := f.api.Delete(ctx, id); err != nil {
		f.fail(err, "Failed to delete flashcard")
		return false
	}

	f.mu.Lock()
	f.flashcards = slices.DeleteFunc(f.flashcards, func(x model.Flashcard) bool { return x.ID == id })
	if f.current != nil && f.current.ID == id {
		f.current = nil
	}
	f.mu.Unlock()
	return true
}

func (f *Flashcards) FlashcardByID(id string) *model.Flashcard {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if i := slices.IndexFunc(f.flashcards, func(x model.Flashcard) bool { return x.ID == id }); i != -1 {
		card := f.flashcards[i]
		return &card
	}
	return nil
}

func (f *Flashcards) Flashcards() []model.Flashcard {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.flashcards)
}
