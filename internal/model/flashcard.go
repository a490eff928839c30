package model

import (
	"context"
	"time"
)

// FlashcardAPI defines backend operations on flashcards.
type FlashcardAPI interface {
	List(ctx context.Context, deckID string) ([]Flashcard, error)
	Get(ctx context.Context, id string) (Flashcard, error)
	Create(ctx context.Context, params CreateFlashcardParams) (Flashcard, error)
	Update(ctx context.Context, id string, params UpdateFlashcardParams) (Flashcard, error)
	Delete(ctx context.Context, id string) error
}

// Flashcard is a question/answer pair within a deck.
type Flashcard struct {
	ID        string     `json:"id"`
	DeckID    string     `json:"deck_id"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CreateFlashcardParams contains parameters to create a flashcard.
type CreateFlashcardParams struct {
	DeckID   string `json:"deck_id" validate:"required"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// UpdateFlashcardParams contains the flashcard fields to change.
type UpdateFlashcardParams struct {
	Question *string `json:"question,omitempty" validate:"omitempty,min=1"`
	Answer   *string `json:"answer,omitempty" validate:"omitempty,min=1"`
}
