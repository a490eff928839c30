package model

import (
	"context"
	"time"
)

// DeckAPI defines backend operations on decks.
type DeckAPI interface {
	List(ctx context.Context) ([]Deck, error)
	ListPublic(ctx context.Context) ([]Deck, error)
	Get(ctx context.Context, id string) (Deck, error)
	Create(ctx context.Context, params CreateDeckParams) (Deck, error)
	Update(ctx context.Context, id string, params UpdateDeckParams) (Deck, error)
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context, deckID, userID string) (Deck, error)
}

// Deck is a named collection of flashcards.
type Deck struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	IsPublic    bool        `json:"is_public"`
	OwnerID     string      `json:"owner_id"`
	DocumentID  *string     `json:"document_id,omitempty"`
	Flashcards  []Flashcard `json:"flashcards,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

// CreateDeckParams contains parameters to create a deck.
type CreateDeckParams struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description,omitempty"`
	IsPublic    bool    `json:"is_public"`
	DocumentID  *string `json:"document_id,omitempty"`
}

// UpdateDeckParams contains the deck fields to change.
type UpdateDeckParams struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}
