package model

import (
	"context"
	"time"
)

// StudyAPI defines backend operations on study sessions and records.
type StudyAPI interface {
	CreateSession(ctx context.Context, deckID string) (StudySession, error)
	ListSessions(ctx context.Context) ([]StudySession, error)
	GetSession(ctx context.Context, id string) (StudySession, error)
	EndSession(ctx context.Context, id string) (StudySession, error)
	CreateRecord(ctx context.Context, params CreateStudyRecordParams) (StudyRecord, error)
	ListRecords(ctx context.Context, sessionID string) ([]StudyRecord, error)
}

// StudySession is a single pass of a user over a deck.
type StudySession struct {
	ID        string     `json:"id"`
	DeckID    string     `json:"deck_id"`
	UserID    string     `json:"user_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// Ended reports whether the session has been closed.
func (s StudySession) Ended() bool {
	return s.EndedAt != nil
}

// StudyRecord is the answer given to one flashcard during a session.
type StudyRecord struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	FlashcardID string    `json:"flashcard_id"`
	IsCorrect   bool      `json:"is_correct"`
	EaseFactor  float64   `json:"ease_factor"`
	Interval    int       `json:"interval"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateStudyRecordParams contains parameters to record an answer.
type CreateStudyRecordParams struct {
	SessionID   string `json:"session_id" validate:"required"`
	FlashcardID string `json:"flashcard_id" validate:"required"`
	IsCorrect   bool   `json:"is_correct"`
}
