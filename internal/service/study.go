package service

import (
	"context"
	"slices"
	"sync"

	"github.com/dtroode/flashcards-client/internal/logger"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/validatorx"
)

// Study caches study sessions and the records of the last fetched session.
type Study struct {
	errorState

	api       model.StudyAPI
	validator *validatorx.Validator
	logger    *logger.Logger

	mu       sync.RWMutex
	sessions []model.StudySession
	current  *model.StudySession
	records  []model.StudyRecord
}

func NewStudy(api model.StudyAPI, validator *validatorx.Validator, logger *logger.Logger) *Study {
	return &Study{api: api, validator: validator, logger: logger}
}

func (s *Study) FetchStudySessions(ctx context.Context) []model.StudySession {
	s.ClearError()

	sessions, err := s.api.ListSessions(ctx)
	if err != nil {
		s.logger.Warn("Study service: failed to fetch sessions", "error", err.Error())
		s.fail(err, "Failed to fetch study sessions")
		return []model.StudySession{}
	}

	s.mu.Lock()
	s.sessions = sessions
	s.mu.Unlock()
	return slices.Clone(sessions)
}

func (s *Study) FetchStudySession(ctx context.Context, id string) *model.StudySession {
	s.ClearError()

	session, err := s.api.GetSession(ctx, id)
	if err != nil {
		s.fail(err, "Failed to fetch study session")
		return nil
	}

	s.mu.Lock()
	s.current = &session
	s.mu.Unlock()
	return &session
}

// CreateStudySession starts a session over a deck and makes it current.
func (s *Study) CreateStudySession(ctx context.Context, deckID string) *model.StudySession {
	s.ClearError()

	session, err := s.api.CreateSession(ctx, deckID)
	if err != nil {
		s.fail(err, "Failed to create study session")
		return nil
	}

	s.mu.Lock()
	s.sessions = append(s.sessions, session)
	current := session
	s.current = &current
	s.records = nil
	s.mu.Unlock()

	s.logger.Info("Study service: session started",
		"session_id", session.ID,
		"deck_id", deckID)
	return &session
}

func (s *Study) EndStudySession(ctx context.Context, id string) *model.StudySession {
	s.ClearError()

	session, err := s.api.EndSession(ctx, id)
	if err != nil {
		s.fail(err, "Failed to end study session")
		return nil
	}

	s.mu.Lock()
	if i := slices.IndexFunc(s.sessions, func(x model.StudySession) bool { return x.ID == id }); i != -1 {
		s.sessions[i] = session
	}
	if s.current != nil && s.current.ID == id {
		updated := session
		s.current = &updated
	}
	s.mu.Unlock()

	return &session
}

func (s *Study) FetchStudyRecords(ctx context.Context, sessionID string) []model.StudyRecord {
	s.ClearError()

	records, err := s.api.ListRecords(ctx, sessionID)
	if err != nil {
		s.fail(err, "Failed to fetch study records")
		return []model.StudyRecord{}
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return slices.Clone(records)
}

func (s *Study) CreateStudyRecord(ctx context.Context, params model.CreateStudyRecordParams) *model.StudyRecord {
	s.ClearError()

	if err := s.validator.Validate(params); err != nil {
		s.fail(err, "Failed to create study record")
		return nil
	}

	record, err := s.api.CreateRecord(ctx, params)
	if err != nil {
		s.fail(err, "Failed to create study record")
		return nil
	}

	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
	return &record
}

func (s *Study) SessionByID(id string) *model.StudySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := slices.IndexFunc(s.sessions, func(x model.StudySession) bool { return x.ID == id }); i != -1 {
		session := s.sessions[i]
		return &session
	}
	return nil
}

func (s *Study) Records() []model.StudyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

func (s *Study) CurrentSession() *model.StudySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	session := *s.current
	return &session
}
