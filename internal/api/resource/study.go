package resource

import (
	"context"
	"net/http"

	"github.com/dtroode/flashcards-client/internal/api/rest"
	"github.com/dtroode/flashcards-client/internal/model"
)

var _ model.StudyAPI = (*Study)(nil)

// Study implements the /study endpoints.
type Study struct {
	client Doer
}

func NewStudy(client Doer) *Study {
	return &Study{client: client}
}

type createSessionBody struct {
	DeckID string `json:"deck_id"`
}

func (s *Study) CreateSession(ctx context.Context, deckID string) (model.StudySession, error) {
	return newJSON[model.StudySession](ctx, s.client, http.MethodPost, "/study/sessions", createSessionBody{DeckID: deckID})
}

func (s *Study) ListSessions(ctx context.Context) ([]model.StudySession, error) {
	return doJSON[[]model.StudySession](ctx, s.client, rest.NewRequest(http.MethodGet, "/study/sessions"))
}

func (s *Study) GetSession(ctx context.Context, id string) (model.StudySession, error) {
	return doJSON[model.StudySession](ctx, s.client, rest.NewRequest(http.MethodGet, "/study/sessions/"+escape(id)))
}

func (s *Study) EndSession(ctx context.Context, id string) (model.StudySession, error) {
	return doJSON[model.StudySession](ctx, s.client, rest.NewRequest(http.MethodPut, "/study/sessions/"+escape(id)+"/end"))
}

func (s *Study) CreateRecord(ctx context.Context, params model.CreateStudyRecordParams) (model.StudyRecord, error) {
	return newJSON[model.StudyRecord](ctx, s.client, http.MethodPost, "/study/records", params)
}

func (s *Study) ListRecords(ctx context.Context, sessionID string) ([]model.StudyRecord, error) {
	req := rest.NewRequest(http.MethodGet, "/study/records").WithQuery("session_id", sessionID)
	return doJSON[[]model.StudyRecord](ctx, s.client, req)
}
