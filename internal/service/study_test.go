package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/flashcards-client/internal/api/rest"
	"github.com/dtroode/flashcards-client/internal/mocks"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/testutil"
	"github.com/dtroode/flashcards-client/internal/validatorx"
)

func TestStudy_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	api := mocks.NewStudyAPI(t)
	s := NewStudy(api, validatorx.New(), testutil.MakeNoopLogger())

	started := model.StudySession{ID: "s-1", DeckID: "d-1", StartedAt: time.Now()}
	ended := started
	ended.EndedAt = ptr(time.Now())

	api.On("CreateSession", ctx, "d-1").Return(started, nil).Once()
	api.On("CreateRecord", ctx, model.CreateStudyRecordParams{SessionID: "s-1", FlashcardID: "c-1", IsCorrect: true}).
		Return(model.StudyRecord{ID: "r-1", SessionID: "s-1", FlashcardID: "c-1", IsCorrect: true}, nil).Once()
	api.On("EndSession", ctx, "s-1").Return(ended, nil).Once()
	api.On("ListRecords", ctx, "s-1").Return([]model.StudyRecord{{ID: "r-1"}}, nil).Once()

	require.NotNil(t, s.CreateStudySession(ctx, "d-1"))
	assert.Equal(t, "s-1", s.CurrentSession().ID)

	require.NotNil(t, s.CreateStudyRecord(ctx, model.CreateStudyRecordParams{SessionID: "s-1", FlashcardID: "c-1", IsCorrect: true}))
	assert.Len(t, s.Records(), 1)

	require.NotNil(t, s.EndStudySession(ctx, "s-1"))
	assert.True(t, s.CurrentSession().Ended())
	assert.True(t, s.SessionByID("s-1").Ended())

	assert.Len(t, s.FetchStudyRecords(ctx, "s-1"), 1)
}

func TestStudy_Failures(t *testing.T) {
	ctx := context.Background()
	api := mocks.NewStudyAPI(t)
	s := NewStudy(api, validatorx.New(), testutil.MakeNoopLogger())

	api.On("ListSessions", ctx).Return(nil, assert.AnError).Once()
	api.On("GetSession", ctx, "s-1").Return(model.StudySession{}, &rest.APIError{StatusCode: 404, Detail: "Study session not found"}).Once()
	api.On("EndSession", ctx, "s-2").Return(model.StudySession{}, &rest.APIError{StatusCode: 400, Detail: "Study session already ended"}).Once()

	assert.Empty(t, s.FetchStudySessions(ctx))
	assert.Equal(t, "Failed to fetch study sessions", s.Err())

	assert.Nil(t, s.FetchStudySession(ctx, "s-1"))
	assert.Equal(t, "Study session not found", s.Err())

	assert.Nil(t, s.EndStudySession(ctx, "s-2"))
	assert.Equal(t, "Study session already ended", s.Err())

	assert.Nil(t, s.CreateStudyRecord(ctx, model.CreateStudyRecordParams{}))
	assert.Contains(t, s.Err(), "SessionID")
	api.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything)
}
