package testutil

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/flashcards-client/internal/model"
)

const (
	apiPrefix      = "/api/v1"
	accessTokenTTL = 15 * time.Minute
	ctxUserID      = "userID"
)

// RecordedRequest is a request seen by the Backend.
type RecordedRequest struct {
	Route         string
	Path          string
	Authorization string
	RequestID     string
	ContentType   string
	Body          string
}

type failure struct {
	status int
	detail string
}

type userRecord struct {
	profile  model.UserProfile
	password string
}

// Backend is an in-memory fake of the flashcards REST API for tests.
// Routes are identified as "METHOD /path" with echo path parameters,
// e.g. "GET /decks/:id".
type Backend struct {
	server *httptest.Server
	secret []byte

	mu            sync.Mutex
	users         map[string]*userRecord
	usernames     map[string]string
	accessTokens  map[string]string
	refreshTokens map[string]string
	queued        []model.TokenPair
	rejectAccess  bool
	refreshDelay  time.Duration
	failures      map[string]failure
	calls         map[string]int
	requests      []RecordedRequest

	decks     []*model.Deck
	shared    map[string][]string
	cards     []*model.Flashcard
	documents []*model.Document
	texts     map[string]string
	sessions  []*model.StudySession
	records   []*model.StudyRecord
}

// NewBackend starts a fake backend that is shut down when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		secret:        []byte("test-secret-" + uuid.NewString()),
		users:         make(map[string]*userRecord),
		usernames:     make(map[string]string),
		accessTokens:  make(map[string]string),
		refreshTokens: make(map[string]string),
		failures:      make(map[string]failure),
		calls:         make(map[string]int),
		shared:        make(map[string][]string),
		texts:         make(map[string]string),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = b.handleError
	e.Use(b.record)
	b.routes(e.Group(apiPrefix))

	b.server = httptest.NewServer(e)
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the API base URL.
func (b *Backend) URL() string {
	return b.server.URL + apiPrefix
}

// AddUser registers a user directly.
func (b *Backend) AddUser(username, password string) model.UserProfile {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(username, username+"@example.com", "", password)
}

// IssueTokens returns a valid token pair for a registered user.
func (b *Backend) IssueTokens(username string) model.TokenPair {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueLocked(b.usernames[username])
}

// QueueTokens makes the next logins or refreshes return the given pairs in order.
func (b *Backend) QueueTokens(pairs ...model.TokenPair) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queued = append(b.queued, pairs...)
}

// ExpireAccessTokens invalidates every access token issued so far.
func (b *Backend) ExpireAccessTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.accessTokens)
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (b *Backend) RevokeRefreshTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.refreshTokens)
}

// RejectAccess makes every authenticated route answer 401 while set.
func (b *Backend) RejectAccess(reject bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejectAccess = reject
}

// SetRefreshDelay delays refresh responses.
func (b *Backend) SetRefreshDelay(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshDelay = d
}

// Fail makes route answer with status and detail until cleared with status 0.
func (b *Backend) Fail(route string, status int, detail string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if status == 0 {
		delete(b.failures, route)
		return
	}
	b.failures[route] = failure{status: status, detail: detail}
}

// Calls returns how many times route was requested.
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// Requests returns the recorded requests for route in arrival order.
func (b *Backend) Requests(route string) []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []RecordedRequest
	for _, r := range b.requests {
		if r.Route == route {
			out = append(out, r)
		}
	}
	return out
}

// SetDocumentText sets the extracted text of a document.
func (b *Backend) SetDocumentText(documentID, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.texts[documentID] = text
}

func (b *Backend) routes(api *echo.Group) {
	auth := b.authenticate

	api.POST("/auth/login", b.login)
	api.POST("/auth/register", b.register)
	api.POST("/auth/refresh", b.refresh)
	api.POST("/auth/logout", b.logout)

	api.GET("/users/me", b.getMe, auth)
	api.PUT("/users/me", b.updateMe, auth)

	api.GET("/decks", b.listDecks, auth)
	api.GET("/decks/public", b.listPublicDecks, auth)
	api.POST("/decks", b.createDeck, auth)
	api.GET("/decks/:id", b.getDeck, auth)
	api.PUT("/decks/:id", b.updateDeck, auth)
	api.DELETE("/decks/:id", b.deleteDeck, auth)
	api.POST("/decks/:deck_id/share/:user_id", b.shareDeck, auth)

	api.GET("/flashcards", b.listFlashcards, auth)
	api.POST("/flashcards", b.createFlashcard, auth)
	api.GET("/flashcards/:id", b.getFlashcard, auth)
	api.PUT("/flashcards/:id", b.updateFlashcard, auth)
	api.DELETE("/flashcards/:id", b.deleteFlashcard, auth)

	api.GET("/documents", b.listDocuments, auth)
	api.POST("/documents", b.uploadDocument, auth)
	api.GET("/documents/:id", b.getDocument, auth)
	api.GET("/documents/:id/text", b.getDocumentText, auth)
	api.DELETE("/documents/:id", b.deleteDocument, auth)

	api.POST("/study/sessions", b.createSession, auth)
	api.GET("/study/sessions", b.listSessions, auth)
	api.GET("/study/sessions/:id", b.getSession, auth)
	api.PUT("/study/sessions/:id/end", b.endSession, auth)
	api.POST("/study/records", b.createRecord, auth)
	api.GET("/study/records", b.listRecords, auth)
}

func (b *Backend) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	var detail any = err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		detail = he.Message
	}
	_ = c.JSON(status, map[string]any{"detail": detail})
}

func (b *Backend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		route := req.Method + " " + strings.TrimPrefix(c.Path(), apiPrefix)

		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}

		b.mu.Lock()
		b.calls[route]++
		b.requests = append(b.requests, RecordedRequest{
			Route:         route,
			Path:          req.URL.Path,
			Authorization: req.Header.Get("Authorization"),
			RequestID:     req.Header.Get("X-Request-ID"),
			ContentType:   req.Header.Get("Content-Type"),
			Body:          string(body),
		})
		f, failing := b.failures[route]
		b.mu.Unlock()

		if failing {
			return echo.NewHTTPError(f.status, f.detail)
		}
		return next(c)
	}
}

func (b *Backend) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := strings.CutPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
		}

		b.mu.Lock()
		userID, valid := b.accessTokens[token]
		reject := b.rejectAccess
		b.mu.Unlock()

		if !valid || reject {
			return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
		}
		c.Set(ctxUserID, userID)
		return next(c)
	}
}

func (b *Backend) addUserLocked(username, email, fullName, password string) model.UserProfile {
	now := time.Now().UTC()
	profile := model.UserProfile{
		ID:        uuid.NewString(),
		Email:     email,
		Username:  username,
		FullName:  fullName,
		Role:      "user",
		IsActive:  true,
		CreatedAt: now,
	}
	b.users[profile.ID] = &userRecord{profile: profile, password: password}
	b.usernames[username] = profile.ID
	return profile
}

func (b *Backend) issueLocked(userID string) model.TokenPair {
	var pair model.TokenPair
	if len(b.queued) > 0 {
		pair = b.queued[0]
		b.queued = b.queued[1:]
	} else {
		pair = model.TokenPair{
			AccessToken:  b.signAccessToken(userID),
			RefreshToken: uuid.NewString(),
		}
	}
	pair.TokenType = "bearer"
	b.accessTokens[pair.AccessToken] = userID
	b.refreshTokens[pair.RefreshToken] = userID
	return pair
}

func (b *Backend) signAccessToken(userID string) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		panic(fmt.Sprintf("sign access token: %v", err))
	}
	return signed
}

func currentUser(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}

func (b *Backend) login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[b.usernames[username]]
	if !ok || u.password != password {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
	}
	return c.JSON(http.StatusOK, b.issueLocked(u.profile.ID))
}

type registerBody struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (b *Backend) register(c echo.Context) error {
	var body registerBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}
	if len(body.Password) < 8 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, []map[string]any{{
			"loc":  []string{"body", "password"},
			"msg":  "String should have at least 8 characters",
			"type": "string_too_short",
		}})
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, taken := b.usernames[body.Username]; taken {
		return echo.NewHTTPError(http.StatusBadRequest, "Username already registered")
	}
	for _, u := range b.users {
		if u.profile.Email == body.Email {
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
	}
	return c.JSON(http.StatusOK, b.addUserLocked(body.Username, body.Email, body.FullName, body.Password))
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

func (b *Backend) refresh(c echo.Context) error {
	var body refreshBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}

	b.mu.Lock()
	delay := b.refreshDelay
	b.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	userID, ok := b.refreshTokens[body.RefreshToken]
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}
	delete(b.refreshTokens, body.RefreshToken)
	return c.JSON(http.StatusOK, b.issueLocked(userID))
}

func (b *Backend) logout(c echo.Context) error {
	var body refreshBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}

	b.mu.Lock()
	delete(b.refreshTokens, body.RefreshToken)
	b.mu.Unlock()

	return c.JSON(http.StatusOK, map[string]string{"detail": "Successfully logged out"})
}

func (b *Backend) getMe(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[currentUser(c)]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, u.profile)
}

func (b *Backend) updateMe(c echo.Context) error {
	var body model.ProfileUpdate
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[currentUser(c)]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if body.Email != nil {
		u.profile.Email = *body.Email
	}
	if body.FullName != nil {
		u.profile.FullName = *body.FullName
	}
	now := time.Now().UTC()
	u.profile.UpdatedAt = &now
	return c.JSON(http.StatusOK, u.profile)
}

func (b *Backend) findDeckLocked(id string) (*model.Deck, int) {
	for i, d := range b.decks {
		if d.ID == id {
			return d, i
		}
	}
	return nil, -1
}

func (b *Backend) canReadDeckLocked(d *model.Deck, userID string) bool {
	if d.OwnerID == userID || d.IsPublic {
		return true
	}
	for _, id := range b.shared[d.ID] {
		if id == userID {
			return true
		}
	}
	return false
}

func (b *Backend) listDecks(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []model.Deck{}
	for _, d := range b.decks {
		if d.OwnerID == currentUser(c) {
			out = append(out, *d)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) listPublicDecks(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []model.Deck{}
	for _, d := range b.decks {
		if d.IsPublic {
			out = append(out, *d)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) createDeck(c echo.Context) error {
	var body model.CreateDeckParams
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	d := &model.Deck{
		ID:          uuid.NewString(),
		Title:       body.Title,
		Description: body.Description,
		IsPublic:    body.IsPublic,
		OwnerID:     currentUser(c),
		DocumentID:  body.DocumentID,
		CreatedAt:   time.Now().UTC(),
	}
	b.decks = append(b.decks, d)
	return c.JSON(http.StatusOK, d)
}

func (b *Backend) getDeck(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, _ := b.findDeckLocked(c.Param("id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Deck not found")
	}
	if !b.canReadDeckLocked(d, currentUser(c)) {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}
	out := *d
	out.Flashcards = []model.Flashcard{}
	for _, f := range b.cards {
		if f.DeckID == d.ID {
			out.Flashcards = append(out.Flashcards, *f)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) updateDeck(c echo.Context) error {
	var body model.UpdateDeckParams
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	d, _ := b.findDeckLocked(c.Param("id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Deck not found")
	}
	if d.OwnerID != currentUser(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}
	if body.Title != nil {
		d.Title = *body.Title
	}
	if body.Description != nil {
		d.Description = *body.Description
	}
	if body.IsPublic != nil {
		d.IsPublic = *body.IsPublic
	}
	now := time.Now().UTC()
	d.UpdatedAt = &now
	return c.JSON(http.StatusOK, d)
}

func (b *Backend) deleteDeck(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, i := b.findDeckLocked(c.Param("id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Deck not found")
	}
	if d.OwnerID != currentUser(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}
	b.decks = append(b.decks[:i], b.decks[i+1:]...)
	return c.JSON(http.StatusOK, d)
}

func (b *Backend) shareDeck(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, _ := b.findDeckLocked(c.Param("deck_id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Deck not found")
	}
	if d.OwnerID != currentUser(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}
	userID := c.Param("user_id")
	if _, ok := b.users[userID]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	b.shared[d.ID] = append(b.shared[d.ID], userID)
	return c.JSON(http.StatusOK, d)
}

func (b *Backend) findCardLocked(id string) (*model.Flashcard, int) {
	for i, f := range b.cards {
		if f.ID == id {
			return f, i
		}
	}
	return nil, -1
}

func (b *Backend) listFlashcards(c echo.Context) error {
	deckID := c.QueryParam("deck_id")

	b.mu.Lock()
	defer b.mu.Unlock()
	d, _ := b.findDeckLocked(deckID)
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Deck not found")
	}
	if !b.canReadDeckLocked(d, currentUser(c)) {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}
	out := []model.Flashcard{}
	for _, f := range b.cards {
		if f.DeckID == deckID {
			out = append(out, *f)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) createFlashcard(c echo.Context) error {
	var body model.CreateFlashcardParams
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	d, _ := b.findDeckLocked(body.DeckID)
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Deck not found")
	}
	if d.OwnerID != currentUser(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}
	f := &model.Flashcard{
		ID:        uuid.NewString(),
		DeckID:    body.DeckID,
		Question:  body.Question,
		Answer:    body.Answer,
		CreatedAt: time.Now().UTC(),
	}
	b.cards = append(b.cards, f)
	return c.JSON(http.StatusOK, f)
}

func (b *Backend) getFlashcard(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, _ := b.findCardLocked(c.Param("id"))
	if f == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Flashcard not found")
	}
	return c.JSON(http.StatusOK, f)
}

func (b *Backend) updateFlashcard(c echo.Context) error {
	var body model.UpdateFlashcardParams
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	f, _ := b.findCardLocked(c.Param("id"))
	if f == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Flashcard not found")
	}
	if body.Question != nil {
		f.Question = *body.Question
	}
	if body.Answer != nil {
		f.Answer = *body.Answer
	}
	now := time.Now().UTC()
	f.UpdatedAt = &now
	return c.JSON(http.StatusOK, f)
}

func (b *Backend) deleteFlashcard(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, i := b.findCardLocked(c.Param("id"))
	if f == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Flashcard not found")
	}
	b.cards = append(b.cards[:i], b.cards[i+1:]...)
	return c.JSON(http.StatusOK, f)
}

func (b *Backend) findDocumentLocked(id string) (*model.Document, int) {
	for i, d := range b.documents {
		if d.ID == id {
			return d, i
		}
	}
	return nil, -1
}

func (b *Backend) listDocuments(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []model.Document{}
	for _, d := range b.documents {
		if d.OwnerID == currentUser(c) {
			out = append(out, *d)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) uploadDocument(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	d := &model.Document{
		ID:        uuid.NewString(),
		Filename:  file.Filename,
		MimeType:  file.Header.Get("Content-Type"),
		Status:    model.DocumentStatusPending,
		OwnerID:   currentUser(c),
		CreatedAt: time.Now().UTC(),
	}
	b.documents = append(b.documents, d)
	return c.JSON(http.StatusOK, d)
}

func (b *Backend) getDocument(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, _ := b.findDocumentLocked(c.Param("id"))
	if d == nil || d.OwnerID != currentUser(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (b *Backend) getDocumentText(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, _ := b.findDocumentLocked(c.Param("id"))
	if d == nil || d.OwnerID != currentUser(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	text, ok := b.texts[d.ID]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Extracted text not found")
	}
	return c.JSON(http.StatusOK, model.ExtractedText{
		ID:         uuid.NewString(),
		DocumentID: d.ID,
		Content:    text,
		CreatedAt:  time.Now().UTC(),
	})
}

func (b *Backend) deleteDocument(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, i := b.findDocumentLocked(c.Param("id"))
	if d == nil || d.OwnerID != currentUser(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	b.documents = append(b.documents[:i], b.documents[i+1:]...)
	return c.JSON(http.StatusOK, d)
}

func (b *Backend) findSessionLocked(id string) *model.StudySession {
	for _, s := range b.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

type createSessionBody struct {
	DeckID string `json:"deck_id"`
}

func (b *Backend) createSession(c echo.Context) error {
	var body createSessionBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	d, _ := b.findDeckLocked(body.DeckID)
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Deck not found")
	}
	if !b.canReadDeckLocked(d, currentUser(c)) {
		return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
	}
	s := &model.StudySession{
		ID:        uuid.NewString(),
		DeckID:    d.ID,
		UserID:    currentUser(c),
		StartedAt: time.Now().UTC(),
	}
	b.sessions = append(b.sessions, s)
	return c.JSON(http.StatusOK, s)
}

func (b *Backend) listSessions(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []model.StudySession{}
	for _, s := range b.sessions {
		if s.UserID == currentUser(c) {
			out = append(out, *s)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) getSession(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.findSessionLocked(c.Param("id"))
	if s == nil || s.UserID != currentUser(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Study session not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (b *Backend) endSession(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.findSessionLocked(c.Param("id"))
	if s == nil || s.UserID != currentUser(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Study session not found")
	}
	if s.Ended() {
		return echo.NewHTTPError(http.StatusBadRequest, "Study session already ended")
	}
	now := time.Now().UTC()
	s.EndedAt = &now
	return c.JSON(http.StatusOK, s)
}

func (b *Backend) createRecord(c echo.Context) error {
	var body model.CreateStudyRecordParams
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.findSessionLocked(body.SessionID)
	if s == nil || s.UserID != currentUser(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Study session not found")
	}
	f, _ := b.findCardLocked(body.FlashcardID)
	if f == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Flashcard not found")
	}
	if f.DeckID != s.DeckID {
		return echo.NewHTTPError(http.StatusBadRequest, "Flashcard does not belong to the session's deck")
	}
	r := &model.StudyRecord{
		ID:          uuid.NewString(),
		SessionID:   s.ID,
		FlashcardID: f.ID,
		IsCorrect:   body.IsCorrect,
		EaseFactor:  2.5,
		Interval:    1,
		CreatedAt:   time.Now().UTC(),
	}
	b.records = append(b.records, r)
	return c.JSON(http.StatusOK, r)
}

func (b *Backend) listRecords(c echo.Context) error {
	sessionID := c.QueryParam("session_id")

	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.findSessionLocked(sessionID)
	if s == nil || s.UserID != currentUser(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Study session not found")
	}
	out := []model.StudyRecord{}
	for _, r := range b.records {
		if r.SessionID == sessionID {
			out = append(out, *r)
		}
	}
	return c.JSON(http.StatusOK, out)
}
