// Package app wires configuration, the token store, the REST client and the
// services into a ready-to-use client.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dtroode/flashcards-client/internal/api/resource"
	"github.com/dtroode/flashcards-client/internal/api/rest"
	"github.com/dtroode/flashcards-client/internal/config"
	"github.com/dtroode/flashcards-client/internal/logger"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/service"
	"github.com/dtroode/flashcards-client/internal/session"
	"github.com/dtroode/flashcards-client/internal/validatorx"
)

// App holds the wired client components for one process.
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Session *session.Context
	Client  *rest.Client

	Auth       *service.Auth
	Tokens     *service.TokenService
	Decks      *service.Decks
	Flashcards *service.Flashcards
	Documents  *service.Documents
	Study      *service.Study

	closers []func() error
}

type options struct {
	store      model.KeyValueStore
	source     model.DocumentSource
	httpClient *http.Client
	navigate   rest.NavigateFunc
}

// Option overrides a component that New would otherwise build from config.
type Option func(*options)

// WithStore uses store instead of the configured store driver.
func WithStore(store model.KeyValueStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithDocumentSource uses source instead of the configured object storage.
func WithDocumentSource(source model.DocumentSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithHTTPClient uses hc instead of a client built from API config.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithNavigator sets the hook invoked when the session is forcibly ended.
func WithNavigator(fn rest.NavigateFunc) Option {
	return func(o *options) {
		o.navigate = fn
	}
}

// New builds an App from cfg. The caller must Close it.
func New(ctx context.Context, cfg *config.Config, logger *logger.Logger, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg, Logger: logger}

	store := o.store
	if store == nil {
		s, closeStore, err := OpenStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		store = s
		a.closers = append(a.closers, closeStore)
	}
	a.Session = session.New(store)

	hc := o.httpClient
	if hc == nil {
		tlsConfig, err := rest.NewTLSConfig(cfg.API.CAFile)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		hc = rest.NewHTTPClient(cfg.API.Timeout, tlsConfig, logger)
	}

	navigate := o.navigate
	if navigate == nil {
		navigate = func(_ context.Context, surface string) {
			logger.Warn("Session ended, sign in again", "surface", surface)
		}
	}

	client, err := rest.NewClient(cfg.API.URL, a.Session, logger,
		rest.WithHTTPClient(hc),
		rest.WithLoginSurface(cfg.API.LoginSurface),
		rest.WithNavigator(navigate),
	)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Client = client

	source := o.source
	if source == nil && cfg.Storage.Enabled() {
		source, err = OpenDocumentSource(ctx, cfg.Storage)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	validator := validatorx.New()
	authAPI := resource.NewAuth(client)

	a.Tokens = service.NewTokenService(authAPI, a.Session, logger)
	client.SetRefresher(a.Tokens)

	a.Auth = service.NewAuth(authAPI, a.Session, client, validator, logger)
	a.Decks = service.NewDecks(resource.NewDecks(client), validator, logger)
	a.Flashcards = service.NewFlashcards(resource.NewFlashcards(client), validator, logger)
	a.Documents = service.NewDocuments(resource.NewDocuments(client), source, logger)
	a.Study = service.NewStudy(resource.NewStudy(client), validator, logger)

	return a, nil
}

// Close releases the store and any background watchers.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("failed to close app: %w", errors.Join(errs...))
	}
	return nil
}
