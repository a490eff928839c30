package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtroode/flashcards-client/internal/model"
)

func (c *CLI) table() []command {
	return []command{
		{name: "login", help: "sign in and store the session", setup: c.login},
		{name: "logout", help: "revoke the session and clear local state", setup: c.logout},
		{name: "register", help: "create an account", setup: c.register},
		{name: "whoami", help: "fetch the current user profile", setup: c.whoami},
		{name: "status", help: "show the local session", setup: c.status},
		{name: "refresh", help: "exchange the refresh token for a new pair", setup: c.refresh},
		{name: "profile update", help: "change email or full name", setup: c.profileUpdate},

		{name: "decks list", help: "list own decks (-public for public decks)", setup: c.decksList},
		{name: "decks get", args: "<deck-id>", nargs: 1, help: "show a deck with its flashcards", setup: c.decksGet},
		{name: "decks create", help: "create a deck", setup: c.decksCreate},
		{name: "decks update", args: "<deck-id>", nargs: 1, help: "change a deck", setup: c.decksUpdate},
		{name: "decks delete", args: "<deck-id>", nargs: 1, help: "delete a deck", setup: c.decksDelete},
		{name: "decks share", args: "<deck-id> <user-id>", nargs: 2, help: "share a deck with a user", setup: c.decksShare},

		{name: "cards list", args: "<deck-id>", nargs: 1, help: "list the flashcards of a deck", setup: c.cardsList},
		{name: "cards get", args: "<card-id>", nargs: 1, help: "show a flashcard", setup: c.cardsGet},
		{name: "cards create", help: "add a flashcard to a deck", setup: c.cardsCreate},
		{name: "cards update", args: "<card-id>", nargs: 1, help: "change a flashcard", setup: c.cardsUpdate},
		{name: "cards delete", args: "<card-id>", nargs: 1, help: "delete a flashcard", setup: c.cardsDelete},

		{name: "docs list", help: "list uploaded documents", setup: c.docsList},
		{name: "docs get", args: "<document-id>", nargs: 1, help: "show a document", setup: c.docsGet},
		{name: "docs upload", args: "[path]", help: "upload a file, or an object with -object", setup: c.docsUpload},
		{name: "docs text", args: "<document-id>", nargs: 1, help: "show the extracted text of a document", setup: c.docsText},
		{name: "docs delete", args: "<document-id>", nargs: 1, help: "delete a document", setup: c.docsDelete},

		{name: "study start", args: "<deck-id>", nargs: 1, help: "start a study session", setup: c.studyStart},
		{name: "study list", help: "list study sessions", setup: c.studyList},
		{name: "study get", args: "<session-id>", nargs: 1, help: "show a study session", setup: c.studyGet},
		{name: "study end", args: "<session-id>", nargs: 1, help: "end a study session", setup: c.studyEnd},
		{name: "study answer", help: "record an answer", setup: c.studyAnswer},
		{name: "study records", args: "<session-id>", nargs: 1, help: "list the answers of a session", setup: c.studyRecords},
	}
}

func (c *CLI) login(fs *flag.FlagSet) action {
	username := fs.String("username", "", "account username")

	return func(ctx context.Context, a *App, _ []string) error {
		password, err := c.password("Password: ")
		if err != nil {
			return err
		}
		ok := a.Auth.Login(ctx, *username, password)
		return done(c, ok, a.Auth, "Login failed", "logged in as "+*username)
	}
}

func (c *CLI) logout(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, _ []string) error {
		a.Auth.Logout(ctx)
		return c.printf("logged out\n")
	}
}

func (c *CLI) register(fs *flag.FlagSet) action {
	var req model.RegisterRequest
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.FullName, "full-name", "", "full name")

	return func(ctx context.Context, a *App, _ []string) error {
		password, err := c.password("Password: ")
		if err != nil {
			return err
		}
		req.Password = password
		ok := a.Auth.Register(ctx, req)
		return done(c, ok, a.Auth, "Registration failed", "registered "+req.Username+", run flashcards login")
	}
}

func (c *CLI) whoami(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, _ []string) error {
		return emit(c, a.Auth.FetchUserProfile(ctx), a.Auth, "Failed to fetch user profile")
	}
}

type statusView struct {
	Authenticated bool       `json:"authenticated"`
	UserID        string     `json:"user_id,omitempty"`
	Username      string     `json:"username,omitempty"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Expired       bool       `json:"expired"`
}

func (c *CLI) status(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, _ []string) error {
		st := a.Auth.Status(ctx)
		view := statusView{
			Authenticated: st.Authenticated,
			UserID:        st.UserID,
			Username:      st.Username,
		}
		if st.Claims != nil {
			if !st.Claims.IssuedAt.IsZero() {
				view.IssuedAt = &st.Claims.IssuedAt
			}
			if !st.Claims.ExpiresAt.IsZero() {
				view.ExpiresAt = &st.Claims.ExpiresAt
			}
			view.Expired = st.Claims.Expired(time.Now())
		}
		return c.printJSON(view)
	}
}

func (c *CLI) refresh(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, _ []string) error {
		ok := a.Auth.RefreshAccessToken(ctx)
		return done(c, ok, a.Auth, "Session expired", "session refreshed")
	}
}

func (c *CLI) profileUpdate(fs *flag.FlagSet) action {
	email := fs.String("email", "", "new email address")
	fullName := fs.String("full-name", "", "new full name")

	return func(ctx context.Context, a *App, _ []string) error {
		set := setFlags(fs)
		var update model.ProfileUpdate
		if set["email"] {
			update.Email = email
		}
		if set["full-name"] {
			update.FullName = fullName
		}
		if !a.Auth.UpdateProfile(ctx, update) {
			return failure(a.Auth, "Profile update failed")
		}
		return emit(c, a.Auth.CurrentUser(ctx), a.Auth, "Profile update failed")
	}
}

func (c *CLI) decksList(fs *flag.FlagSet) action {
	public := fs.Bool("public", false, "list public decks of all users")

	return func(ctx context.Context, a *App, _ []string) error {
		if *public {
			return emitList(c, a.Decks.FetchPublicDecks(ctx), a.Decks)
		}
		return emitList(c, a.Decks.FetchDecks(ctx), a.Decks)
	}
}

func (c *CLI) decksGet(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		return emit(c, a.Decks.FetchDeck(ctx, args[0]), a.Decks, "Failed to fetch deck")
	}
}

func (c *CLI) decksCreate(fs *flag.FlagSet) action {
	var params model.CreateDeckParams
	fs.StringVar(&params.Title, "title", "", "deck title")
	fs.StringVar(&params.Description, "description", "", "deck description")
	fs.BoolVar(&params.IsPublic, "public", false, "make the deck public")
	documentID := fs.String("document", "", "id of the document the deck was generated from")

	return func(ctx context.Context, a *App, _ []string) error {
		if *documentID != "" {
			params.DocumentID = documentID
		}
		return emit(c, a.Decks.CreateDeck(ctx, params), a.Decks, "Failed to create deck")
	}
}

func (c *CLI) decksUpdate(fs *flag.FlagSet) action {
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	public := fs.Bool("public", false, "public visibility")

	return func(ctx context.Context, a *App, args []string) error {
		set := setFlags(fs)
		var params model.UpdateDeckParams
		if set["title"] {
			params.Title = title
		}
		if set["description"] {
			params.Description = description
		}
		if set["public"] {
			params.IsPublic = public
		}
		return emit(c, a.Decks.UpdateDeck(ctx, args[0], params), a.Decks, "Failed to update deck")
	}
}

func (c *CLI) decksDelete(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		ok := a.Decks.DeleteDeck(ctx, args[0])
		return done(c, ok, a.Decks, "Failed to delete deck", "deleted deck "+args[0])
	}
}

func (c *CLI) decksShare(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		return emit(c, a.Decks.ShareDeck(ctx, args[0], args[1]), a.Decks, "Failed to share deck")
	}
}

func (c *CLI) cardsList(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		return emitList(c, a.Flashcards.FetchFlashcards(ctx, args[0]), a.Flashcards)
	}
}

func (c *CLI) cardsGet(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		return emit(c, a.Flashcards.FetchFlashcard(ctx, args[0]), a.Flashcards, "Failed to fetch flashcard")
	}
}

func (c *CLI) cardsCreate(fs *flag.FlagSet) action {
	var params model.CreateFlashcardParams
	fs.StringVar(&params.DeckID, "deck", "", "deck id")
	fs.StringVar(&params.Question, "question", "", "question side")
	fs.StringVar(&params.Answer, "answer", "", "answer side")

	return func(ctx context.Context, a *App, _ []string) error {
		return emit(c, a.Flashcards.CreateFlashcard(ctx, params), a.Flashcards, "Failed to create flashcard")
	}
}

func (c *CLI) cardsUpdate(fs *flag.FlagSet) action {
	question := fs.String("question", "", "new question")
	answer := fs.String("answer", "", "new answer")

	return func(ctx context.Context, a *App, args []string) error {
		set := setFlags(fs)
		var params model.UpdateFlashcardParams
		if set["question"] {
			params.Question = question
		}
		if set["answer"] {
			params.Answer = answer
		}
		return emit(c, a.Flashcards.UpdateFlashcard(ctx, args[0], params), a.Flashcards, "Failed to update flashcard")
	}
}

func (c *CLI) cardsDelete(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		ok := a.Flashcards.DeleteFlashcard(ctx, args[0])
		return done(c, ok, a.Flashcards, "Failed to delete flashcard", "deleted flashcard "+args[0])
	}
}

func (c *CLI) docsList(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, _ []string) error {
		return emitList(c, a.Documents.FetchDocuments(ctx), a.Documents)
	}
}

func (c *CLI) docsGet(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		return emit(c, a.Documents.FetchDocument(ctx, args[0]), a.Documents, "Failed to fetch document")
	}
}

func (c *CLI) docsUpload(fs *flag.FlagSet) action {
	object := fs.String("object", "", "object key in the configured bucket")

	return func(ctx context.Context, a *App, args []string) error {
		switch {
		case *object != "" && len(args) > 0:
			return errors.New("give either a path or -object, not both")
		case *object != "":
			return emit(c, a.Documents.UploadFromSource(ctx, *object), a.Documents, "Failed to upload document")
		case len(args) == 0:
			return errors.New("a path or -object is required")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		return emit(c, a.Documents.UploadDocument(ctx, filepath.Base(args[0]), f), a.Documents, "Failed to upload document")
	}
}

func (c *CLI) docsText(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		return emit(c, a.Documents.FetchDocumentText(ctx, args[0]), a.Documents, "Failed to fetch document text")
	}
}

func (c *CLI) docsDelete(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		ok := a.Documents.DeleteDocument(ctx, args[0])
		return done(c, ok, a.Documents, "Failed to delete document", "deleted document "+args[0])
	}
}

func (c *CLI) studyStart(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		return emit(c, a.Study.CreateStudySession(ctx, args[0]), a.Study, "Failed to create study session")
	}
}

func (c *CLI) studyList(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, _ []string) error {
		return emitList(c, a.Study.FetchStudySessions(ctx), a.Study)
	}
}

func (c *CLI) studyGet(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		return emit(c, a.Study.FetchStudySession(ctx, args[0]), a.Study, "Failed to fetch study session")
	}
}

func (c *CLI) studyEnd(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		return emit(c, a.Study.EndStudySession(ctx, args[0]), a.Study, "Failed to end study session")
	}
}

func (c *CLI) studyAnswer(fs *flag.FlagSet) action {
	var params model.CreateStudyRecordParams
	fs.StringVar(&params.SessionID, "session", "", "study session id")
	fs.StringVar(&params.FlashcardID, "card", "", "flashcard id")
	fs.BoolVar(&params.IsCorrect, "correct", false, "the answer was correct")

	return func(ctx context.Context, a *App, _ []string) error {
		return emit(c, a.Study.CreateStudyRecord(ctx, params), a.Study, "Failed to create study record")
	}
}

func (c *CLI) studyRecords(_ *flag.FlagSet) action {
	return func(ctx context.Context, a *App, args []string) error {
		return emitList(c, a.Study.FetchStudyRecords(ctx, args[0]), a.Study)
	}
}
