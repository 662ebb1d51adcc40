package app

import (
	"fmt"

	"github.com/monteroai/smiledental/internal/api"
	"github.com/monteroai/smiledental/internal/config"
	"github.com/monteroai/smiledental/internal/models"
	"github.com/monteroai/smiledental/internal/session"
)

// Shell owns the session lifecycle and hands the authenticated screens a
// shared API client. It is the only writer of the auth flag.
type Shell struct {
	Config   *config.Config
	API      *api.Client
	Sessions *session.Manager

	user          *models.User
	authenticated bool
}

func New(cfg *config.Config) (*Shell, error) {
	store, err := session.NewFileStore(cfg.SessionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return &Shell{
		Config:   cfg,
		API:      api.New(cfg.BackendURL),
		Sessions: session.NewManager(store),
	}, nil
}

// RestoreSession reads the persisted session once at cold start. Missing or
// expired state just means the auth flow is shown; it is not an error.
func (s *Shell) RestoreSession() bool {
	token, user, err := s.Sessions.Restore()
	if err != nil {
		return false
	}
	s.API.SetToken(token)
	s.user = user
	s.authenticated = true
	return true
}

// SetSession installs a freshly established session from the auth flow.
func (s *Shell) SetSession(user *models.User) {
	s.user = user
	s.authenticated = true
}

// Logout clears storage first and only then flips the in-memory state, so
// an authenticated shell never outlives its stored token.
func (s *Shell) Logout() error {
	if err := s.Sessions.Clear(); err != nil {
		return err
	}
	s.API.SetToken("")
	s.user = nil
	s.authenticated = false
	return nil
}

func (s *Shell) IsAuthenticated() bool {
	return s.authenticated
}

func (s *Shell) User() *models.User {
	return s.user
}

// Role is the viewer's role, or empty when signed out.
func (s *Shell) Role() models.Role {
	if s.user == nil {
		return ""
	}
	return s.user.Role
}
