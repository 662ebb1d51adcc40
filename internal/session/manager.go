package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v3/jwt"

	"github.com/monteroai/smiledental/internal/models"
)

const (
	keyToken = "auth_token"
	keyUser  = "user_profile"
)

// ErrNoSession means nothing usable is persisted: never logged in, logged
// out, or the stored token has already expired.
var ErrNoSession = errors.New("no stored session")

// Manager persists the two session keys (the opaque bearer token and the
// serialized user profile) and restores them once at cold start.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Save writes the session after a successful login or registration.
func (m *Manager) Save(token string, user *models.User) error {
	if err := m.store.Set(keyToken, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}
	if err := m.store.Set(keyUser, string(data)); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

// Restore reads the persisted session. The cached profile lets the shell
// come up authenticated without a network call; the token is only
// re-validated implicitly by the next API call's 401.
func (m *Manager) Restore() (string, *models.User, error) {
	token, err := m.store.Get(keyToken)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrNoSession
		}
		return "", nil, err
	}

	if tokenExpired(token) {
		// stale credential: drop it rather than restoring a session
		// the backend will reject anyway
		_ = m.Clear()
		return "", nil, ErrNoSession
	}

	raw, err := m.store.Get(keyUser)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrNoSession
		}
		return "", nil, err
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return "", nil, fmt.Errorf("failed to parse cached user: %w", err)
	}
	return token, &user, nil
}

// Clear deletes both keys. Callers flip their auth flags only after this
// returns, so authenticated UI is never shown without a stored token.
func (m *Manager) Clear() error {
	if err := m.store.Delete(keyToken); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	if err := m.store.Delete(keyUser); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// tokenExpired peeks at the exp claim without verifying the signature.
// Verification is the backend's job; this only avoids restoring a session
// that is guaranteed dead. Tokens that are not JWTs are kept as-is.
func tokenExpired(token string) bool {
	parsed, err := jwt.ParseSigned(token)
	if err != nil {
		return false
	}
	var claims jwt.Claims
	if err := parsed.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return false
	}
	return claims.Expiry != nil && claims.Expiry.Time().Before(time.Now())
}
