package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monteroai/smiledental/internal/config"
	"github.com/monteroai/smiledental/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		BackendURL:  "http://localhost:8001",
		SessionPath: t.TempDir(),
	}
}

func TestColdStartWithoutSession(t *testing.T) {
	shell, err := New(testConfig(t))
	require.NoError(t, err)

	assert.False(t, shell.RestoreSession())
	assert.False(t, shell.IsAuthenticated())
	assert.Nil(t, shell.User())
	assert.Empty(t, shell.Role())
}

func TestSessionSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	user := &models.User{ID: "u-1", Email: "pro@example.com", Role: models.RoleProfessional}
	require.NoError(t, first.Sessions.Save("opaque-session-id", user))

	// simulate a cold start over the same session directory
	second, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, second.RestoreSession())
	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "pro@example.com", second.User().Email)
	assert.Equal(t, models.RoleProfessional, second.Role())
	assert.Equal(t, "opaque-session-id", second.API.Token())
}

func TestLogoutClearsStorageAndState(t *testing.T) {
	cfg := testConfig(t)
	shell, err := New(cfg)
	require.NoError(t, err)
	user := &models.User{ID: "u-1", Email: "pro@example.com", Role: models.RoleProfessional}
	require.NoError(t, shell.Sessions.Save("opaque-session-id", user))
	require.True(t, shell.RestoreSession())

	require.NoError(t, shell.Logout())

	assert.False(t, shell.IsAuthenticated())
	assert.Nil(t, shell.User())
	assert.Empty(t, shell.API.Token())

	// nothing left to restore on the next start
	fresh, err := New(cfg)
	require.NoError(t, err)
	assert.False(t, fresh.RestoreSession())
}
