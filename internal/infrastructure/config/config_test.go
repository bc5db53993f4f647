package config

import (
	"errors"
	"testing"
	"time"

	"rental-service/internal/domain/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OWNERREZ_API_V2", "")
	t.Setenv("GUEST_MAX_PAGES", "")
	t.Setenv("SESSION_COOKIE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.ownerrez.com/v2", cfg.OwnerRezV2URL)
	assert.Equal(t, 50, cfg.GuestMaxPages)
	assert.Equal(t, "authToken", cfg.SessionCookie)
	assert.Equal(t, "2024-01-01T00:00:00Z", cfg.DefaultSince)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("GUEST_MAX_PAGES", "7")
	t.Setenv("GUEST_FETCH_TIMEOUT", "90s")
	t.Setenv("THUMBNAIL_TIMEOUT", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.GuestMaxPages)
	assert.Equal(t, 90*time.Second, cfg.GuestFetchTimeout)
	assert.Equal(t, 3*time.Second, cfg.ThumbnailTimeout)
}

func TestValidate_ReportsEveryMissingKey(t *testing.T) {
	cfg := &Config{OwnerRezV2URL: "https://api.ownerrez.com/v2", MongoURI: "mongodb://localhost"}

	err := cfg.Validate()
	require.Error(t, err)

	var cfgErr *apperror.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"OWNERREZ_USERNAME", "OWNERREZ_ACCESS_TOKEN", "SESSION_SECRET"}, cfgErr.Missing)
}

func TestValidate_Complete(t *testing.T) {
	cfg := &Config{
		OwnerRezUsername:    "user@example.com",
		OwnerRezAccessToken: "pt_token",
		OwnerRezV2URL:       "https://api.ownerrez.com/v2",
		MongoURI:            "mongodb://localhost",
		SessionSecret:       "secret",
	}
	assert.NoError(t, cfg.Validate())
}
