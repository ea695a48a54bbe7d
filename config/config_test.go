package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_TIMEOUT", "")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_MAX_RETRIES", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.StoreMaxRetries)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "https://picsum.photos/200", cfg.PlaceholderImageURL)
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvList("ALLOWED_ORIGINS", nil))

	assert.Equal(t, []string{"x"}, getEnvList("UNSET_LIST_FOR_TEST", []string{"x"}))
}

func TestJWKSUrlTrimmed(t *testing.T) {
	t.Setenv("JWKS_URL", "https://id.example.com/jwks/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://id.example.com/jwks", cfg.JWKSUrl)
}
