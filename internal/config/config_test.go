package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-client/internal/config"
)

func TestGetEnv(t *testing.T) {
	t.Run("returns the default when unset", func(t *testing.T) {
		require.Equal(t, "fallback", config.GetEnv("UNSET_TEST_VAR", "fallback"))
	})

	t.Run("returns the value when set", func(t *testing.T) {
		t.Setenv("SET_TEST_VAR", "value")
		require.Equal(t, "value", config.GetEnv("SET_TEST_VAR", "fallback"))
	})
}

func TestCredentialResolution(t *testing.T) {
	env := config.EnvVars{}

	t.Run("short names win over the long fallbacks", func(t *testing.T) {
		t.Setenv("FT_UID", "short-id")
		t.Setenv("FORTYTWO_CLIENT_ID", "long-id")
		t.Setenv("FT_SECRET", "short-secret")
		t.Setenv("FORTYTWO_CLIENT_SECRET", "long-secret")

		require.Equal(t, "short-id", env.GetClientID())
		require.Equal(t, "short-secret", env.GetClientSecret())
	})

	t.Run("long fallbacks apply when the short names are unset", func(t *testing.T) {
		t.Setenv("FT_UID", "")
		t.Setenv("FT_SECRET", "")
		t.Setenv("FORTYTWO_CLIENT_ID", "long-id")
		t.Setenv("FORTYTWO_CLIENT_SECRET", "long-secret")

		require.Equal(t, "long-id", env.GetClientID())
		require.Equal(t, "long-secret", env.GetClientSecret())
	})

	t.Run("empty when nothing is set", func(t *testing.T) {
		t.Setenv("FT_UID", "")
		t.Setenv("FT_SECRET", "")
		t.Setenv("FORTYTWO_CLIENT_ID", "")
		t.Setenv("FORTYTWO_CLIENT_SECRET", "")

		require.Empty(t, env.GetClientID())
		require.Empty(t, env.GetClientSecret())
	})
}

func TestOverrides(t *testing.T) {
	env := config.EnvVars{}

	t.Run("token file path", func(t *testing.T) {
		t.Setenv("FT_TOKEN_FILE", "")
		require.Empty(t, env.GetTokenFile())
		t.Setenv("FT_TOKEN_FILE", "/tmp/cache.json")
		require.Equal(t, "/tmp/cache.json", env.GetTokenFile())
	})

	t.Run("base URL", func(t *testing.T) {
		t.Setenv("FT_BASE_URL", "")
		require.Empty(t, env.GetBaseURL())
		t.Setenv("FT_BASE_URL", "https://sandbox.example.com")
		require.Equal(t, "https://sandbox.example.com", env.GetBaseURL())
	})
}
