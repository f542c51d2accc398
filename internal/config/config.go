package config

import "os"

// Environment variables recognised by the CLI. The short FT_* names are
// canonical; the FORTYTWO_* names are accepted as fallbacks. The auth
// client itself never reads the environment - resolution happens here and
// the result is injected at construction.
const (
	clientIDEnvVar          = "FT_UID"
	clientIDFallbackVar     = "FORTYTWO_CLIENT_ID"
	clientSecretEnvVar      = "FT_SECRET"
	clientSecretFallbackVar = "FORTYTWO_CLIENT_SECRET"
	tokenFileEnvVar         = "FT_TOKEN_FILE"
	baseURLEnvVar           = "FT_BASE_URL"
)

// EnvVars resolves configuration from the process environment.
type EnvVars struct{}

func (EnvVars) GetClientID() string {
	return GetEnv(clientIDEnvVar, GetEnv(clientIDFallbackVar, ""))
}

func (EnvVars) GetClientSecret() string {
	return GetEnv(clientSecretEnvVar, GetEnv(clientSecretFallbackVar, ""))
}

// GetTokenFile returns the configured cache file path, empty when unset
// (the store then falls back to its home-directory default).
func (EnvVars) GetTokenFile() string {
	return GetEnv(tokenFileEnvVar, "")
}

// GetBaseURL returns the configured API origin, empty when unset (the
// client then falls back to the production API).
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLEnvVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
