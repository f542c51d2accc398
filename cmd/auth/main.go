package main

import (
	"context"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-auth-client/auth"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/token"
)

const appName = "42 Auth"

// The access token goes to stdout so it can be piped; everything else
// (banner, logs, token info) goes to stderr.
type options struct {
	ClientID     string `long:"client-id" description:"OAuth2 client id (falls back to FT_UID / FORTYTWO_CLIENT_ID)"`
	ClientSecret string `long:"client-secret" description:"OAuth2 client secret (falls back to FT_SECRET / FORTYTWO_CLIENT_SECRET)"`
	TokenFile    string `long:"token-file" description:"token cache file path (falls back to FT_TOKEN_FILE, default ~/.42_token.json)"`
	BaseURL      string `long:"base-url" description:"API base URL (falls back to FT_BASE_URL)"`
	TokenInfo    bool   `long:"token-info" description:"also fetch and display token introspection info"`
	ForceRefresh bool   `long:"force-refresh" description:"discard the cached token and fetch a new one"`
	Clear        bool   `long:"clear" description:"delete the cached token and exit"`
	Verbose      bool   `short:"v" long:"verbose" description:"enable debug logging"`
}

const (
	exitFailure       = 1
	exitConfiguration = 2
)

func main() {
	opts := &options{}
	if _, err := flags.ParseArgs(opts, os.Args[1:]); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(exitConfiguration)
	}
	os.Exit(run(opts))
}

func run(opts *options) int {
	_ = godotenv.Load()

	logger := newLogger(opts.Verbose)
	env := config.EnvVars{}

	store, err := token.NewFileStore(resolve(opts.TokenFile, env.GetTokenFile()))
	if err != nil {
		logger.Error().Err(err).Msg("failed to open the token store")
		return exitFailure
	}

	if opts.Clear {
		if err = store.Clear(); err != nil {
			logger.Error().Err(err).Msg("failed to clear the token cache")
			return exitFailure
		}
		logger.Info().Str("path", store.Path()).Msg("token cache cleared")
		return 0
	}

	displayAppname(appName)

	client, err := auth.New(auth.Config{
		ClientID:     resolve(opts.ClientID, env.GetClientID()),
		ClientSecret: resolve(opts.ClientSecret, env.GetClientSecret()),
		BaseURL:      resolve(opts.BaseURL, env.GetBaseURL()),
	}, store, auth.WithLogger(logger))
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialise the auth client")
		return exitCode(err)
	}

	ctx := context.Background()
	logger.Info().Bool("force_refresh", opts.ForceRefresh).Msg("obtaining access token")
	accessToken, err := client.GetToken(ctx, opts.ForceRefresh)
	if err != nil {
		logger.Error().Err(err).Msg("failed to obtain an access token")
		return exitCode(err)
	}
	logger.Info().Str("token", truncateToken(accessToken)).Msg("access token obtained")

	if opts.TokenInfo {
		info, ok := client.GetTokenInfo(ctx)
		if !ok {
			logger.Warn().Msg("token info unavailable")
		} else {
			logger.Info().Fields(info).Msg("token info")
		}
	}

	fmt.Println(accessToken)
	return 0
}

// resolve prefers the explicit flag value over the environment one.
func resolve(flagValue, envValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return envValue
}

func exitCode(err error) int {
	if clientErr, ok := auth.AsError(err); ok && clientErr.Kind == auth.KindConfiguration {
		return exitConfiguration
	}
	return exitFailure
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func truncateToken(accessToken string) string {
	if len(accessToken) <= 20 {
		return accessToken
	}
	return accessToken[:20] + "..."
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	figure.Write(os.Stderr, myFigure)
	fmt.Fprintln(os.Stderr)
}
