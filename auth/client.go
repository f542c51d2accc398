package auth

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/jrsteele09/go-auth-client/token"
)

const (
	// DefaultBaseURL is the 42 API origin.
	DefaultBaseURL = "https://api.intra.42.fr"

	tokenEndpoint     = "/oauth/token"
	tokenInfoEndpoint = "/oauth/token/info"
)

// Config carries the construction inputs for a Client. Credential
// resolution (flags, environment) is the caller's concern; the client
// never reads ambient state itself.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string // defaults to DefaultBaseURL
}

// Client obtains client-credentials bearer tokens for the 42 API, reusing
// the cached token until it nears expiry. All I/O is synchronous; callers
// needing timeouts impose them through the context or the HTTP client.
type Client struct {
	config     Config
	store      token.Store
	httpClient *http.Client
	nowTime    func() time.Time
	logger     zerolog.Logger
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for the token exchange and
// the introspection call.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Client) {
		c.nowTime = nowFunc
	}
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New validates the configuration and builds a Client.
func New(config Config, store token.Store, options ...Option) (*Client, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, newError(KindConfiguration, 0, nil,
			"a client id and client secret are required (set FT_UID and FT_SECRET or pass them explicitly)")
	}
	if store == nil {
		return nil, newError(KindConfiguration, 0, nil, "a token store is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	c := &Client{
		config:     config,
		store:      store,
		httpClient: http.DefaultClient,
		nowTime:    time.Now,
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// GetToken returns a currently valid access token. Unless forceRefresh is
// set, a cached unexpired token is returned without any network call;
// otherwise a fresh token is exchanged and persisted before returning.
func (c *Client) GetToken(ctx context.Context, forceRefresh bool) (string, error) {
	if !forceRefresh {
		if record, ok := c.store.Load(); ok && !record.Expired(c.nowTime()) {
			c.logger.Debug().Int64("expires_at", record.ExpiresAt()).Msg("using cached token")
			return record.AccessToken, nil
		}
		c.logger.Debug().Msg("token cache miss")
	}

	record, err := c.exchange(ctx)
	if err != nil {
		return "", err
	}
	if err = c.store.Save(record); err != nil {
		return "", errors.Wrap(err, "[GetToken] persist token")
	}
	c.logger.Debug().Int64("expires_at", record.ExpiresAt()).Msg("token exchanged and cached")
	return record.AccessToken, nil
}

// GetHeaders wraps GetToken into ready-to-use request headers.
func (c *Client) GetHeaders(ctx context.Context, forceRefresh bool) (map[string]string, error) {
	accessToken, err := c.GetToken(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"Authorization": "Bearer " + accessToken,
		"Content-Type":  "application/json",
	}, nil
}

// RefreshToken discards the cached token and obtains a fresh one.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	return c.GetToken(ctx, true)
}

// GetTokenInfo fetches the provider's view of the current token from the
// introspection endpoint. On a 401 the cached token is assumed stale: one
// forced refresh is performed and the call retried once. The endpoint is
// diagnostic only, so every failure is reported as absent, never as an
// error.
func (c *Client) GetTokenInfo(ctx context.Context) (map[string]interface{}, bool) {
	info, status, err := c.fetchTokenInfo(ctx, false)
	if err == nil && status == http.StatusUnauthorized {
		c.logger.Debug().Msg("token info returned 401, forcing a refresh and retrying once")
		info, status, err = c.fetchTokenInfo(ctx, true)
	}
	if err != nil || status < 200 || status >= 300 {
		return nil, false
	}
	return info, true
}

func (c *Client) fetchTokenInfo(ctx context.Context, forceRefresh bool) (map[string]interface{}, int, error) {
	headers, err := c.GetHeaders(ctx, forceRefresh)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+tokenInfoEndpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	var info map[string]interface{}
	if err = json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, resp.StatusCode, err
	}
	return info, resp.StatusCode, nil
}

// exchange performs the client-credentials grant against the token
// endpoint and converts the result into a Record stamped with the current
// time. Credentials travel in the form body, not the Authorization
// header, which is what the provider expects.
func (c *Client) exchange(ctx context.Context) (*token.Record, error) {
	exchangeConfig := &clientcredentials.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		TokenURL:     c.config.BaseURL + tokenEndpoint,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	issued, err := exchangeConfig.Token(ctx)
	if err != nil {
		return nil, classifyExchangeError(err)
	}

	record := &token.Record{
		AccessToken: issued.AccessToken,
		TokenType:   token.DefaultTokenType,
		ExpiresIn:   token.DefaultExpiresIn,
		CreatedAt:   c.nowTime().Unix(),
	}
	if issued.TokenType != "" {
		record.TokenType = issued.TokenType
	}
	if expiresIn, ok := issued.Extra("expires_in").(float64); ok && expiresIn > 0 {
		record.ExpiresIn = int64(expiresIn)
	}
	if scope, ok := issued.Extra("scope").(string); ok && scope != "" {
		record.Scope = utils.Ptr(scope)
	}
	return record, nil
}

func classifyExchangeError(err error) *Error {
	var retrieveErr *oauth2.RetrieveError
	if stderrors.As(err, &retrieveErr) {
		status := retrieveErr.Response.StatusCode
		body := strings.TrimSpace(string(retrieveErr.Body))
		switch status {
		case http.StatusBadRequest:
			return newError(KindTokenExchange, status, err,
				"malformed token request: %s (check the client id and secret format)", body)
		case http.StatusUnauthorized:
			return newError(KindAuthentication, status, err,
				"authentication failed: %s (check the client id and secret)", body)
		case http.StatusForbidden:
			return newError(KindAuthorization, status, err,
				"access denied: %s (check the application's permissions)", body)
		default:
			return newError(KindTokenExchange, status, err, "token request failed: %s", body)
		}
	}

	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return newError(KindTokenExchange, 0, err,
			"connection to the token endpoint failed (check the base URL uses HTTPS): %v", urlErr.Err)
	}

	// Parse failures and a success response without an access_token land here.
	return newError(KindTokenExchange, 0, err, "token exchange failed: %v", err)
}
