package token

import "time"

const (
	// DefaultExpiresIn is assumed when the provider omits expires_in (2 hours).
	DefaultExpiresIn = 7200

	// DefaultTokenType is assumed when the provider omits token_type.
	DefaultTokenType = "bearer"

	// expiryMargin is subtracted from the reported lifetime so a token is
	// refreshed slightly before the provider starts rejecting it.
	expiryMargin = 60
)

// Record is a single issued access token together with its issuance
// metadata. The JSON layout is also the on-disk cache format.
type Record struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	CreatedAt   int64   `json:"created_at"`
	Scope       *string `json:"scope"`
}

// ExpiresAt returns the unix time at which the provider considers the
// token invalid.
func (r *Record) ExpiresAt() int64 {
	return r.CreatedAt + r.ExpiresIn
}

// Expired reports whether the token should no longer be used at the given
// time. The 60 second margin means a token counts as expired slightly
// before its true expiry.
func (r *Record) Expired(now time.Time) bool {
	return now.Unix()-r.CreatedAt >= r.ExpiresIn-expiryMargin
}
