package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-client/token"
)

func TestRecordExpiry(t *testing.T) {
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	record := &token.Record{
		AccessToken: "abc123",
		TokenType:   "bearer",
		ExpiresIn:   7200,
		CreatedAt:   created.Unix(),
	}

	t.Run("fresh token is not expired", func(t *testing.T) {
		require.False(t, record.Expired(created))
	})

	t.Run("not expired well before the margin", func(t *testing.T) {
		require.False(t, record.Expired(created.Add(7000*time.Second)))
	})

	t.Run("not expired one second before the margin", func(t *testing.T) {
		require.False(t, record.Expired(created.Add(7139*time.Second)))
	})

	t.Run("expired exactly at the margin", func(t *testing.T) {
		require.True(t, record.Expired(created.Add(7140*time.Second)))
	})

	t.Run("expired after the margin", func(t *testing.T) {
		require.True(t, record.Expired(created.Add(7141*time.Second)))
	})
}

func TestRecordExpiresAt(t *testing.T) {
	record := &token.Record{
		AccessToken: "abc123",
		ExpiresIn:   7200,
		CreatedAt:   1_000_000,
	}
	require.Equal(t, int64(1_007_200), record.ExpiresAt())
}
