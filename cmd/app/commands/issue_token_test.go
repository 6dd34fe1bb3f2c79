package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardvault/internal/config"
	tokenService "github.com/allisson/cardvault/internal/token/service"
	tokenUseCase "github.com/allisson/cardvault/internal/token/usecase"
)

func newTestAuthority(t *testing.T) tokenUseCase.Authority {
	t.Helper()

	signer, err := tokenService.NewHMACSigner("command-test-secret")
	require.NoError(t, err)
	return tokenUseCase.NewAuthority(signer, tokenService.NewURLJSONCodec())
}

func newTestConfig() *config.Config {
	return &config.Config{
		TokenTTL:      25 * time.Second,
		TokenTTLFloor: 5 * time.Second,
	}
}

func TestRunIssueToken(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("text-output", func(t *testing.T) {
		authority := newTestAuthority(t)
		var buf bytes.Buffer

		err := RunIssueToken(ctx, authority, newTestConfig(), logger,
			"card_001", 0, "text", IOTuple{Writer: &buf})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Token: ")
		assert.Contains(t, buf.String(), "Card ID: card_001")
	})

	t.Run("json-output-round-trips-through-validate", func(t *testing.T) {
		authority := newTestAuthority(t)
		var buf bytes.Buffer

		err := RunIssueToken(ctx, authority, newTestConfig(), logger,
			"card_003", 30, "json", IOTuple{Writer: &buf})
		require.NoError(t, err)

		var output issueTokenOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
		assert.Equal(t, "card_003", output.CardID)
		assert.Greater(t, output.ExpiresAt, output.IssuedAt)

		_, err = authority.Validate(output.Token, "card_003")
		assert.NoError(t, err)
	})

	t.Run("ttl-below-floor-is-raised", func(t *testing.T) {
		authority := newTestAuthority(t)
		var buf bytes.Buffer

		err := RunIssueToken(ctx, authority, newTestConfig(), logger,
			"card_001", 1, "json", IOTuple{Writer: &buf})
		require.NoError(t, err)

		var output issueTokenOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
		assert.GreaterOrEqual(t, output.ExpiresAt-output.IssuedAt, int64(5000))
	})

	t.Run("invalid-format", func(t *testing.T) {
		authority := newTestAuthority(t)

		err := RunIssueToken(ctx, authority, newTestConfig(), logger,
			"card_001", 0, "yaml", IOTuple{Writer: io.Discard})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}
