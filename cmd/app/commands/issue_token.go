package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/allisson/cardvault/internal/config"
	tokenUseCase "github.com/allisson/cardvault/internal/token/usecase"
)

// issueTokenOutput is the JSON shape of the issue-token command output.
type issueTokenOutput struct {
	Token     string `json:"token"`
	CardID    string `json:"card_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// RunIssueToken mints a disclosure token scoped to a card and prints it.
// A ttlSeconds of zero uses the configured default; any value below the
// configured floor is raised to it. Outputs in either text or JSON format.
func RunIssueToken(
	ctx context.Context,
	authority tokenUseCase.Authority,
	cfg *config.Config,
	logger *slog.Logger,
	cardID string,
	ttlSeconds int,
	format string,
	io IOTuple,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: must be 'text' or 'json'")
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = cfg.TokenTTL
	}
	if ttl < cfg.TokenTTLFloor {
		ttl = cfg.TokenTTLFloor
	}

	token, payload, err := authority.Issue(cardID, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("token issued",
		slog.String("card_id", cardID),
		slog.Duration("ttl", ttl),
	)

	output := issueTokenOutput{
		Token:     token,
		CardID:    payload.CardID,
		IssuedAt:  payload.IssuedAt,
		ExpiresAt: payload.ExpiresAt,
	}

	if format == "json" {
		encoder := json.NewEncoder(io.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	fmt.Fprintf(io.Writer, "Token: %s\n", output.Token)
	fmt.Fprintf(io.Writer, "Card ID: %s\n", output.CardID)
	fmt.Fprintf(io.Writer, "Expires at: %s\n", payload.ExpiresAtTime().Format(time.RFC3339))
	return nil
}
