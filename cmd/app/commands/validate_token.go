package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	tokenDomain "github.com/allisson/cardvault/internal/token/domain"
	tokenUseCase "github.com/allisson/cardvault/internal/token/usecase"
)

// validateTokenOutput is the JSON shape of the validate-token command output.
type validateTokenOutput struct {
	Valid            bool    `json:"valid"`
	CardID           string  `json:"card_id,omitempty"`
	RemainingSeconds float64 `json:"remaining_seconds,omitempty"`
	Code             string  `json:"code,omitempty"`
	Message          string  `json:"message,omitempty"`
}

// RunValidateToken checks a token against a card and prints the verdict.
// A rejected token is reported with its error code; the command itself only
// fails on bad arguments or output errors.
func RunValidateToken(
	ctx context.Context,
	authority tokenUseCase.Authority,
	logger *slog.Logger,
	token string,
	cardID string,
	format string,
	io IOTuple,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: must be 'text' or 'json'")
	}

	output := validateTokenOutput{}

	payload, err := authority.Validate(token, cardID)
	if err != nil {
		code, message := tokenDomain.CodeForError(err)
		output.Code = code
		output.Message = message
		logger.Info("token rejected",
			slog.String("card_id", cardID),
			slog.String("code", code),
		)
	} else {
		output.Valid = true
		output.CardID = payload.CardID
		output.RemainingSeconds = authority.RemainingSeconds(token, time.Now())
	}

	if format == "json" {
		encoder := json.NewEncoder(io.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	if output.Valid {
		fmt.Fprintf(io.Writer, "Token is valid for card %s\n", output.CardID)
		fmt.Fprintf(io.Writer, "Remaining: %.1fs\n", output.RemainingSeconds)
	} else {
		fmt.Fprintf(io.Writer, "Token rejected: %s (%s)\n", output.Message, output.Code)
	}
	return nil
}
