// Package repository provides the sensitive data store: an in-memory keyed
// lookup of full card records, read-only after initialization and therefore
// safely shared without synchronization.
package repository

import (
	"encoding/json"
	"os"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// MemoryCardRepository holds sensitive card records for the process lifetime.
// Lookups are pure reads with no side effects; callers are responsible for
// only fetching after a disclosure token has validated.
type MemoryCardRepository struct {
	cards map[string]cardsDomain.CardSensitiveData
}

// NewMemoryCardRepository creates a store from the given records.
func NewMemoryCardRepository(cards []cardsDomain.CardSensitiveData) *MemoryCardRepository {
	index := make(map[string]cardsDomain.CardSensitiveData, len(cards))
	for _, card := range cards {
		index[card.CardID] = card
	}
	return &MemoryCardRepository{cards: index}
}

// NewMemoryCardRepositoryFromFile loads the seed snapshot from a JSON file.
func NewMemoryCardRepositoryFromFile(path string) (*MemoryCardRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read card data file")
	}

	var cards []cardsDomain.CardSensitiveData
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse card data file")
	}

	return NewMemoryCardRepository(cards), nil
}

// Fetch returns the sensitive record for a card identifier.
// Returns ErrCardDataNotFound when no record exists.
func (r *MemoryCardRepository) Fetch(cardID string) (*cardsDomain.CardSensitiveData, error) {
	card, ok := r.cards[cardID]
	if !ok {
		return nil, cardsDomain.ErrCardDataNotFound
	}
	return &card, nil
}

// DefaultCardSnapshot returns the built-in demo data set used when no card
// data file is configured.
func DefaultCardSnapshot() []cardsDomain.CardSensitiveData {
	return []cardsDomain.CardSensitiveData{
		{
			CardID: "card_001",
			Alias:  "Crédito Visa",
			PAN:    cardsDomain.NewSecureString("4557168192411234"),
			CVV:    cardsDomain.NewSecureString("123"),
			Expiry: "12/28",
			Holder: "JUAN PEREZ",
		},
		{
			CardID: "card_003",
			Alias:  "Crédito Amex",
			PAN:    cardsDomain.NewSecureString("371449635399012"),
			CVV:    cardsDomain.NewSecureString("1234"),
			Expiry: "05/29",
			Holder: "CARLOS RAMIREZ",
		},
		{
			CardID: "card_004",
			Alias:  "Débito Visa",
			PAN:    cardsDomain.NewSecureString("4557128415153456"),
			CVV:    cardsDomain.NewSecureString("321"),
			Expiry: "11/26",
			Holder: "LUISA FERNANDEZ",
		},
		{
			CardID: "card_006",
			Alias:  "Crédito Visa Oro",
			PAN:    cardsDomain.NewSecureString("4045124115171122"),
			CVV:    cardsDomain.NewSecureString("999"),
			Expiry: "09/28",
			Holder: "SOFIA MARTINEZ",
		},
		{
			CardID: "card_007",
			Alias:  "Débito Amex Blue",
			PAN:    cardsDomain.NewSecureString("371449635393344"),
			CVV:    cardsDomain.NewSecureString("5678"),
			Expiry: "07/26",
			Holder: "RAFAEL TORRES",
		},
	}
}
