package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

func TestMemoryCardRepositoryFetch(t *testing.T) {
	repo := NewMemoryCardRepository(DefaultCardSnapshot())

	t.Run("KnownCard", func(t *testing.T) {
		card, err := repo.Fetch("card_001")
		require.NoError(t, err)

		assert.Equal(t, "card_001", card.CardID)
		assert.Equal(t, "Crédito Visa", card.Alias)
		assert.Equal(t, "4557168192411234", card.PAN.Reveal())
		assert.Equal(t, "JUAN PEREZ", card.Holder)
	})

	t.Run("UnknownCard", func(t *testing.T) {
		card, err := repo.Fetch("card_002")
		assert.Nil(t, card)
		assert.True(t, apperrors.Is(err, cardsDomain.ErrCardDataNotFound))
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("FetchReturnsCopy", func(t *testing.T) {
		first, err := repo.Fetch("card_003")
		require.NoError(t, err)
		first.Holder = "MUTATED"

		second, err := repo.Fetch("card_003")
		require.NoError(t, err)
		assert.Equal(t, "CARLOS RAMIREZ", second.Holder)
	})
}

func TestNewMemoryCardRepositoryFromFile(t *testing.T) {
	t.Run("LoadsSnapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cards.json")
		snapshot := `[
			{
				"cardId": "card_100",
				"alias": "Test Card",
				"pan": "4111111111111111",
				"cvv": "987",
				"expiry": "01/30",
				"holder": "TEST HOLDER"
			}
		]`
		require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o600))

		repo, err := NewMemoryCardRepositoryFromFile(path)
		require.NoError(t, err)

		card, err := repo.Fetch("card_100")
		require.NoError(t, err)
		assert.Equal(t, "4111111111111111", card.PAN.Reveal())
		assert.Equal(t, "987", card.CVV.Reveal())
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := NewMemoryCardRepositoryFromFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cards.json")
		require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o600))

		_, err := NewMemoryCardRepositoryFromFile(path)
		assert.Error(t, err)
	})
}
