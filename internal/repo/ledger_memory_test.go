package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beadvault/internal/models"
)

func TestLedgerRecentNewestFirst(t *testing.T) {
	ledger := NewInMemoryLedgerRepository()
	for i := 0; i < 5; i++ {
		_, err := ledger.Append(models.LedgerEntry{ItemName: "A1", Action: models.ActionConsume, Amount: i + 1})
		require.NoError(t, err)
	}

	recent, err := ledger.Recent(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, 5, recent[0].ID)
	assert.Equal(t, 3, recent[2].ID)

	recent, err = ledger.Recent(50)
	require.NoError(t, err)
	assert.Len(t, recent, 5)
}
