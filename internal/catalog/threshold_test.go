package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"beadvault/internal/models"
)

func TestEffectiveThreshold(t *testing.T) {
	assert.Equal(t, 300, EffectiveThreshold(models.Item{Threshold: 300}))
	assert.Equal(t, DefaultThreshold, EffectiveThreshold(models.Item{Threshold: 0}))
	assert.Equal(t, DefaultThreshold, EffectiveThreshold(models.Item{Threshold: -5}))
}

func TestIsLowStock(t *testing.T) {
	// A count equal to the threshold is not low stock.
	assert.False(t, IsLowStock(models.Item{Count: 300, Threshold: 300}))
	assert.True(t, IsLowStock(models.Item{Count: 299, Threshold: 300}))

	// Unset threshold falls back to the default of 200.
	assert.True(t, IsLowStock(models.Item{Count: 199}))
	assert.False(t, IsLowStock(models.Item{Count: 200}))

	// Backordered lines are always low.
	assert.True(t, IsLowStock(models.Item{Count: -15, Threshold: 100}))
}
