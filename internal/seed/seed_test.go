package seed_test

import (
	"testing"

	"gemstore/internal/models"
	"gemstore/internal/pricing"
	"gemstore/internal/seed"

	"github.com/stretchr/testify/assert"
)

func TestRandomProperties_WithinDomains(t *testing.T) {
	for i := 0; i < 200; i++ {
		props := seed.RandomProperties()
		assert.GreaterOrEqual(t, props.Size, 0.3)
		assert.LessOrEqual(t, props.Size, 7.0)
		assert.NotNil(t, props.Clarity)
		assert.Contains(t, models.GemClarityValues, *props.Clarity)
		assert.NotNil(t, props.Color)
		assert.Contains(t, models.GemColorValues, *props.Color)
	}
}

func TestRandomGem_PriceMatchesPricingEngine(t *testing.T) {
	for i := 0; i < 200; i++ {
		props := seed.RandomProperties()
		gem := seed.RandomGem(props)
		assert.Contains(t, models.GemTypeValues, gem.GemType)
		assert.True(t, gem.Available)
		assert.Equal(t, pricing.ComputePrice(gem.GemType, props), gem.Price)
	}
}
