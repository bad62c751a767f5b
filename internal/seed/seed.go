package seed

import (
	"fmt"
	"log"
	"math/rand"

	"gemstore/internal/models"
	"gemstore/internal/pricing"
	"gemstore/internal/repositories"
)

// RandomProperties produces a randomized physical grading: size between
// 0.3 and 7.0 carats, a random clarity grade and a random color.
func RandomProperties() models.GemProperties {
	size := float64(rand.Intn(68)+3) / 10
	clarity := models.GemClarityValues[rand.Intn(len(models.GemClarityValues))]
	color := models.GemColorValues[rand.Intn(len(models.GemColorValues))]

	return models.GemProperties{
		Size:    size,
		Clarity: &clarity,
		Color:   &color,
	}
}

// RandomGem produces a gem of a random type priced for the given
// properties by the pricing engine.
func RandomGem(props models.GemProperties) models.Gem {
	gemType := models.GemTypeValues[rand.Intn(len(models.GemTypeValues))]
	return models.Gem{
		Price:     pricing.ComputePrice(gemType, props),
		Available: true,
		GemType:   gemType,
	}
}

// Gems populates the repository with n randomized gem/properties pairs.
// Seeded gems have no seller; they exist for bootstrapping and testing.
func Gems(repo repositories.GemRepository, n int) error {
	for i := 0; i < n; i++ {
		props := RandomProperties()
		gem := RandomGem(props)
		if err := repo.Create(&gem, &props); err != nil {
			return fmt.Errorf("failed to seed gem %d of %d: %w", i+1, n, err)
		}
	}
	log.Printf("Seeded %d gems", n)
	return nil
}
