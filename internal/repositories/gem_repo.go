package repositories

import (
	"gemstore/internal/models"
)

// GemRepository defines the interface for gem inventory data access.
// Create persists a gem and its properties as one atomic pair.
type GemRepository interface {
	Create(gem *models.Gem, props *models.GemProperties) error
	GetByID(id string) (*models.Gem, error)
	Update(gem *models.Gem) error
	Delete(id string) error
	List(filter models.GemFilter) ([]models.GemWithProperties, error)
	ListBySeller(sellerID string) ([]models.GemWithProperties, error)
}
