package repositories

import (
	"errors"
	"fmt"

	"gemstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMGemRepository is a GORM implementation of GemRepository.
// Every method runs on its own session/transaction; no state is shared
// across requests.
type GORMGemRepository struct {
	db *gorm.DB
}

// NewGORMGemRepository creates a new instance of GORMGemRepository.
func NewGORMGemRepository(db *gorm.DB) *GORMGemRepository {
	return &GORMGemRepository{
		db: db,
	}
}

// Create persists the properties row and the gem referencing it inside one
// transaction, so a failed gem insert rolls back the properties row.
func (r *GORMGemRepository) Create(gem *models.Gem, props *models.GemProperties) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if props.ID == "" {
			props.ID = uuid.New().String()
		}
		if err := tx.Create(props).Error; err != nil {
			return fmt.Errorf("failed to create gem properties: %w", err)
		}

		if gem.ID == "" {
			gem.ID = uuid.New().String()
		}
		gem.GemPropertiesID = props.ID
		gem.GemProperties = *props
		if err := tx.Omit("GemProperties").Create(gem).Error; err != nil {
			return fmt.Errorf("failed to create gem: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a single gem with its properties.
func (r *GORMGemRepository) GetByID(id string) (*models.Gem, error) {
	var gem models.Gem
	if err := r.db.Preload("GemProperties").First(&gem, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrGemNotFound
		}
		return nil, fmt.Errorf("failed to get gem by ID %s: %w", id, err)
	}
	return &gem, nil
}

// Update replaces all stored gem fields. The properties row is not touched.
func (r *GORMGemRepository) Update(gem *models.Gem) error {
	res := r.db.Omit("GemProperties").Save(gem)
	if res.Error != nil {
		return fmt.Errorf("failed to update gem: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrGemNotFound
	}
	return nil
}

// Delete hard-deletes a gem by its ID. The properties row is left in place;
// orphan cleanup is an external concern.
func (r *GORMGemRepository) Delete(id string) error {
	res := r.db.Delete(&models.Gem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete gem: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrGemNotFound
	}
	return nil
}

// List retrieves gem/properties pairs matching the filter. Results are
// always ordered by gem type ascending then price descending so listings
// are deterministic.
func (r *GORMGemRepository) List(filter models.GemFilter) ([]models.GemWithProperties, error) {
	q := r.db.Preload("GemProperties")
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if len(filter.Types) > 0 {
		q = q.Where("gem_type IN ?", filter.Types)
	}

	var gems []models.Gem
	if err := q.Order("gem_type asc").Order("price desc").Find(&gems).Error; err != nil {
		return nil, fmt.Errorf("failed to list gems: %w", err)
	}
	return pairWithProperties(gems), nil
}

// ListBySeller retrieves all gem/properties pairs listed by one seller.
func (r *GORMGemRepository) ListBySeller(sellerID string) ([]models.GemWithProperties, error) {
	var gems []models.Gem
	err := r.db.Preload("GemProperties").
		Where("seller_id = ?", sellerID).
		Order("gem_type asc").Order("price desc").
		Find(&gems).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gems for seller %s: %w", sellerID, err)
	}
	return pairWithProperties(gems), nil
}

func pairWithProperties(gems []models.Gem) []models.GemWithProperties {
	pairs := make([]models.GemWithProperties, 0, len(gems))
	for _, gem := range gems {
		pairs = append(pairs, models.GemWithProperties{
			Gem:        gem,
			Properties: gem.GemProperties,
		})
	}
	return pairs
}
