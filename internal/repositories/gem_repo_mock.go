package repositories

import (
	"sort"
	"sync"

	"gemstore/internal/models"

	"github.com/google/uuid"
)

// MockGemRepository is an in-memory implementation of GemRepository.
type MockGemRepository struct {
	gems  map[string]models.Gem
	props map[string]models.GemProperties
	mu    sync.RWMutex
}

// NewMockGemRepository creates a new instance of MockGemRepository.
func NewMockGemRepository() *MockGemRepository {
	return &MockGemRepository{
		gems:  make(map[string]models.Gem),
		props: make(map[string]models.GemProperties),
	}
}

// Create stores the gem and its properties as a pair.
func (r *MockGemRepository) Create(gem *models.Gem, props *models.GemProperties) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if props.ID == "" {
		props.ID = uuid.New().String()
	}
	if gem.ID == "" {
		gem.ID = uuid.New().String()
	}
	gem.GemPropertiesID = props.ID
	gem.GemProperties = *props
	r.props[props.ID] = *props
	r.gems[gem.ID] = *gem
	return nil
}

// GetByID returns a gem by its ID.
func (r *MockGemRepository) GetByID(id string) (*models.Gem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gem, ok := r.gems[id]
	if !ok {
		return nil, models.ErrGemNotFound
	}
	return &gem, nil
}

// Update replaces an existing gem.
func (r *MockGemRepository) Update(gem *models.Gem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.gems[gem.ID]; !ok {
		return models.ErrGemNotFound
	}
	r.gems[gem.ID] = *gem
	return nil
}

// Delete removes a gem by its ID. The properties entry is left in place.
func (r *MockGemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.gems[id]; !ok {
		return models.ErrGemNotFound
	}
	delete(r.gems, id)
	return nil
}

// List returns gem/properties pairs matching the filter, ordered by gem
// type ascending then price descending.
func (r *MockGemRepository) List(filter models.GemFilter) ([]models.GemWithProperties, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeSet := make(map[models.GemType]bool, len(filter.Types))
	for _, t := range filter.Types {
		typeSet[t] = true
	}

	pairs := make([]models.GemWithProperties, 0, len(r.gems))
	for _, gem := range r.gems {
		if filter.MinPrice != nil && gem.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && gem.Price > *filter.MaxPrice {
			continue
		}
		if len(typeSet) > 0 && !typeSet[gem.GemType] {
			continue
		}
		pairs = append(pairs, models.GemWithProperties{
			Gem:        gem,
			Properties: r.props[gem.GemPropertiesID],
		})
	}
	sortPairs(pairs)
	return pairs, nil
}

// ListBySeller returns one seller's gem/properties pairs.
func (r *MockGemRepository) ListBySeller(sellerID string) ([]models.GemWithProperties, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pairs := make([]models.GemWithProperties, 0)
	for _, gem := range r.gems {
		if gem.SellerID != sellerID {
			continue
		}
		pairs = append(pairs, models.GemWithProperties{
			Gem:        gem,
			Properties: r.props[gem.GemPropertiesID],
		})
	}
	sortPairs(pairs)
	return pairs, nil
}

func sortPairs(pairs []models.GemWithProperties) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Gem.GemType != pairs[j].Gem.GemType {
			return pairs[i].Gem.GemType < pairs[j].Gem.GemType
		}
		return pairs[i].Gem.Price > pairs[j].Gem.Price
	})
}
