package services

import (
	"encoding/json"
	"log"

	"gemstore/internal/models"
	"gemstore/internal/pricing"
	"gemstore/internal/repositories"
)

// EventPublisher publishes inventory events to a message broker.
// Publishing is best-effort: failures are logged, never surfaced.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// GemService handles business logic for the gem inventory.
type GemService struct {
	gemRepo   repositories.GemRepository
	publisher EventPublisher
}

// NewGemService creates a new GemService. publisher may be nil when no
// message broker is configured.
func NewGemService(gemRepo repositories.GemRepository, publisher EventPublisher) *GemService {
	return &GemService{
		gemRepo:   gemRepo,
		publisher: publisher,
	}
}

// ListGems retrieves gem/properties pairs matching the filter.
func (s *GemService) ListGems(filter models.GemFilter) ([]models.GemWithProperties, error) {
	return s.gemRepo.List(filter)
}

// GetGemByID retrieves a single gem by its ID.
func (s *GemService) GetGemByID(id string) (*models.Gem, error) {
	return s.gemRepo.GetByID(id)
}

// ListGemsBySeller retrieves the actor's own inventory. The actor must be
// a seller; the seller_id filter itself enforces ownership scope.
func (s *GemService) ListGemsBySeller(actor *models.User) ([]models.GemWithProperties, error) {
	if !CanCreateGem(actor) {
		return nil, models.ErrUnauthorized
	}
	return s.gemRepo.ListBySeller(actor.ID)
}

// CreateGem persists a new gem and its properties for the actor. The price
// is always computed from the type and properties; any caller-supplied
// price is discarded.
func (s *GemService) CreateGem(actor *models.User, gem *models.Gem, props *models.GemProperties) error {
	if !CanCreateGem(actor) {
		return models.ErrUnauthorized
	}

	gem.SellerID = actor.ID
	gem.Price = pricing.ComputePrice(gem.GemType, *props)
	if err := s.gemRepo.Create(gem, props); err != nil {
		return err
	}

	s.publishEvent("gem.created", gem)
	return nil
}

// UpdateGem replaces every mutable field of the gem. The gem must exist
// and the actor must pass the mutation gate.
func (s *GemService) UpdateGem(id string, update models.GemUpdate, actor *models.User) (*models.Gem, error) {
	gem, err := s.gemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !CanMutateGem(actor, gem) {
		return nil, models.ErrUnauthorized
	}

	gem.Price = update.Price
	gem.Available = update.Available
	gem.GemType = update.GemType
	if err := s.gemRepo.Update(gem); err != nil {
		return nil, err
	}

	s.publishEvent("gem.updated", gem)
	return gem, nil
}

// PatchGem replaces only the fields present in the patch, leaving the
// rest untouched.
func (s *GemService) PatchGem(id string, patch models.GemPatch, actor *models.User) (*models.Gem, error) {
	gem, err := s.gemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !CanMutateGem(actor, gem) {
		return nil, models.ErrUnauthorized
	}

	if patch.Price != nil {
		gem.Price = *patch.Price
	}
	if patch.Available != nil {
		gem.Available = *patch.Available
	}
	if patch.GemType != nil {
		gem.GemType = *patch.GemType
	}
	if err := s.gemRepo.Update(gem); err != nil {
		return nil, err
	}

	s.publishEvent("gem.updated", gem)
	return gem, nil
}

// DeleteGem hard-deletes the gem. A missing id is NotFound; an existing
// gem owned by someone else is Unauthorized.
func (s *GemService) DeleteGem(id string, actor *models.User) error {
	gem, err := s.gemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !CanMutateGem(actor, gem) {
		return models.ErrUnauthorized
	}
	if err := s.gemRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent("gem.deleted", gem)
	return nil
}

// publishEvent emits an inventory event to the broker, if one is wired.
func (s *GemService) publishEvent(routingKey string, gem *models.Gem) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"gem_id":    gem.ID,
		"gem_type":  gem.GemType,
		"price":     gem.Price,
		"seller_id": gem.SellerID,
	})
	if err != nil {
		log.Printf("Failed to marshal gem event: %v", err)
		return
	}
	if err := s.publisher.Publish("gems", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for gem %s: %v", routingKey, gem.ID, err)
	}
}
