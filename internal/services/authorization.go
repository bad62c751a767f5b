package services

import "gemstore/internal/models"

// CanMutateGem reports whether the actor may update, patch or delete the
// gem: the actor must hold the seller role and own the gem. It is a pure
// decision, never an error; anything improperly owned is simply false.
func CanMutateGem(actor *models.User, gem *models.Gem) bool {
	if actor == nil || gem == nil {
		return false
	}
	return actor.IsSeller && gem.SellerID == actor.ID
}

// CanCreateGem reports whether the actor may list a new gem. There is no
// target yet, so only the seller role is required.
func CanCreateGem(actor *models.User) bool {
	return actor != nil && actor.IsSeller
}
