package repositories

import "gemstore/internal/models"

// UserRepository defines the interface for user data access.
// Create returns models.ErrUsernameTaken when the username is already
// registered; uniqueness is enforced by the storage layer.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
