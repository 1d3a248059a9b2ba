// Package users provides database operations for user management.
//
// The repository implements the catalog.UserStore interface.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername("reader")
package users

import (
	"gorm.io/gorm"

	"github.com/satriadi/perpustakaan/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new user row and fills in the generated id.
func (r *Repository) Create(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetByUsername retrieves a user by exact, case-sensitive username.
// Returns gorm.ErrRecordNotFound when no such user exists.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by id.
func (r *Repository) GetByID(id int) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePasswordHash rewrites the stored credential digest for a user.
func (r *Repository) UpdatePasswordHash(id int, hash string) error {
	result := r.db.Model(&entities.User{}).Where("id = ?", id).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
