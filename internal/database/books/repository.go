// Package books provides database operations for book management.
//
// The repository implements the catalog.BookStore interface: one ordered
// read per user plus id-and-owner scoped writes, so a stale or foreign id
// can never touch another user's rows.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	rows, err := repo.ListByUser(userID)
package books

import (
	"gorm.io/gorm"

	"github.com/satriadi/perpustakaan/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns every book owned by the user, in primary key order.
func (r *Repository) ListByUser(userID int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&books).Error
	return books, err
}

// Insert creates a book row and fills in the generated id.
func (r *Repository) Insert(book *entities.Book) error {
	return r.db.Create(book).Error
}

// Update rewrites a book's attributes, scoped by id and owning user. A row
// owned by another user is silently unaffected.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Model(&entities.Book{}).
		Where("id = ? AND user_id = ?", book.ID, book.UserID).
		Updates(map[string]any{
			"title":      book.Title,
			"author":     book.Author,
			"genre":      book.Genre,
			"publisher":  book.Publisher,
			"year":       book.Year,
			"copies":     book.Copies,
			"image_path": book.ImagePath,
		}).Error
}

// Delete removes a book row, scoped by id and owning user.
func (r *Repository) Delete(id, userID int) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Book{}).Error
}

// CountByUser returns the number of books the user owns.
func (r *Repository) CountByUser(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
