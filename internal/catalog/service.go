// Package catalog implements the per-session book catalog: durable writes
// through a user-scoped store, an in-memory working copy for querying, and
// the sort, search, recommendation and stats operations over that copy.
//
// The service assumes a single active session and no concurrent calls
// against the same instance. Every operation is a finite synchronous unit:
// it either completes, performing at most one durable write, or fails with
// the cache left untouched. Mutations are write-through: the store is
// written first and the cache mirrored only after the store confirms.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/satriadi/perpustakaan/internal/entities"
)

// UserStore is the durable backend for user rows.
type UserStore interface {
	Create(user *entities.User) error
	GetByUsername(username string) (*entities.User, error)
	UpdatePasswordHash(id int, hash string) error
}

// BookStore is the durable backend for book rows. Update and Delete are
// scoped by owning user, so a foreign id is a silent no-op at the store.
type BookStore interface {
	ListByUser(userID int) ([]entities.Book, error)
	Insert(book *entities.Book) error
	Update(book *entities.Book) error
	Delete(id, userID int) error
}

// Credentials is an opaque one-way password digest with its verify
// counterpart. The service never sees password material beyond the verify
// result.
type Credentials interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// Service ties the stores, the session, the cache and the recommendation
// graph together behind the catalog operation surface.
type Service struct {
	users UserStore
	books BookStore
	creds Credentials

	session Session
	cache   Cache
	graph   Graph

	subscribers []Subscriber
}

// NewService creates a catalog service with an empty session.
func NewService(users UserStore, books BookStore, creds Credentials) *Service {
	return &Service{
		users: users,
		books: books,
		creds: creds,
	}
}

// BookFields carries the caller-supplied attributes for add and update.
// Free-text fields are trimmed before storage.
type BookFields struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	Publisher string `json:"publisher"`
	Year      int    `json:"year"`
	Copies    int    `json:"copies"`
	ImagePath string `json:"image_path"`
}

func (f BookFields) trimmed() BookFields {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.Genre = strings.TrimSpace(f.Genre)
	f.Publisher = strings.TrimSpace(f.Publisher)
	f.ImagePath = strings.TrimSpace(f.ImagePath)
	return f
}

// --- Users & session ---

// CreateUser registers a new user. The display name defaults to the
// username when blank. Usernames match case-sensitively and exactly.
func (s *Service) CreateUser(username, password, fullName string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: username and password must not be empty", ErrInvalidInput)
	}

	_, err := s.users.GetByUsername(username)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateUser, username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeFailure("check existing user", err)
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if fullName == "" {
		fullName = username
	}
	user := &entities.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
	}
	if err := s.users.Create(user); err != nil {
		return nil, storeFailure("create user", err)
	}
	return user, nil
}

// Login verifies credentials, opens the session and loads the user's
// catalog. A failed login leaves the session and cache exactly as they were.
func (s *Service) Login(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: username and password must not be empty", ErrInvalidInput)
	}

	user, err := s.users.GetByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	if err != nil {
		return storeFailure("look up user", err)
	}
	if err := s.creds.Verify(password, user.PasswordHash); err != nil {
		return ErrWrongPassword
	}

	prev := s.session
	s.session.begin(user.ID, user.Username)
	if err := s.Reload(); err != nil {
		// a session without a loaded catalog would be half-open
		s.session = prev
		return err
	}
	return nil
}

// Logout clears the session, the cache, the recommendation graph and the
// sortedness flags together; their lifetimes are bound to the session.
// Idempotent.
func (s *Service) Logout() {
	s.session.end()
	s.cache.clear()
	s.graph.clear()
	s.notify(EventCatalogChanged)
	s.notify(EventSortStatusChanged)
}

// IsLoggedIn reports whether a session is active.
func (s *Service) IsLoggedIn() bool {
	return s.session.Active()
}

// CurrentUserID returns the logged-in user's id, or 0 without a session.
func (s *Service) CurrentUserID() int {
	return s.session.UserID()
}

// CurrentUsername returns the logged-in user's name, or "" without a session.
func (s *Service) CurrentUsername() string {
	return s.session.Username()
}

// ChangePassword rewrites the stored hash after verifying the current
// password.
func (s *Service) ChangePassword(currentPassword, newPassword string) error {
	if !s.session.Active() {
		return ErrNoSession
	}
	user, err := s.users.GetByUsername(s.session.Username())
	if err != nil {
		return storeFailure("look up user", err)
	}
	if err := s.creds.Verify(currentPassword, user.PasswordHash); err != nil {
		return ErrWrongPassword
	}
	hash, err := s.creds.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(user.ID, hash); err != nil {
		return storeFailure("update password", err)
	}
	return nil
}

// --- Catalog lifecycle & mutations ---

// Reload replaces the cache with one full read of the current user's books,
// clears sortedness and rebuilds the recommendation graph.
func (s *Service) Reload() error {
	if !s.session.Active() {
		return ErrNoSession
	}
	books, err := s.books.ListByUser(s.session.UserID())
	if err != nil {
		return storeFailure("load catalog", err)
	}
	s.cache.replace(books)
	s.graph.rebuild(s.cache.books)
	s.notify(EventCatalogChanged)
	s.notify(EventSortStatusChanged)
	return nil
}

// ListAll returns the cached catalog in its current order.
func (s *Service) ListAll() []entities.Book {
	return s.cache.All()
}

// Len returns the number of books in the cached catalog.
func (s *Service) Len() int {
	return s.cache.Len()
}

// Add persists a new book and mirrors it onto the cache tail. The returned
// record carries the store-assigned id, immediately valid for update, delete
// and related-books calls.
func (s *Service) Add(fields BookFields) (*entities.Book, error) {
	if !s.session.Active() {
		return nil, ErrNoSession
	}
	f := fields.trimmed()
	if f.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}

	book := &entities.Book{
		UserID:    s.session.UserID(),
		Title:     f.Title,
		Author:    f.Author,
		Genre:     f.Genre,
		Publisher: f.Publisher,
		Year:      f.Year,
		Copies:    f.Copies,
		ImagePath: f.ImagePath,
	}
	if err := s.books.Insert(book); err != nil {
		return nil, storeFailure("insert book", err)
	}

	s.cache.add(*book)
	s.graph.rebuild(s.cache.books)
	s.notify(EventCatalogChanged)
	s.notify(EventSortStatusChanged)
	return book, nil
}

// Update rewrites a book's fields, scoped to the owning user. An id absent
// from the catalog is a no-op, not an error.
func (s *Service) Update(id int, fields BookFields) error {
	if !s.session.Active() {
		return ErrNoSession
	}
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	f := fields.trimmed()

	book := entities.Book{
		ID:        id,
		UserID:    s.session.UserID(),
		Title:     f.Title,
		Author:    f.Author,
		Genre:     f.Genre,
		Publisher: f.Publisher,
		Year:      f.Year,
		Copies:    f.Copies,
		ImagePath: f.ImagePath,
	}
	if err := s.books.Update(&book); err != nil {
		return storeFailure("update book", err)
	}

	s.cache.update(book)
	s.graph.rebuild(s.cache.books)
	s.notify(EventCatalogChanged)
	s.notify(EventSortStatusChanged)
	return nil
}

// Delete removes a book, scoped to the owning user. An id absent from the
// catalog is a no-op, not an error.
func (s *Service) Delete(id int) error {
	if !s.session.Active() {
		return ErrNoSession
	}
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	if err := s.books.Delete(id, s.session.UserID()); err != nil {
		return storeFailure("delete book", err)
	}

	s.cache.remove(id)
	s.graph.rebuild(s.cache.books)
	s.notify(EventCatalogChanged)
	s.notify(EventSortStatusChanged)
	return nil
}

// SortedByTitle reports whether the cache currently holds title order.
func (s *Service) SortedByTitle() bool {
	return s.cache.SortedByTitle()
}

// SortedByYear reports whether the cache currently holds year order.
func (s *Service) SortedByYear() bool {
	return s.cache.SortedByYear()
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
