// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── users/           # User rows: creation, lookup, credential updates
//	├── books/           # User-scoped book CRUD
//	└── audit/           # Activity log with retention pruning
//
// Each sub-package provides a Repository type with domain-specific
// operations:
//
//	db, err := database.NewDatabase("./perpustakaan.db")
//
//	usersRepo := users.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
// The users and books repositories implement the catalog.UserStore and
// catalog.BookStore interfaces consumed by the catalog service; the audit
// repository backs the audit.Service activity log.
package database
