package http

import (
	"github.com/satriadi/perpustakaan/internal/audit"
	"github.com/satriadi/perpustakaan/internal/auth"
	"github.com/satriadi/perpustakaan/internal/catalog"
	"github.com/satriadi/perpustakaan/internal/database"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router. This replaces a long parameter list in NewRouter.
type RouterConfig struct {
	// Core dependencies
	Catalog  *catalog.Service
	Database *database.Database
	Auditor  *audit.Service

	// Session and CSRF protection
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// Application info
	Version string
}
