package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satriadi/perpustakaan/internal/catalog"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
)

// CatalogSession is the slice of the catalog service the middleware needs to
// cross-check the cookie against the in-process session.
type CatalogSession interface {
	IsLoggedIn() bool
	CurrentUserID() int
}

// Middleware gates catalog routes behind an authenticated session.
type Middleware struct {
	sessions *SessionManager
	catalog  CatalogSession
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(sessions *SessionManager, catalog CatalogSession) *Middleware {
	return &Middleware{sessions: sessions, catalog: catalog}
}

// RequireSession rejects requests without a valid session. The cookie must
// also agree with the catalog service's current user: after a process
// restart, or a login from another browser, a stale cookie is refused and
// the client has to log in again.
func (m *Middleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := m.sessions.GetUserID(c.Request)
		if userID <= 0 {
			abortUnauthenticated(c, "authentication required")
			return
		}
		if !m.catalog.IsLoggedIn() || m.catalog.CurrentUserID() != userID {
			abortUnauthenticated(c, "session expired, log in again")
			return
		}
		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyUsername, m.sessions.GetUsername(c.Request))
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
		"code":  string(catalog.KindNoSession),
	})
}

// GetUserID extracts the authenticated user's id from the Gin context.
// Returns 0 when the request is unauthenticated.
func GetUserID(c *gin.Context) int {
	return c.GetInt(ContextKeyUserID)
}
