package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware adapts the scs load-and-save cycle to Gin. Every request that
// may read or write session data must pass through it before any other
// session-aware middleware or handler.
func (sm *SessionManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// hand the session-aware request back to Gin's chain
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, c.Request)
	}
}
