package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satriadi/perpustakaan/internal/audit"
	"github.com/satriadi/perpustakaan/internal/auth"
	"github.com/satriadi/perpustakaan/internal/catalog"
	"github.com/satriadi/perpustakaan/internal/entities"
)

// AuthController handles registration, login and session management.
type AuthController struct {
	catalog  *catalog.Service
	sessions *auth.SessionManager
	auditor  *audit.Service
}

// NewAuthController creates a new AuthController.
func NewAuthController(cat *catalog.Service, sessions *auth.SessionManager, auditor *audit.Service) *AuthController {
	return &AuthController{
		catalog:  cat,
		sessions: sessions,
		auditor:  auditor,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Register creates a new user account.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := ac.catalog.CreateUser(req.Username, req.Password, req.FullName)
	if err != nil {
		respondCatalogError(c, err, "register")
		return
	}

	if ac.auditor != nil {
		ac.auditor.LogAuth(user.ID, entities.AuditActionRegister, user.Username)
	}
	respondCreated(c, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a user and opens a catalog session. The in-memory
// catalog is loaded as part of a successful login, so a failure here leaves
// no session behind.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := ac.catalog.Login(req.Username, req.Password); err != nil {
		respondCatalogError(c, err, "login")
		return
	}

	userID := ac.catalog.CurrentUserID()
	username := ac.catalog.CurrentUsername()

	if err := ac.sessions.CreateSession(c.Request, userID, username); err != nil {
		ac.catalog.Logout()
		respondInternalError(c, err, "login: create session")
		return
	}

	if ac.auditor != nil {
		ac.auditor.LogAuth(userID, entities.AuditActionLogin, username)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "logged in",
		"user_id":  userID,
		"username": username,
		"books":    ac.catalog.ListAll(),
	})
}

// Logout closes the catalog session and destroys the cookie session.
// Logging out twice is not an error.
func (ac *AuthController) Logout(c *gin.Context) {
	userID := ac.catalog.CurrentUserID()
	username := ac.catalog.CurrentUsername()

	ac.catalog.Logout()
	if err := ac.sessions.DestroySession(c.Request); err != nil {
		respondInternalError(c, err, "logout: destroy session")
		return
	}

	if ac.auditor != nil && userID > 0 {
		ac.auditor.LogAuth(userID, entities.AuditActionLogout, username)
	}
	respondSuccess(c, "logged out")
}

// SessionInfo reports the current session and the CSRF token mutating
// requests must echo back.
func (ac *AuthController) SessionInfo(c *gin.Context) {
	info := gin.H{
		"authenticated": ac.catalog.IsLoggedIn(),
	}
	if ac.catalog.IsLoggedIn() {
		info["user_id"] = ac.catalog.CurrentUserID()
		info["username"] = ac.catalog.CurrentUsername()
	}
	if token, exists := c.Get(auth.ContextKeyCSRFToken); exists {
		info["csrf_token"] = token
	}
	c.JSON(http.StatusOK, info)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword replaces the logged-in user's password.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := ac.catalog.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		respondCatalogError(c, err, "change password")
		return
	}

	if ac.auditor != nil {
		ac.auditor.LogAuth(ac.catalog.CurrentUserID(), entities.AuditActionPasswordChange, "")
	}
	respondSuccess(c, "password changed")
}
