package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/satriadi/perpustakaan/internal/auth"
	"github.com/satriadi/perpustakaan/internal/catalog"
	"github.com/satriadi/perpustakaan/internal/config"
	"github.com/satriadi/perpustakaan/internal/database"
	"github.com/satriadi/perpustakaan/internal/database/books"
	"github.com/satriadi/perpustakaan/internal/database/users"
)

type authTestEnv struct {
	catalog  *catalog.Service
	sessions *auth.SessionManager
	router   *gin.Engine
}

func setupAuthTest(t *testing.T) (*authTestEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_auth_api_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewSilentDatabase(dbPath)
	require.NoError(t, err)

	svc := catalog.NewService(
		users.NewRepository(db.DB),
		books.NewRepository(db.DB),
		auth.NewPasswordHasher(bcrypt.MinCost),
	)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sessions, err := auth.NewSessionManager(sqlDB, config.Auth{
		SessionLifetime: time.Hour,
	})
	require.NoError(t, err)

	controller := NewAuthController(svc, sessions, nil)

	router := gin.New()
	router.Use(sessions.Middleware())
	router.POST("/api/users", controller.Register)
	router.POST("/api/session", controller.Login)
	router.GET("/api/session", controller.SessionInfo)
	router.DELETE("/api/session", controller.Logout)
	router.POST("/api/session/password", controller.ChangePassword)

	env := &authTestEnv{catalog: svc, sessions: sessions, router: router}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return env, cleanup
}

func (env *authTestEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Register(t *testing.T) {
	t.Run("creates user", func(t *testing.T) {
		env, cleanup := setupAuthTest(t)
		defer cleanup()

		w := env.do("POST", "/api/users", registerRequest{
			Username: "reader", Password: "letmein", FullName: "Avid Reader",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var user map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, "reader", user["username"])
		assert.Equal(t, "Avid Reader", user["full_name"])
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		env, cleanup := setupAuthTest(t)
		defer cleanup()

		w := env.do("POST", "/api/users", registerRequest{Username: "reader", Password: "letmein"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = env.do("POST", "/api/users", registerRequest{Username: "reader", Password: "other"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), string(catalog.KindDuplicateUser))
	})

	t.Run("rejects empty credentials", func(t *testing.T) {
		env, cleanup := setupAuthTest(t)
		defer cleanup()

		w := env.do("POST", "/api/users", registerRequest{Username: "  ", Password: "letmein"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthController_Login(t *testing.T) {
	t.Run("opens session and loads catalog", func(t *testing.T) {
		env, cleanup := setupAuthTest(t)
		defer cleanup()

		w := env.do("POST", "/api/users", registerRequest{Username: "reader", Password: "letmein"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = env.do("POST", "/api/session", loginRequest{Username: "reader", Password: "letmein"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Result().Cookies())
		assert.True(t, env.catalog.IsLoggedIn())

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "reader", response["username"])
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		env, cleanup := setupAuthTest(t)
		defer cleanup()

		w := env.do("POST", "/api/users", registerRequest{Username: "reader", Password: "letmein"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = env.do("POST", "/api/session", loginRequest{Username: "reader", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), string(catalog.KindWrongPassword))
		assert.False(t, env.catalog.IsLoggedIn())
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		env, cleanup := setupAuthTest(t)
		defer cleanup()

		w := env.do("POST", "/api/session", loginRequest{Username: "ghost", Password: "boo"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), string(catalog.KindUserNotFound))
	})
}

func TestAuthController_Logout(t *testing.T) {
	env, cleanup := setupAuthTest(t)
	defer cleanup()

	w := env.do("POST", "/api/users", registerRequest{Username: "reader", Password: "letmein"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do("POST", "/api/session", loginRequest{Username: "reader", Password: "letmein"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do("DELETE", "/api/session", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.catalog.IsLoggedIn())

	// logging out twice is not an error
	w = env.do("DELETE", "/api/session", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthController_SessionInfo(t *testing.T) {
	env, cleanup := setupAuthTest(t)
	defer cleanup()

	w := env.do("GET", "/api/session", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["authenticated"])
}

func TestAuthController_ChangePassword(t *testing.T) {
	t.Run("replaces password", func(t *testing.T) {
		env, cleanup := setupAuthTest(t)
		defer cleanup()

		w := env.do("POST", "/api/users", registerRequest{Username: "reader", Password: "letmein"})
		require.Equal(t, http.StatusCreated, w.Code)
		w = env.do("POST", "/api/session", loginRequest{Username: "reader", Password: "letmein"})
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do("POST", "/api/session/password", changePasswordRequest{
			CurrentPassword: "letmein", NewPassword: "betterpass",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		env.catalog.Logout()
		assert.Error(t, env.catalog.Login("reader", "letmein"))
		assert.NoError(t, env.catalog.Login("reader", "betterpass"))
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		env, cleanup := setupAuthTest(t)
		defer cleanup()

		w := env.do("POST", "/api/users", registerRequest{Username: "reader", Password: "letmein"})
		require.Equal(t, http.StatusCreated, w.Code)
		w = env.do("POST", "/api/session", loginRequest{Username: "reader", Password: "letmein"})
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do("POST", "/api/session/password", changePasswordRequest{
			CurrentPassword: "nope", NewPassword: "betterpass",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
