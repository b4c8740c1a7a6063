package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", RequireAuth(testSecret), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": id.String(),
			"role":    c.GetString(ContextRole),
		})
	})
	router.GET("/admin", RequireAuth(testSecret), RequireOrganizer(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	router := setupAuthRouter()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"user_id": userID.String(),
			"role":    RoleOrganizer,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		assert.Contains(t, w.Body.String(), RoleOrganizer)
	})

	t.Run("Success - 沒帶 role 預設 purchaser", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"user_id": userID.String(),
		})

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), RolePurchaser)
	})

	t.Run("Failed - 沒帶 token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - 簽章不對", func(t *testing.T) {
		token := signToken(t, "wrong-secret", jwt.MapClaims{
			"user_id": userID.String(),
		})

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - token 過期", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"user_id": userID.String(),
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - user_id 不是 UUID", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"user_id": "42",
		})

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireOrganizer(t *testing.T) {
	router := setupAuthRouter()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"user_id": userID.String(),
			"role":    RoleOrganizer,
		})

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - purchaser 被擋", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"user_id": userID.String(),
			"role":    RolePurchaser,
		})

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
