package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"

	RolePurchaser = "purchaser"
	RoleOrganizer = "organizer"
)

// RequireAuth 解析 Bearer token，把穩定的身分（user_id, role）放進 context。
// 沒帶、帶壞、過期一律 401。
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c)
			return
		}

		sub, _ := claims["user_id"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		role, _ := claims["role"].(string)
		if role == "" {
			role = RolePurchaser
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireOrganizer 在 RequireAuth 之後使用，非 organizer 一律 403
func RequireOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != RoleOrganizer {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "organizer role required",
			})
			return
		}
		c.Next()
	}
}

// UserID 取出目前請求的身分
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "unauthenticated",
	})
}
