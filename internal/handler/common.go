package handler

import (
	"net/http"

	"go-booking-core/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// ParamUUID 解析路徑參數的 uuid；失敗時直接回 400
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid id format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// CurrentUser 取出 middleware 放進來的身分；沒有就回 401
func CurrentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthenticated",
		})
		return uuid.Nil, false
	}
	return id, true
}
