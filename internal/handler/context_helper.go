package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-dss/internal/middleware"
	"github.com/noah-isme/sma-timetable-dss/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// actorID names the caller for logs; anonymous when auth is disabled.
func actorID(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil && claims.UserID != "" {
		return claims.UserID
	}
	return "anonymous"
}
