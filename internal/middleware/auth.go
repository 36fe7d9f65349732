package middleware

import (
	"net/http"
	"strings"

	"github.com/bohdan-dev/fileshare/db"
	"github.com/bohdan-dev/fileshare/internal/auth"
	"github.com/bohdan-dev/fileshare/internal/models"
	"github.com/bohdan-dev/fileshare/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// AuthMiddleware resolves the bearer token to a user and stores it in the
// request context. It never aborts: an absent or invalid token just leaves the
// request unauthenticated and the route guard decides whether that matters.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.Next()
			return
		}

		email, err := auth.VerifyJWT(parts[1])

		if err != nil {
			ctx.Next()
			return
		}

		var user models.User

		if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
			ctx.Next()
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Email: user.Email,
		})
		ctx.Next()
	}
}

// RequireAuth rejects requests that AuthMiddleware left unauthenticated.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, exists := ctx.Get(types.ContextUserKey); !exists {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		ctx.Next()
	}
}
