package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userContextKey = "user"

var errMissingToken = errors.New("missing bearer token")

func parseToken(ctx *gin.Context) (jwt.MapClaims, error) {
	header := ctx.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return nil, errMissingToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid session token and stores the
// token claims under "user".
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := parseToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		ctx.Set(userContextKey, claims)
		ctx.Next()
	}
}

// OptionalAuth stores the claims when a valid token is present and lets
// anonymous requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if claims, err := parseToken(ctx); err == nil {
			ctx.Set(userContextKey, claims)
		}
		ctx.Next()
	}
}

// CurrentUserID returns the user id from the session claims.
func CurrentUserID(ctx *gin.Context) (uint, bool) {
	userClaims, exists := ctx.Get(userContextKey)
	if !exists {
		return 0, false
	}

	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	// JSON numbers decode as float64.
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func IsAdmin(ctx *gin.Context) bool {
	userClaims, exists := ctx.Get(userContextKey)
	if !exists {
		return false
	}

	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return false
	}

	role, _ := claims["role"].(string)
	return role == "admin"
}
