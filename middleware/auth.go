package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	emailKey  = "userEmail"
	userIDKey = "userID"
)

// AuthMiddleware validates the session cookie and stores the caller's email
// and user id in the request context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		email, _ := claims["email"].(string)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(emailKey, email)
		if sub, ok := claims["sub"].(string); ok {
			c.Set(userIDKey, sub)
		}
		c.Next()
	}
}

func GetUserEmail(c *gin.Context) string {
	if val, ok := c.Get(emailKey); ok {
		if email, ok := val.(string); ok {
			return email
		}
	}
	return ""
}

func GetUserID(c *gin.Context) string {
	if val, ok := c.Get(userIDKey); ok {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}
