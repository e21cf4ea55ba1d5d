package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a session token carrying the user id and email.
func GenerateJWT(secret []byte, userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
