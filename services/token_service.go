package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fabzclean/fabzclean-api/config"
)

// CustomerClaims holds the typed JWT payload for customer tokens
type CustomerClaims struct {
	CustomerID uint `json:"customer_id"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed short-lived JWT for the given customer
func GenerateAccessToken(cfg *config.Config, customerID uint) (string, error) {
	return generateToken(cfg, customerID, time.Duration(cfg.AccessTokenMinutes)*time.Minute)
}

// GenerateRefreshToken creates a longer-lived token used to refresh access
func GenerateRefreshToken(cfg *config.Config, customerID uint) (string, error) {
	return generateToken(cfg, customerID, time.Duration(cfg.RefreshTokenDays)*24*time.Hour)
}

func generateToken(cfg *config.Config, customerID uint, ttl time.Duration) (string, error) {
	claims := CustomerClaims{
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", customerID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

// ValidateToken parses and validates a customer JWT string
func ValidateToken(cfg *config.Config, tokenString string) (*CustomerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomerClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomerClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
