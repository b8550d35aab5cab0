package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionIssuer = "wildeats"
	SessionTTL    = 7 * 24 * time.Hour
)

var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "wildeats-dev-secret"
	}
	JWTSecret = []byte(secret)
}

// SetJWTSecret replaces the signing key. Call it before serving requests.
func SetJWTSecret(secret string) {
	if secret != "" {
		JWTSecret = []byte(secret)
	}
}

// SessionClaims identifies an anonymous shopping session.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token for the session, valid for SessionTTL.
func GenerateSessionToken(sessionID string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(SessionTTL)
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(JWTSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ParseSessionToken validates the signature and expiry and returns the claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(sessionIssuer))

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.SessionID == "" {
		return nil, errors.New("invalid token claims")
	}
	if IsSessionRevoked(claims.SessionID) {
		return nil, errors.New("session has ended")
	}
	return claims, nil
}
