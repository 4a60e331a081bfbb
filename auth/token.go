package auth

import (
	"chat-poll/domain"
	"chat-poll/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "chat-poll"

// SessionClaims is the content of the session cookie. UserID is 0 for an
// anonymous session that only carries a CSRF token.
type SessionClaims struct {
	UserID       int64  `json:"user_id"`
	RequestToken string `json:"request_token"`
	jwt.RegisteredClaims
}

type SessionManager struct {
	secret   []byte
	duration time.Duration
}

func NewSessionManager(secret string, duration time.Duration) SessionManager {
	return SessionManager{secret: []byte(secret), duration: duration}
}

// NewRequestToken returns a fresh random CSRF token.
func NewRequestToken() string {
	return uuid.NewString()
}

// Issue signs a session for userID carrying requestToken.
func (s SessionManager) Issue(userID domain.UserID, requestToken string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:       int64(userID),
		RequestToken: requestToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrTokenGeneration, err)
	}
	return signed, nil
}

// Parse validates signature, algorithm, issuer and expiry of a session.
func (s SessionManager) Parse(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil || !parsed.Valid {
		return nil, errors.ErrInvalidSession
	}
	return claims, nil
}

func (s SessionManager) Duration() time.Duration {
	return s.duration
}
