// Package token issues and verifies the signed session tokens the CLI keeps between invocations.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/secondary"
)

const issuer = "campuscare"

// Claims carries a session inside a JWT.
type Claims struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"dept,omitempty"`
	jwt.RegisteredClaims
}

// JWTTokens implements secondary.SessionTokens with HS256.
type JWTTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTTokens creates a token issuer. ttl <= 0 means tokens never expire.
func NewJWTTokens(secret string, ttl time.Duration) (*JWTTokens, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	return &JWTTokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for the session.
func (t *JWTTokens) Issue(session complaint.Session) (string, error) {
	now := t.now()
	claims := Claims{
		Name:       session.Name,
		Role:       string(session.Role),
		Department: string(session.Department),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  session.ID,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature, issuer and expiry and returns the session.
func (t *JWTTokens) Parse(raw string) (*complaint.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", secondary.ErrInvalidToken, err)
	}

	role, err := complaint.ParseRole(claims.Role)
	if err != nil || claims.Subject == "" {
		return nil, fmt.Errorf("%w: malformed claims", secondary.ErrInvalidToken)
	}
	return &complaint.Session{
		ID:         claims.Subject,
		Name:       claims.Name,
		Role:       role,
		Department: complaint.Department(claims.Department),
	}, nil
}

// Ensure JWTTokens implements the interface
var _ secondary.SessionTokens = (*JWTTokens)(nil)
