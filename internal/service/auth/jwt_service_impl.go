package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
)

// hmacJWTService implements JWTService with HMAC-SHA256 signed tokens.
type hmacJWTService struct {
	secret   []byte
	lifetime time.Duration
}

// jwtClaims is the wire representation of Claims.
type jwtClaims struct {
	ClientID string `json:"cid"`
	jwt.RegisteredClaims
}

// NewJWTService creates a JWTService signing tokens with the given secret.
// The secret must be at least 32 bytes; shorter HMAC keys are trivially
// brute-forced.
func NewJWTService(secret string, lifetime time.Duration) (JWTService, error) {
	if len(secret) < 32 {
		return nil, domain.NewValidationError("jwt_secret", "must be at least 32 characters", domain.ErrValidation)
	}
	if lifetime <= 0 {
		return nil, domain.NewValidationError("lifetime", "must be positive", domain.ErrValidation)
	}

	return &hmacJWTService{
		secret:   []byte(secret),
		lifetime: lifetime,
	}, nil
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// GenerateToken implements JWTService.GenerateToken.
func (s *hmacJWTService) GenerateToken(ctx context.Context, clientID uuid.UUID) (string, error) {
	if clientID == uuid.Nil {
		return "", domain.NewValidationError("client_id", "cannot be empty", domain.ErrValidation)
	}

	now := time.Now().UTC()
	claims := jwtClaims{
		ClientID: clientID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken implements JWTService.ValidateToken.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	clientID, err := uuid.Parse(claims.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed client id claim", ErrInvalidToken)
	}

	out := &Claims{
		ClientID: clientID,
		Subject:  claims.Subject,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}
