package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/localewatch/localewatch/internal/config"
	"github.com/localewatch/localewatch/internal/utils"
)

// CustomClaims extends the standard JWT claims with the actor identity the
// API needs to evaluate capabilities without a user lookup per request.
type CustomClaims struct {
	UserID        int64    `json:"user_id"`
	Username      string   `json:"username"`
	Administrator bool     `json:"administrator"`
	Capabilities  []string `json:"capabilities"`
	jwt.RegisteredClaims
}

// JWTService provides JWT token generation and validation functionality
type JWTService struct {
	config *config.JWTSettings
}

// NewJWTService creates a new JWTService with the provided configuration
func NewJWTService(cfg *config.JWTSettings) *JWTService {
	return &JWTService{config: cfg}
}

// GenerateToken creates a signed access token for an actor.
//
// Parameters:
//   - actor: The authenticated actor to embed in the token claims
//
// Returns:
//   - string: The signed token
//   - string: The token's unique ID (jti)
//   - error: An error if signing fails
func (s *JWTService) GenerateToken(actor *Actor) (string, string, error) {
	now := time.Now()
	tokenID := uuid.New().String()

	claims := CustomClaims{
		UserID:        actor.ID,
		Username:      actor.Username,
		Administrator: actor.Administrator,
		Capabilities:  actor.Capabilities,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   fmt.Sprintf("%d", actor.ID),
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, tokenID, nil
}

// ValidateToken parses and verifies a signed token and returns its claims.
//
// Returns:
//   - *CustomClaims: The verified claims
//   - error: An expired-token or invalid-token AppError on failure
func (s *JWTService) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Reject any signing method other than the HMAC family used to sign.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}
	if claims.Issuer != s.config.Issuer {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}

// ActorFromClaims reconstructs the authenticated actor from verified claims.
func ActorFromClaims(claims *CustomClaims) *Actor {
	return &Actor{
		ID:            claims.UserID,
		Username:      claims.Username,
		Administrator: claims.Administrator,
		Capabilities:  claims.Capabilities,
	}
}
