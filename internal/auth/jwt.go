package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/config"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
)

// AccessClaims are the claims carried by an access token. Role records the
// user's role at issue time; authorization always re-reads the persisted user,
// so a stale claim never grants more than the database allows.
type AccessClaims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and validates access tokens with a symmetric key.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService builds a TokenService from the JWT configuration.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.AccessTTL,
	}
}

// GenerateToken signs an access token for the given user with the configured
// lifetime.
func (ts *TokenService) GenerateToken(user model.User) (string, error) {
	return ts.GenerateTokenWithDuration(user, ts.ttl)
}

// GenerateTokenWithDuration signs an access token with an explicit lifetime.
// A negative duration produces an already expired token, which tests use to
// exercise expiry handling.
func (ts *TokenService) GenerateTokenWithDuration(user model.User, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signedToken, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, nil
}

// ValidateToken parses a signed token, verifying the signature, expiry and
// issuer. It returns the embedded claims on success.
func (ts *TokenService) ValidateToken(encodedToken string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(encodedToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("Invalid token")
	}
	if ts.issuer != "" && claims.Issuer != ts.issuer {
		return nil, fmt.Errorf("Invalid token issuer")
	}
	return claims, nil
}
