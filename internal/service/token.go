package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/admin-panel-backend/internal/config"
)

// Claims is the JWT payload. The subject carries the user's email; role and
// approval are deliberately absent and re-read from the store per request.
type Claims struct {
	jwt.RegisteredClaims
}

// Email returns the subject email.
func (c *Claims) Email() string {
	return c.Subject
}

// TokenOption customizes a TokenIssuer.
type TokenOption func(*TokenIssuer)

// WithTokenClock replaces the clock used to stamp and check expirations.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

// TokenIssuer signs and validates HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

// NewTokenIssuer creates a TokenIssuer from the JWT settings in cfg.
func NewTokenIssuer(cfg *config.Config, log zerolog.Logger, opts ...TokenOption) *TokenIssuer {
	t := &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    cfg.JWTExpiry,
		now:    time.Now,
		log:    log.With().Str("component", "token_issuer").Logger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TTL returns the lifetime of issued tokens.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue creates a signed token for email and returns it with its expiry.
func (t *TokenIssuer) Issue(email string) (string, time.Time, error) {
	now := t.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    t.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Validate parses and verifies a token. A token is rejected from its
// expiration instant onward. All failures collapse into ErrUnauthenticated.
func (t *TokenIssuer) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		t.log.Debug().Str("reason", tokenFailureReason(err)).Err(err).Msg("Token rejected")
		return nil, ErrUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		t.log.Debug().Str("reason", "claims").Msg("Token rejected")
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "issuer"
	default:
		return "invalid"
	}
}
