package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stemsi/admin-panel-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newClockedIssuer(clock *fakeClock) *service.TokenIssuer {
	return service.NewTokenIssuer(testConfig(), zerolog.Nop(), service.WithTokenClock(clock.Now))
}

func TestTokenIssueAndValidate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	issuer := newClockedIssuer(clock)

	token, expiresAt, err := issuer.Issue("a@x.com")
	require.NoError(t, err)
	assert.True(t, expiresAt.Equal(clock.t.Add(30*time.Minute)))
	assert.Equal(t, 30*time.Minute, issuer.TTL())

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email())
	assert.Equal(t, "admin-panel-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	issuer := newClockedIssuer(clock)

	token, expiresAt, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{name: "just issued", at: issuedAt},
		{name: "one tick before expiry", at: expiresAt.Add(-time.Nanosecond)},
		{name: "at expiry", at: expiresAt, wantErr: true},
		{name: "one second past expiry", at: expiresAt.Add(time.Second), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.t = tt.at
			_, err := issuer.Validate(token)
			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrUnauthenticated)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTokenValidateRejects(t *testing.T) {
	issuer := service.NewTokenIssuer(testConfig(), zerolog.Nop())
	valid, _, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWTSecret = "another-secret"
	forged, _, err := service.NewTokenIssuer(otherCfg, zerolog.Nop()).Issue("a@x.com")
	require.NoError(t, err)

	otherIssuerCfg := testConfig()
	otherIssuerCfg.JWTIssuer = "someone-else"
	wrongIssuer, _, err := service.NewTokenIssuer(otherIssuerCfg, zerolog.Nop()).Issue("a@x.com")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "a@x.com",
		Issuer:    "admin-panel-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "a@x.com",
		Issuer:  "admin-panel-test",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "admin-panel-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "tampered payload", token: tampered},
		{name: "wrong key", token: forged},
		{name: "wrong issuer", token: wrongIssuer},
		{name: "alg none", token: none},
		{name: "missing exp", token: noExpiry},
		{name: "missing subject", token: noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.Validate(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, service.ErrUnauthenticated)
		})
	}
}
