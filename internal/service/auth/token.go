// Package auth issues and verifies the HS256 session tokens carried in the
// Authorization header or the token cookie.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed tokens, bad signatures, unexpected
	// algorithms, wrong issuers and missing claims.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned once the current time is past exp.
	ErrTokenExpired = errors.New("token expired")
)

// TokenService signs tokens whose subject is the user's email.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a TokenService.
type Option func(*TokenService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService panics on an empty secret; configuration loading rejects
// that case before any service is built.
func NewTokenService(secret []byte, issuer string, ttl time.Duration, opts ...Option) *TokenService {
	if len(secret) == 0 {
		panic("auth: empty token secret")
	}
	s := &TokenService{secret: secret, issuer: issuer, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL is the token lifetime, also used as the cookie Max-Age.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue returns a signed token for subject valid for the configured TTL.
// Claims carry whole seconds: iat is rounded down and exp up, so a token is
// never rejected before issue time plus TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now.Truncate(time.Second)),
		ExpiresAt: jwt.NewNumericDate(ceilSecond(now.Add(s.ttl))),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the subject.
// A token is accepted up to and including its exp second.
func (s *TokenService) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Issuer != s.issuer {
		return "", fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if claims.ExpiresAt == nil {
		return "", fmt.Errorf("%w: missing exp", ErrInvalidToken)
	}
	if s.now().After(claims.ExpiresAt.Time) {
		return "", ErrTokenExpired
	}
	return claims.Subject, nil
}

func ceilSecond(t time.Time) time.Time {
	down := t.Truncate(time.Second)
	if down.Equal(t) {
		return t
	}
	return down.Add(time.Second)
}
