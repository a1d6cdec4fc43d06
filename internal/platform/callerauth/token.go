package callerauth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret  = errors.New("caller token secret is required")
	ErrMissingSubject = errors.New("caller token subject is required")
	ErrInvalidToken   = errors.New("invalid caller token")
)

// Issuer signs and verifies HS256 caller tokens. The token subject is the
// caller principal.
type Issuer struct {
	secret []byte
	issuer string
}

func NewIssuer(secret string, issuer string) (Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return Issuer{}, ErrMissingSecret
	}
	return Issuer{secret: []byte(secret), issuer: strings.TrimSpace(issuer)}, nil
}

func (i Issuer) Issue(subject string, ttl time.Duration, now time.Time) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", ErrMissingSubject
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign caller token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and issuer, then returns the subject.
func (i Issuer) Verify(raw string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", ErrMissingSubject
	}
	return subject, nil
}
