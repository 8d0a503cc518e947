// Package token implements the signed bearer token codec.
// Tokens are self-contained HS256 JWTs carrying the user id as subject,
// so the common verification path needs no storage lookup; only the
// revocation check consults shared state.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "usersvc"

// Verification errors. The HTTP layer collapses both into the same
// response message; the distinction exists for logs and tests only.
var (
	// ErrMalformed indicates the token cannot be parsed or the
	// signature does not match.
	ErrMalformed = errors.New("malformed token")

	// ErrExpired indicates the token is past its expiry.
	ErrExpired = errors.New("token expired")
)

// Claims are the verified contents of a token.
type Claims struct {
	UserID    int64
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec issues and verifies signed bearer tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// New creates a codec signing with secret and issuing tokens valid for ttl.
// secret should be a cryptographically secure random string.
func New(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed token for userID with expiry now + TTL.
// Each token gets a unique jti; the revocation ledger is keyed by it.
func (c *Codec) Issue(userID int64, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of tokenString against now and
// returns the embedded claims. Returns ErrExpired for a valid but expired
// token and ErrMalformed for everything else.
func (c *Codec) Verify(tokenString string, now time.Time) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuer(issuer),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	registered, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}

	userID, err := strconv.ParseInt(registered.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", ErrMalformed)
	}

	claims := &Claims{
		UserID: userID,
		JTI:    registered.ID,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}

	return claims, nil
}
