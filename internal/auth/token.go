package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleBroker Role = "broker"
	RoleAdmin  Role = "admin"
)

// Identity is the authenticated actor for the lifetime of one request.
type Identity struct {
	ID   int64
	Role Role
}

var (
	ErrMissingCredential   = errors.New("missing credential")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrInvalidCredential   = errors.New("invalid credential")
)

type claims struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Sign issues an HS256 token carrying {id, role, exp}. Login handlers use a
// 1-day ttl.
func Sign(id int64, role Role, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID:   id,
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(secret)
}

// VerifyBearer validates an "Authorization: Bearer <token>" header value and
// returns the embedded identity. It never touches the data store. The three
// error values all map to a single generic 401 at the HTTP layer so a caller
// cannot probe which check failed.
func VerifyBearer(header string, secret []byte) (Identity, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Identity{}, ErrMissingCredential
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return Identity{}, ErrMalformedCredential
	}

	return Verify(strings.TrimSpace(parts[1]), secret)
}

// Verify checks a raw token string against the signing secret.
func Verify(tokenString string, secret []byte) (Identity, error) {
	var cl claims
	token, err := jwt.ParseWithClaims(tokenString, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredential
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidCredential
	}
	return Identity{ID: cl.ID, Role: Role(cl.Role)}, nil
}
