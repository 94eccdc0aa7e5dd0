// Package auth provides the mock session-identity pieces: password hashing,
// session tokens, and a credentials record mirrored alongside the app state.
// Tokens identify the session user; nothing in the API is gated on them.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayurbalance/wellness-platform/internal/mirror"
)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func SignJWT(userID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT returns the subject of a valid token.
func ParseJWT(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("missing subject")
	}
	return sub, nil
}

const slotCredentials = "credentials"

// Credentials keeps bcrypt hashes per email in its own mirror slot. Logins
// for emails that never signed up are accepted: the flow is a local mock,
// not an authentication service.
type Credentials struct {
	m *mirror.Mirror
}

func NewCredentials(m *mirror.Mirror) *Credentials {
	return &Credentials{m: m}
}

func (c *Credentials) Register(ctx context.Context, email, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	records := map[string]string{}
	c.m.Load(ctx, slotCredentials, &records)
	records[email] = hash
	c.m.Save(ctx, slotCredentials, records)
	return nil
}

func (c *Credentials) Verify(ctx context.Context, email, password string) bool {
	records := map[string]string{}
	c.m.Load(ctx, slotCredentials, &records)
	hash, ok := records[email]
	if !ok {
		return true
	}
	return CheckPassword(hash, password)
}
