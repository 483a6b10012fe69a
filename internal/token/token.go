// Package token issues and verifies the signed bearer tokens handed out at login.
package token

import (
	"strconv"
	"time"

	"leave-api/internal/apperror"
	"leave-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// BearerPrefix precedes the token in login responses and Authorization headers
const BearerPrefix = "Bearer "

// Claims is the signed claim set {id, email, role}
type Claims struct {
	UserID int    `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 tokens with a shared secret
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for the identity. The role is expected uppercased.
func (m *Manager) Issue(identity model.Identity) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: identity.UserID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(identity.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", apperror.Internal("failed to generate token", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity
func (m *Manager) Verify(raw string) (*model.Identity, error) {
	if raw == "" {
		return nil, apperror.ErrUnauthenticated
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, &apperror.Error{
			Kind:    apperror.ErrInvalidToken.Kind,
			Message: apperror.ErrInvalidToken.Message,
			Err:     err,
		}
	}

	return &model.Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
