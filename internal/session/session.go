// Package session menerbitkan dan memverifikasi token JWT login.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() uint {
	id, _ := strconv.ParseUint(c.Subject, 10, 64)
	return uint(id)
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	store  Store
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, store Store) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, store: store, now: time.Now}
}

// Issue membuat token HS256 berisi id, username, role dan jti unik.
func (m *Manager) Issue(user *model.User) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify memeriksa tanda tangan, masa berlaku dan status logout token.
func (m *Manager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthorized("Token kadaluwarsa, silakan login kembali")
		}
		return nil, apperr.Unauthorized("Token tidak valid")
	}

	revoked, err := m.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if revoked {
		return nil, apperr.Unauthorized("Sesi sudah berakhir, silakan login kembali")
	}
	return claims, nil
}

// Revoke menandai token logout sampai waktu kedaluwarsanya.
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	return m.store.Revoke(ctx, claims.ID, claims.ExpiresAt.Sub(m.now()))
}
