package session

import (
	"context"
	"testing"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(now time.Time) *Manager {
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	m := NewManager("rahasia-test", 2*time.Hour, store)
	m.now = func() time.Time { return now }
	return m
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)
	m := newTestManager(now)

	token, exp, err := m.Issue(&model.User{ID: 7, Username: "staff", Role: model.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, now.Add(2*time.Hour), exp)

	claims, err := m.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID())
	assert.Equal(t, "staff", claims.Username)
	assert.Equal(t, model.RoleStaff, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyRejectsExpired(t *testing.T) {
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)
	m := newTestManager(now)
	token, _, err := m.Issue(&model.User{ID: 1, Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	m.now = func() time.Time { return now.Add(3 * time.Hour) }
	_, err = m.Verify(context.Background(), token)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	now := time.Now()
	token, _, err := NewManager("lain", time.Hour, NewMemoryStore()).Issue(&model.User{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = newTestManager(now).Verify(context.Background(), token)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = newTestManager(now).Verify(context.Background(), "bukan.token.jwt")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestRevokeLogsOut(t *testing.T) {
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)
	m := newTestManager(now)
	token, _, err := m.Issue(&model.User{ID: 1, Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	claims, err := m.Verify(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, m.Revoke(context.Background(), claims))

	_, err = m.Verify(context.Background(), token)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestMemoryStoreExpires(t *testing.T) {
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Revoke(context.Background(), "abc", time.Minute))

	revoked, err := s.IsRevoked(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	s.now = func() time.Time { return now.Add(2 * time.Minute) }
	revoked, err = s.IsRevoked(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, s.revoked)
}
