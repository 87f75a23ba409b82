package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(users *fakeUserRepo) *UserService {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_counters"},
		[]string{"result"},
	)
	return NewUserService(users, counter).(*UserService)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash, never the password", func(t *testing.T) {
		svc := newUserService(newFakeUserRepo())

		u, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
		require.NoError(t, err)

		assert.Equal(t, "alice", u.Username)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := newUserService(users)

		_, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "other@example.com", "s3cret-pass")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := newUserService(users)

		_, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "bob", "alice@example.com", "s3cret-pass")
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestUserService_FindByEmail(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newUserService(users)

	created, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	u, err := svc.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, created.UUID, u.UUID)

	missing, err := svc.FindByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
