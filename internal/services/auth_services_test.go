package services

import (
	"context"
	"testing"

	"SareeStoreAPI/internal/repository/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := NewAuthService(memstore.New().Users())
	ctx := context.Background()

	u, err := svc.Register(ctx, " Nila@Example.com ", "silk-and-zari", "Nila")
	require.NoError(t, err)
	assert.Equal(t, "nila@example.com", u.Email)
	assert.False(t, u.IsAdmin)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.Register(ctx, "nila@example.com", "another-password", "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	logged, err := svc.Login(ctx, "nila@example.com", "silk-and-zari")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, logged.UserID)
	assert.Empty(t, logged.PasswordHash)

	_, err = svc.Login(ctx, "nila@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ghost@example.com", "silk-and-zari")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := svc.Me(ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, "nila@example.com", me.Email)

	_, err = svc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := NewAuthService(memstore.New().Users())

	testCases := []struct {
		name          string
		email         string
		password      string
		expectedField string
	}{
		{name: "Missing email", email: "", password: "longenough", expectedField: "email"},
		{name: "Bad email", email: "nila", password: "longenough", expectedField: "email"},
		{name: "Short password", email: "nila@example.com", password: "short", expectedField: "password"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.password, "")
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.expectedField, vErr.Field)
		})
	}
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	svc := NewAuthService(memstore.New().Users())

	u, err := svc.RegisterAdmin(context.Background(), "owner@example.com", "backoffice-pass", "Owner")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}
