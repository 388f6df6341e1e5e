package services

import (
	"context"
	"testing"

	"github.com/sportsbridge/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthRegister(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)

	user, err := svc.Register(context.Background(), RegisterInput{
		FullName: "  Arjun Mehta ",
		Email:    "  ARJUN@Test.Dev ",
		Password: "correct-horse",
		Role:     models.RoleAthlete,
	})
	require.NoError(t, err)

	assert.Equal(t, "Arjun Mehta", user.FullName)
	assert.Equal(t, "arjun@test.dev", user.Email)
	assert.Equal(t, models.RoleAthlete, user.Role)
	assert.Empty(t, user.PasswordHash, "hash must not leak out of the service")

	stored, err := userRepo.GetByEmail(context.Background(), "arjun@test.dev")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			"empty full name",
			RegisterInput{Email: "a@b.c", Password: "longenough", Role: models.RoleDonor},
			ErrFullNameRequired,
		},
		{
			"short password",
			RegisterInput{FullName: "A", Email: "a@b.c", Password: "short", Role: models.RoleDonor},
			ErrPasswordTooShort,
		},
		{
			"unknown role",
			RegisterInput{FullName: "A", Email: "a@b.c", Password: "longenough", Role: models.UserRole("admin")},
			ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthRegisterEmailConflict(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	input := RegisterInput{FullName: "A", Email: "dup@test.dev", Password: "longenough", Role: models.RoleDonor}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	input.FullName = "B"
	_, err = svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestAuthLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Arjun Mehta", Email: "arjun@test.dev", Password: "correct-horse", Role: models.RoleAthlete,
	})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), LoginInput{Email: "Arjun@Test.Dev", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "arjun@test.dev", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Login(context.Background(), LoginInput{Email: "arjun@test.dev", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@test.dev", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
