package service

import (
	"errors"
	"pharmacy-store/internal/auth"
	"pharmacy-store/internal/dto"
	"pharmacy-store/internal/model"
	"pharmacy-store/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB) (AuthService, *auth.TokenMaker) {
	t.Helper()

	tokenMaker := auth.NewTokenMaker("test-secret", time.Hour)
	return NewAuthService(repository.NewUserRepository(db), tokenMaker), tokenMaker
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc, tokenMaker := newAuthService(t, db)

	registered, err := svc.Register(testCtx, &dto.RegisterRequest{
		Email:     "Jane@Example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", registered.User.Email)
	require.Equal(t, model.RoleUser, registered.User.Role)

	claims, err := tokenMaker.Parse(registered.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, claims.UserID)
	require.Equal(t, model.RoleUser, claims.Role)

	// password is stored only as a hash
	var user model.User
	require.NoError(t, db.First(&user, registered.User.ID).Error)
	require.NotEqual(t, "secret123", user.PasswordHash)
	require.NotEmpty(t, user.PasswordHash)

	logged, err := svc.Login(testCtx, &dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, logged.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)

	req := &dto.RegisterRequest{Email: "jane@example.com", Password: "secret123"}
	_, err := svc.Register(testCtx, req)
	require.NoError(t, err)

	_, err = svc.Register(testCtx, req)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)

	_, err := svc.Register(testCtx, &dto.RegisterRequest{Email: "not-an-email", Password: "secret123"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Register(testCtx, &dto.RegisterRequest{Email: "jane@example.com", Password: "short"})
	require.ErrorAs(t, err, &validationErr)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)

	_, err := svc.Register(testCtx, &dto.RegisterRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(testCtx, &dto.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = svc.Login(testCtx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestProfile(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)

	registered, err := svc.Register(testCtx, &dto.RegisterRequest{
		Email:     "jane@example.com",
		Password:  "secret123",
		FirstName: "Jane",
	})
	require.NoError(t, err)

	profile, err := svc.Profile(testCtx, registered.User.ID)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", profile.Email)
	require.Equal(t, "Jane", profile.FirstName)
}
