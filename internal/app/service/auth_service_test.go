package service_test

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/app/service"
	"taskhub/internal/common"
	"taskhub/internal/common/security"
	"taskhub/internal/platform/config"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
	m.Run()
}

func TestAuthService_Register(t *testing.T) {
	s := service.NewAuthService(newFakeUserRepo())

	resp, err := s.Register(context.Background(), service.RegisterRequest{
		Name: "Alice", Email: "Alice@X.com", Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Alice", resp.Name)
	require.Equal(t, "alice@x.com", resp.Email, "email stored lower-cased")
	require.Equal(t, "user", resp.Role)
	require.Contains(t, resp.Avatar, "ui-avatars.com")
	require.Contains(t, resp.Avatar, "name=Alice")
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	s := service.NewAuthService(repo)

	_, err := s.Register(context.Background(), service.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Register(context.Background(), service.RegisterRequest{Name: "Another", Email: "A@X.COM", Password: "secret2"})
	require.ErrorIs(t, err, common.ErrConflict, "uniqueness is case-insensitive")
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	s := service.NewAuthService(repo)

	_, err := s.Register(context.Background(), service.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	resp, err := s.Login(context.Background(), service.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Alice", resp.Name)
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	repo := newFakeUserRepo()
	s := service.NewAuthService(repo)

	_, err := s.Register(context.Background(), service.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, unknownErr := s.Login(context.Background(), service.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
	_, wrongErr := s.Login(context.Background(), service.LoginRequest{Email: "a@x.com", Password: "wrongpw"})

	// Unknown email and wrong password are indistinguishable to the caller.
	require.ErrorIs(t, unknownErr, common.ErrUnauthorized)
	require.ErrorIs(t, wrongErr, common.ErrUnauthorized)
	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}
