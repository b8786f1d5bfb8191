package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/app/models/dto"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
	"github.com/eduverse/eduverse/internal/pkg/auth"
)

func newTestAuthService(users *fakeUserRepo, demo *auth.DemoProvider, mail *fakeEmailService) IAuthService {
	if demo == nil {
		demo = auth.NewDemoProvider(false, "", "")
	}
	if mail == nil {
		mail = &fakeEmailService{}
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    24 * time.Hour,
		TokenIssuer: "eduverse.test",
	})
	return NewAuthService(users, jwtService, demo, mail, "http://localhost:3000")
}

func registerReq(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:    email,
		Password: "secret123",
		Name:     "Asha Verma",
		Role:     "student",
	}
}

func TestRegisterOpensSession(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestAuthService(users, nil, nil)

	resp, err := service.Register(context.Background(), registerReq("asha@example.com"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token.Token)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, int64(24*60*60), resp.Token.ExpiresIn)
	assert.Equal(t, models.RoleStudent, resp.User.RoleType)
	assert.True(t, resp.User.IsEmailVerified)
	assert.Equal(t, models.StatusActive, resp.User.Status)

	// The stored password is hashed, never plaintext
	stored, err := users.GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestAuthService(users, nil, nil)

	_, err := service.Register(context.Background(), registerReq("asha@example.com"))
	require.NoError(t, err)

	_, err = service.Register(context.Background(), registerReq("ASHA@Example.COM"))
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
}

func TestRegisterStoresEmailLowerCase(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestAuthService(users, nil, nil)

	resp, err := service.Register(context.Background(), registerReq("Asha.Verma@Example.COM"))
	require.NoError(t, err)
	assert.Equal(t, "asha.verma@example.com", resp.User.Email)

	stored, err := users.GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha.verma@example.com", stored.Email)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	service := newTestAuthService(newFakeUserRepo(), nil, nil)

	req := registerReq("asha@example.com")
	req.Role = "admin"
	_, err := service.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLoginRoundTrip(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestAuthService(users, nil, nil)

	_, err := service.Register(context.Background(), registerReq("asha@example.com"))
	require.NoError(t, err)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestAuthService(users, nil, nil)

	_, err := service.Register(context.Background(), registerReq("asha@example.com"))
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	_, wrongErr := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginDisabledAccount(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestAuthService(users, nil, nil)

	resp, err := service.Register(context.Background(), registerReq("asha@example.com"))
	require.NoError(t, err)

	users.users[resp.User.ID].Status = models.StatusDisabled

	_, err = service.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestDemoLoginBypassesPasswordCheck(t *testing.T) {
	users := newFakeUserRepo()
	demo := auth.NewDemoProvider(true, "demo@eduverse.app", "demo-pass")
	service := newTestAuthService(users, demo, nil)

	// Seed the demo account with an unrelated stored password
	_, err := service.Register(context.Background(), registerReq("demo@eduverse.app"))
	require.NoError(t, err)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "demo@eduverse.app",
		Password: "demo-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "demo@eduverse.app", resp.User.Email)

	// Non-demo credentials still go through the password check
	_, err = service.Login(context.Background(), &dto.LoginRequest{
		Email:    "demo@eduverse.app",
		Password: "demo-pass-wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestAuthService(users, nil, nil)

	resp, err := service.Register(context.Background(), registerReq("asha@example.com"))
	require.NoError(t, err)

	bio := "Physics enthusiast"
	updated, err := service.UpdateProfile(context.Background(), resp.User.ID, &dto.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "Asha Verma", updated.Name)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
	assert.True(t, updated.ProfileCompleted)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	mail := &fakeEmailService{}
	service := newTestAuthService(newFakeUserRepo(), nil, mail)

	err := service.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.NoError(t, err)
	assert.Empty(t, mail.resetURLs)
}

func TestPasswordResetFlow(t *testing.T) {
	users := newFakeUserRepo()
	mail := &fakeEmailService{}
	service := newTestAuthService(users, nil, mail)

	_, err := service.Register(context.Background(), registerReq("asha@example.com"))
	require.NoError(t, err)

	err = service.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{Email: "asha@example.com"})
	require.NoError(t, err)
	require.Len(t, mail.resetURLs, 1)

	// The mailed URL carries the token as a query parameter
	resetURL := mail.resetURLs[0]
	token := resetURL[strings.LastIndex(resetURL, "token=")+len("token="):]
	require.NotEmpty(t, token)

	err = service.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	// Old password no longer works, new one does
	_, err = service.Login(context.Background(), &dto.LoginRequest{Email: "asha@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), &dto.LoginRequest{Email: "asha@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)

	// A consumed token cannot be replayed
	err = service.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "another-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPasswordResetToken)
}
