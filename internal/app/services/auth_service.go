package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/app/models/dto"
	"github.com/eduverse/eduverse/internal/app/repositories"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
	"github.com/eduverse/eduverse/internal/pkg/auth"
	"github.com/eduverse/eduverse/internal/pkg/email"
	"github.com/eduverse/eduverse/internal/pkg/logger"
)

const resetTokenTTL = time.Hour

// authService implements IAuthService
type authService struct {
	userRepo     repositories.IUserRepository
	jwtService   *auth.JWTService
	demoProvider *auth.DemoProvider
	emailService email.Service
	frontendURL  string
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	demoProvider *auth.DemoProvider,
	emailService email.Service,
	frontendURL string,
) IAuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		demoProvider: demoProvider,
		emailService: emailService,
		frontendURL:  frontendURL,
	}
}

// Register creates an account and immediately opens a session for it.
// Accounts are created verified; there is no activation round trip.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.RoleType(req.Role)
	if role != models.RoleStudent && role != models.RoleTeacher {
		return nil, apperrors.NewValidationError("role must be student or teacher")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUserAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:           req.Email,
		Password:        hashedPassword,
		Name:            req.Name,
		RoleType:        role,
		IsEmailVerified: true,
		Status:          models.StatusActive,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", string(user.RoleType)).Msg("User registered")

	go func() {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to send welcome email")
		}
	}()

	return s.openSession(user)
}

// Login checks credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if s.demoProvider.Match(req.Email, req.Password) {
		user, err := s.userRepo.GetByEmail(ctx, s.demoProvider.Email())
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				logger.Error().Str("email", s.demoProvider.Email()).Msg("Demo account missing from store")
				return nil, apperrors.ErrInvalidCredentials
			}
			return nil, err
		}
		logger.Info().Int64("userId", user.ID).Msg("Demo login")
		return s.openSession(user)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.StatusActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.openSession(user)
}

// GetProfile returns the user with their enrolled courses
func (s *authService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.userRepo.GetEnrolledCourses(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Courses = courses
	return user, nil
}

// UpdateProfile applies the provided fields and returns the updated user
func (s *authService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	err := s.userRepo.UpdateProfile(ctx, userID, req.Name, req.Bio, req.Avatar, req.Phone)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// ForgotPassword stores a reset token and mails the reset link. An unknown
// email is not an error; the caller learns nothing about account existence.
func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Debug().Str("email", req.Email).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.userRepo.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	if err := s.emailService.SendPasswordResetEmail(user.Email, user.Name, resetURL); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	logger.Info().Int64("userId", user.ID).Msg("Password reset token issued")
	return nil
}

// ResetPassword consumes a valid reset token and replaces the password
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	logger.Info().Int64("userId", user.ID).Msg("Password reset completed")
	return nil
}

func (s *authService) openSession(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			Token:     token,
			TokenType: "Bearer",
			ExpiresIn: expiresIn,
		},
		User: user,
	}, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
