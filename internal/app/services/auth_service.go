package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	pkgauth "github.com/trashmob-eco/trashmob-api/internal/pkg/auth"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/email"
)

// AuthService defines the interface for account and session operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, *dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error)
	IsUserNameAvailable(ctx context.Context, userName string) (bool, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo     *repositories.UserRepository
	jwtService   *pkgauth.JWTService
	emailService email.EmailService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo *repositories.UserRepository,
	jwtService *pkgauth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		jwtService:   jwtService,
		emailService: emailService,
		logger:       logger,
		now:          time.Now,
	}
}

// Register creates an account, issues a token pair, and sends the welcome
// email. The welcome email is best effort; a delivery failure does not fail
// registration.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, *dto.TokenResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, nil, err
	}

	available, err := s.IsUserNameAvailable(ctx, req.UserName)
	if err != nil {
		return nil, nil, err
	}
	if !available {
		return nil, nil, apperrors.ErrUserNameTaken
	}

	passwordHash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		GivenName:    req.GivenName,
		SurName:      req.SurName,
		City:         req.City,
		Region:       req.Region,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		MemberSince:  s.now(),
	}
	if err := s.userRepo.Add(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.emailService.SendWelcomeEmail(user.Email, user.UserName); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("Welcome email failed")
	}

	s.logger.Info().Str("userId", user.ID.String()).Str("userName", user.UserName).Msg("User registered")
	return user, tokens, nil
}

// Login verifies credentials and issues a token pair. A wrong email and a
// wrong password are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !pkgauth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userId", user.ID.String()).Msg("User logged in")
	return tokens, nil
}

// RefreshToken exchanges a valid refresh token for a new pair.
func (s *authServiceImpl) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	userID, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, pkgauth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

// GetProfile fetches the user's account record.
func (s *authServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile edits the caller's profile fields. The user name, email, and
// password are not editable through this path.
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.GivenName = req.GivenName
	user.SurName = req.SurName
	user.City = req.City
	user.Region = req.Region
	user.Country = req.Country
	user.PostalCode = req.PostalCode
	user.Latitude = req.Latitude
	user.Longitude = req.Longitude
	user.TravelLimitForLocalEvents = req.TravelLimitForLocalEvents
	user.PrefersMetric = req.PrefersMetric

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// IsUserNameAvailable reports whether no account holds the user name after
// trimming and case folding.
func (s *authServiceImpl) IsUserNameAvailable(ctx context.Context, userName string) (bool, error) {
	count, err := s.userRepo.CountByUserName(ctx, userName)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *authServiceImpl) issueTokens(user *models.User) (*dto.TokenResponse, error) {
	access, refresh, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}, nil
}
