package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (dto.TokenPairDTO, error)
	Refresh(ctx context.Context, refreshToken string) (dto.TokenPairDTO, error)
	Logout(ctx context.Context, userID uint64, sessionID string) error
}

type AuthService struct {
	userRepo    repositories.UserRepositoryInterface
	sessionRepo repositories.SessionRepositoryInterface
	jwtService  service.JWTService
	activity    ActivityServiceInterface
	logger      *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	sessionRepo repositories.SessionRepositoryInterface,
	jwtService service.JWTService,
	activity ActivityServiceInterface,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		activity:    activity,
		logger:      logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Indistinguishable from a wrong password.
			return dto.TokenPairDTO{}, apperrors.ErrInvalidCredentials
		}
		return dto.TokenPairDTO{}, err
	}
	if !user.IsActive {
		return dto.TokenPairDTO{}, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return dto.TokenPairDTO{}, apperrors.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, sessionID)
	if err != nil {
		return dto.TokenPairDTO{}, err
	}
	if err := s.sessionRepo.Create(ctx, user.ID, sessionID, s.jwtService.GetRefreshTokenTTL()); err != nil {
		return dto.TokenPairDTO{}, err
	}

	s.activity.Log(ctx, &user.ID, entities.ActivityCategoryLogin,
		"auth.login", user.FullName()+" signed in", nil)

	return dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh rotates the session: the old session id is revoked and a fresh one
// is issued, so a leaked refresh token stops working after first use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return dto.TokenPairDTO{}, apperrors.ErrInvalidToken
	}
	if !claims.IsRefreshToken {
		return dto.TokenPairDTO{}, apperrors.ErrTokenIsNotRefresh
	}

	active, err := s.sessionRepo.IsActive(ctx, claims.UserID, claims.SessionID)
	if err != nil {
		return dto.TokenPairDTO{}, err
	}
	if !active {
		return dto.TokenPairDTO{}, apperrors.ErrSessionRevoked
	}

	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		return dto.TokenPairDTO{}, err
	}
	if !user.IsActive {
		return dto.TokenPairDTO{}, apperrors.ErrSessionRevoked
	}

	if err := s.sessionRepo.Revoke(ctx, claims.UserID, claims.SessionID); err != nil {
		return dto.TokenPairDTO{}, err
	}

	sessionID := uuid.NewString()
	accessToken, newRefreshToken, err := s.jwtService.GenerateTokens(user.ID, sessionID)
	if err != nil {
		return dto.TokenPairDTO{}, err
	}
	if err := s.sessionRepo.Create(ctx, user.ID, sessionID, s.jwtService.GetRefreshTokenTTL()); err != nil {
		return dto.TokenPairDTO{}, err
	}

	return dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uint64, sessionID string) error {
	if err := s.sessionRepo.Revoke(ctx, userID, sessionID); err != nil {
		return err
	}
	s.activity.Log(ctx, &userID, entities.ActivityCategoryLogin,
		"auth.logout", "signed out", nil)
	return nil
}
