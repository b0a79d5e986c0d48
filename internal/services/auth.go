package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gear-system/internal/dto"
	"gear-system/internal/entities"
	"gear-system/internal/repositories"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/service"
	"gear-system/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, data dto.RegisterDTO) (*dto.TokenPairDTO, error)
	Login(ctx context.Context, data dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Me(ctx context.Context) (*dto.ProfileDTO, error)
}

type AuthService struct {
	userRepo repositories.UserRepositoryInterface
	jwtSvc   service.JWTService
	logger   *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{userRepo: userRepo, jwtSvc: jwtSvc, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, data dto.RegisterDTO) (*dto.TokenPairDTO, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, data.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := s.userRepo.CreateUser(ctx, entities.User{
		Fio:          data.Fio,
		Email:        data.Email,
		PasswordHash: string(hash),
		Role:         entities.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint64("userID", id), zap.String("email", data.Email))
	return s.issueTokens(id, entities.RoleUser)
}

func (s *AuthService) Login(ctx context.Context, data dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, data.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user.ID, user.Role)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Re-read the user so a role change invalidates stale claims.
	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	return s.issueTokens(user.ID, user.Role)
}

func (s *AuthService) Me(ctx context.Context) (*dto.ProfileDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &dto.ProfileDTO{
		ID:    user.ID,
		Fio:   user.Fio,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.AvatarURL.Valid {
		profile.AvatarURL = &user.AvatarURL.String
	}
	return profile, nil
}

func (s *AuthService) issueTokens(userID uint64, role string) (*dto.TokenPairDTO, error) {
	access, refresh, err := s.jwtSvc.GenerateTokens(userID, role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}
