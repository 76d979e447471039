package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

type Service struct {
	users      interfaces.UserRepository
	tokens     interfaces.TokenIssuer
	bcryptCost int
	logger     logger.Logger
}

func NewService(users interfaces.UserRepository, tokens interfaces.TokenIssuer, bcryptCost int, logger logger.Logger) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Register(ctx context.Context, username, password, email string) (*interfaces.AuthResult, error) {
	reqID := logger.RequestID(ctx)

	// 1. Валидация
	if err := domain.ValidateCredentials(username, password, email); err != nil {
		return nil, err
	}
	if len(password) > maxPasswordBytes {
		return nil, domain.NewValidationError("password", "password must not exceed 72 bytes")
	}

	// 2. Хеширование пароля
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	// 3. Создание пользователя; дубликат имени не создает строку
	user := &domain.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		IsActive:     true,
		DateJoined:   time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// 4. Выдача токенов
	tokens, err := s.tokens.IssuePair(user)
	if err != nil {
		s.logger.Error("token_issue_failed", "Failed to issue tokens", reqID, map[string]interface{}{"user_id": user.ID}, err)
		return nil, err
	}

	s.logger.Info("user_registered", "User registered", reqID, map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return &interfaces.AuthResult{User: user, Tokens: tokens}, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*interfaces.AuthResult, error) {
	reqID := logger.RequestID(ctx)

	if err := domain.ValidateCredentials(username, password, ""); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Debug("login_failed", "Unknown username", reqID, map[string]interface{}{"username": username})
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		s.logger.Debug("login_failed", "Inactive account", reqID, map[string]interface{}{"user_id": user.ID})
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("login_failed", "Wrong password", reqID, map[string]interface{}{"user_id": user.ID})
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Error("db_query_failed", "Failed to record last login", reqID, map[string]interface{}{"user_id": user.ID}, err)
	} else {
		user.LastLogin = &now
	}

	s.logger.Info("user_logged_in", "User logged in", reqID, map[string]interface{}{"user_id": user.ID})
	return &interfaces.AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The account
// must still exist and be active.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Parse(refreshToken, domain.TokenRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", domain.ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", domain.ErrInvalidToken
	}

	return s.tokens.IssueAccess(user)
}

func (s *Service) Authenticate(_ context.Context, accessToken string) (*domain.TokenClaims, error) {
	return s.tokens.Parse(accessToken, domain.TokenAccess)
}
