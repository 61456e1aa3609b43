package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Akashx1550/TrendMart-backend/common/errors"
	"github.com/Akashx1550/TrendMart-backend/models"
	"github.com/Akashx1550/TrendMart-backend/repository"

	"go.uber.org/zap"
)

// TokenIssuer signs a token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	users  repository.UserRepo
	tokens TokenIssuer
	hasher PasswordHasher
	events EventPublisher
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(users repository.UserRepo, tokens TokenIssuer, hasher PasswordHasher, events EventPublisher, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Signup registers a user with an empty 300-slot cart and returns a token
// for the new account.
func (s *authService) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	_, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return "", apperrors.ErrDuplicateUser
	case !errors.Is(err, repository.ErrNotFound):
		return "", fmt.Errorf("signup lookup: %w", err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Name:     req.Username,
		Email:    req.Email,
		Password: hashed,
		CartData: models.NewCartData(),
		Date:     s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", apperrors.ErrDuplicateUser
		}
		return "", fmt.Errorf("signup create: %w", err)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.Hex()))
	if s.events != nil {
		s.events.Publish(ctx, models.EventUserRegistered, models.UserRegisteredData{
			UserID: user.ID.Hex(),
			Email:  user.Email,
			Name:   user.Name,
		})
	}
	return token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("login lookup: %w", err)
	}

	if !s.hasher.Compare(user.Password, password) {
		return "", apperrors.ErrWrongPassword
	}

	return s.tokens.Issue(user.ID.Hex())
}
