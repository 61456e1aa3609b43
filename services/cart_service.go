package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/Akashx1550/TrendMart-backend/common/errors"
	"github.com/Akashx1550/TrendMart-backend/models"
	"github.com/Akashx1550/TrendMart-backend/repository"
)

type CartService interface {
	AddItem(ctx context.Context, userID string, slot int) error
	RemoveItem(ctx context.Context, userID string, slot int) error
	GetCart(ctx context.Context, userID string) (models.CartData, error)
}

type cartService struct {
	users repository.UserRepo
}

func NewCartService(users repository.UserRepo) CartService {
	return &cartService{users: users}
}

func (s *cartService) AddItem(ctx context.Context, userID string, slot int) error {
	if !models.ValidSlot(slot) {
		return apperrors.ErrValidation
	}
	return mapUserErr(s.users.IncrementCartSlot(ctx, userID, slot), "add to cart")
}

// RemoveItem decrements slot, leaving it at zero if it is already empty.
func (s *cartService) RemoveItem(ctx context.Context, userID string, slot int) error {
	if !models.ValidSlot(slot) {
		return apperrors.ErrValidation
	}
	return mapUserErr(s.users.DecrementCartSlot(ctx, userID, slot), "remove from cart")
}

func (s *cartService) GetCart(ctx context.Context, userID string) (models.CartData, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err, "get cart")
	}
	if user.CartData == nil {
		return models.CartData{}, nil
	}
	return user.CartData, nil
}

func mapUserErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrUserNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
