package repository

import (
	"context"
	"errors"

	"github.com/Akashx1550/TrendMart-backend/models"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateProductID = errors.New("product id already taken")
)

// IDMode selects how product ids are allocated.
type IDMode string

const (
	// IDModeSequence allocates ids from an atomic counter.
	IDModeSequence IDMode = "sequence"
	// IDModeLegacy takes the id of the last stored product plus one. Two
	// concurrent creations can receive the same id; the second insert then
	// fails with ErrDuplicateProductID.
	IDModeLegacy IDMode = "legacy"
)

// UserRepo defines the user and cart operations used by the services.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// Create inserts user and sets user.ID.
	Create(ctx context.Context, user *models.User) error
	// IncrementCartSlot adds one to a slot in a single atomic update.
	IncrementCartSlot(ctx context.Context, userID string, slot int) error
	// DecrementCartSlot subtracts one from a slot unless it is already zero,
	// in which case it returns nil without changing anything.
	DecrementCartSlot(ctx context.Context, userID string, slot int) error
}

// ProductRepo defines the catalog operations. Implementations return
// products in store order, which the catalog views depend on.
type ProductRepo interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	// Create returns ErrDuplicateProductID when the id is already stored.
	Create(ctx context.Context, product *models.Product) error
	// DeleteByID removes the product with id and returns it, or nil when
	// no product matched.
	DeleteByID(ctx context.Context, id int64) (*models.Product, error)
	NextID(ctx context.Context) (int64, error)
	// SyncSequence raises the id counter to at least the largest stored id.
	SyncSequence(ctx context.Context) error
}
