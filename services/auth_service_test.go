package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Akashx1550/TrendMart-backend/common/auth"
	apperrors "github.com/Akashx1550/TrendMart-backend/common/errors"
	"github.com/Akashx1550/TrendMart-backend/models"
	"github.com/Akashx1550/TrendMart-backend/repository"
)

func newTestAuth(t *testing.T, users repository.UserRepo, events EventPublisher) (AuthService, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret")
	require.NoError(t, err)
	return NewAuthService(users, tokens, NewBcryptHasher(bcrypt.MinCost), events, nil), tokens
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		users := newMemoryUserRepo()
		events := new(MockEventPublisher)
		events.On("Publish", mock.Anything, models.EventUserRegistered, mock.Anything).Return().Once()
		svc, tokens := newTestAuth(t, users, events)

		token, err := svc.Signup(ctx, models.SignupRequest{Username: "alice", Email: "a@x.com", Password: "pw"})
		require.NoError(t, err)

		stored, err := users.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)

		userID, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, stored.ID.Hex(), userID)

		assert.Len(t, stored.CartData, models.CartSlots)
		for i := 0; i < models.CartSlots; i++ {
			assert.Equal(t, 0, stored.CartData[models.SlotKey(i)])
		}
		assert.NotEqual(t, "pw", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw")))
		assert.Equal(t, "alice", stored.Name)
		events.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		users := newMemoryUserRepo()
		svc, _ := newTestAuth(t, users, nil)

		_, err := svc.Signup(ctx, models.SignupRequest{Username: "alice", Email: "a@x.com", Password: "pw"})
		require.NoError(t, err)

		token, err := svc.Signup(ctx, models.SignupRequest{Username: "alice2", Email: "a@x.com", Password: "pw2"})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateUser)
		assert.Empty(t, token)
		assert.Len(t, users.users, 1)
	})

	t.Run("Concurrent duplicate caught by unique index", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", ctx, "a@x.com").Return(nil, repository.ErrNotFound).Once()
		users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicateEmail).Once()
		svc, _ := newTestAuth(t, users, nil)

		_, err := svc.Signup(ctx, models.SignupRequest{Username: "alice", Email: "a@x.com", Password: "pw"})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateUser)
		users.AssertExpectations(t)
	})

	t.Run("Password over bcrypt limit", func(t *testing.T) {
		users := newMemoryUserRepo()
		svc, _ := newTestAuth(t, users, nil)

		// 40 characters, 80 bytes: short enough for the binding, too long for bcrypt.
		_, err := svc.Signup(ctx, models.SignupRequest{Username: "alice", Email: "a@x.com", Password: strings.Repeat("é", 40)})
		assert.ErrorIs(t, err, apperrors.ErrPasswordTooLong)
		assert.Empty(t, users.users)
	})

	t.Run("Store failure", func(t *testing.T) {
		users := new(MockUserRepository)
		storeErr := errors.New("connection refused")
		users.On("FindByEmail", ctx, "a@x.com").Return(nil, storeErr).Once()
		svc, _ := newTestAuth(t, users, nil)

		_, err := svc.Signup(ctx, models.SignupRequest{Username: "alice", Email: "a@x.com", Password: "pw"})
		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, apperrors.ErrDuplicateUser)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	svc, tokens := newTestAuth(t, users, nil)

	_, err := svc.Signup(ctx, models.SignupRequest{Username: "alice", Email: "a@x.com", Password: "correct"})
	require.NoError(t, err)
	stored, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		token, err := svc.Login(ctx, "a@x.com", "correct")
		require.NoError(t, err)
		userID, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, stored.ID.Hex(), userID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@x.com", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrWrongPassword)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@x.com", "correct")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
