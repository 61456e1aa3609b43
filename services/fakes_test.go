package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Akashx1550/TrendMart-backend/models"
	"github.com/Akashx1550/TrendMart-backend/repository"
)

// --- In-memory user store ---

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	u, ok := r.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	cp.CartData = models.CartData{}
	for k, v := range u.CartData {
		cp.CartData[k] = v
	}
	return &cp, nil
}

func (r *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) IncrementCartSlot(_ context.Context, userID string, slot int) error {
	return r.adjust(userID, slot, 1)
}

func (r *memoryUserRepo) DecrementCartSlot(_ context.Context, userID string, slot int) error {
	return r.adjust(userID, slot, -1)
}

func (r *memoryUserRepo) adjust(userID string, slot, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	u, ok := r.users[oid]
	if !ok {
		return repository.ErrNotFound
	}
	key := models.SlotKey(slot)
	if delta < 0 && u.CartData[key] <= 0 {
		return nil
	}
	u.CartData[key] += delta
	return nil
}

// --- In-memory product store ---

type memoryProductRepo struct {
	mu        sync.Mutex
	products  []models.Product
	seq       int64
	err       error
	createErr error
}

func (r *memoryProductRepo) FindAll(_ context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return append([]models.Product{}, r.products...), nil
}

func (r *memoryProductRepo) FindByCategory(_ context.Context, category string) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Product{}
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryProductRepo) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.products = append(r.products, *product)
	return nil
}

func (r *memoryProductRepo) DeleteByID(_ context.Context, id int64) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memoryProductRepo) NextID(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.seq++
	return r.seq, nil
}

func (r *memoryProductRepo) SyncSequence(_ context.Context) error { return nil }

// --- Mocks ---

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, eventType string, data interface{}) {
	m.Called(ctx, eventType, data)
}

type MockSNSPublisher struct{ mock.Mock }

func (m *MockSNSPublisher) Publish(ctx context.Context, topicArn, eventType string, message []byte) error {
	args := m.Called(ctx, topicArn, eventType, message)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) IncrementCartSlot(ctx context.Context, userID string, slot int) error {
	return m.Called(ctx, userID, slot).Error(0)
}

func (m *MockUserRepository) DecrementCartSlot(ctx context.Context, userID string, slot int) error {
	return m.Called(ctx, userID, slot).Error(0)
}
