package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Akashx1550/TrendMart-backend/models"
	awspkg "github.com/Akashx1550/TrendMart-backend/pkg/aws"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

// --- Fakes ---

type fakeAuthService struct {
	signupFn func(ctx context.Context, req models.SignupRequest) (string, error)
	loginFn  func(ctx context.Context, email, password string) (string, error)
}

func (f *fakeAuthService) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	return f.signupFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return f.loginFn(ctx, email, password)
}

type cartCall struct {
	op     string
	userID string
	slot   int
}

type fakeCartService struct {
	calls []cartCall
	err   error
	cart  models.CartData
}

func (f *fakeCartService) AddItem(_ context.Context, userID string, slot int) error {
	f.calls = append(f.calls, cartCall{"add", userID, slot})
	return f.err
}

func (f *fakeCartService) RemoveItem(_ context.Context, userID string, slot int) error {
	f.calls = append(f.calls, cartCall{"remove", userID, slot})
	return f.err
}

func (f *fakeCartService) GetCart(_ context.Context, userID string) (models.CartData, error) {
	f.calls = append(f.calls, cartCall{"get", userID, -1})
	return f.cart, f.err
}

type fakeProductService struct {
	products      []models.Product
	err           error
	allCalls      int
	added         []models.AddProductRequest
	removedID     int64
	removedName   string
	relatedCalled string
	onLoad        func()
}

func (f *fakeProductService) AddProduct(_ context.Context, req models.AddProductRequest) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.added = append(f.added, req)
	return &models.Product{ID: int64(len(f.added)), Name: req.Name, Category: req.Category}, nil
}

func (f *fakeProductService) RemoveProduct(_ context.Context, id int64, name string) (string, error) {
	f.removedID, f.removedName = id, name
	return name, f.err
}

func (f *fakeProductService) AllProducts(context.Context) ([]models.Product, error) {
	f.allCalls++
	if f.onLoad != nil {
		f.onLoad()
	}
	return f.products, f.err
}

func (f *fakeProductService) NewCollections(context.Context) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeProductService) PopularInWomen(context.Context) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeProductService) RelatedProducts(_ context.Context, category string) ([]models.Product, error) {
	f.relatedCalled = category
	return f.products, f.err
}

type fakeImageService struct {
	url        string
	err        error
	gotName    string
	gotType    string
	gotSize    int64
	gotBody    []byte
	object     *awspkg.Object
	openedName string
}

func (f *fakeImageService) Upload(_ context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	f.gotName, f.gotType, f.gotSize = filename, contentType, size
	f.gotBody, _ = io.ReadAll(body)
	return f.url, f.err
}

func (f *fakeImageService) Open(_ context.Context, name string) (*awspkg.Object, error) {
	f.openedName = name
	if f.err != nil {
		return nil, f.err
	}
	return f.object, nil
}

// staticVerifier accepts exactly one token.
type staticVerifier struct {
	token  string
	userID string
}

func (v staticVerifier) Verify(token string) (string, error) {
	if token != v.token {
		return "", errors.New("bad token")
	}
	return v.userID, nil
}

// --- Helpers ---

func newTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: "localhost:0",
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
		MaxRetries: -1,
	})
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
