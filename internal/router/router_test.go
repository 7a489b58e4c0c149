package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cereal-api/internal/handler"
	"cereal-api/internal/model"
	"cereal-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCerealService struct {
	mock.Mock
}

func (m *mockCerealService) List(ctx context.Context, params service.ListParams) ([]model.Cereal, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Cereal), args.Error(1)
}

func (m *mockCerealService) GetByID(ctx context.Context, id int) (*model.Cereal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cereal), args.Error(1)
}

func (m *mockCerealService) CreateOrUpdate(ctx context.Context, req *model.CerealRequest) (*model.Cereal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cereal), args.Error(1)
}

func (m *mockCerealService) DeleteByName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, req *model.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func newTestRouter(cereals *mockCerealService, users *mockUserService) http.Handler {
	logger := zerolog.Nop()
	return New(
		handler.NewCerealHandler(cereals, logger),
		handler.NewUserHandler(users, logger),
		logger,
	)
}

func TestRouter_Routes(t *testing.T) {
	t.Run("health requires no backend", func(t *testing.T) {
		r := newTestRouter(new(mockCerealService), new(mockUserService))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status": "healthy"}`, w.Body.String())
	})

	t.Run("GET /cereals lists", func(t *testing.T) {
		cereals := new(mockCerealService)
		cereals.On("List", mock.Anything, service.ListParams{}).
			Return([]model.Cereal{{ID: 1, Name: "Cheerios"}}, nil)
		r := newTestRouter(cereals, new(mockUserService))

		req := httptest.NewRequest(http.MethodGet, "/cereals", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cereals.AssertExpectations(t)
	})

	t.Run("GET /cereals/{id} fetches one", func(t *testing.T) {
		cereals := new(mockCerealService)
		cereals.On("GetByID", mock.Anything, 3).
			Return(&model.Cereal{ID: 3, Name: "All-Bran"}, nil)
		r := newTestRouter(cereals, new(mockUserService))

		req := httptest.NewRequest(http.MethodGet, "/cereals/3", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cereals.AssertExpectations(t)
	})

	t.Run("DELETE /cereals/{name} deletes by name", func(t *testing.T) {
		cereals := new(mockCerealService)
		cereals.On("DeleteByName", mock.Anything, "Cheerios").Return(nil)
		r := newTestRouter(cereals, new(mockUserService))

		req := httptest.NewRequest(http.MethodDelete, "/cereals/Cheerios", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cereals.AssertExpectations(t)
	})

	t.Run("PUT /cereals is not allowed", func(t *testing.T) {
		r := newTestRouter(new(mockCerealService), new(mockUserService))

		req := httptest.NewRequest(http.MethodPut, "/cereals", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("POST /register registers", func(t *testing.T) {
		users := new(mockUserService)
		users.On("Register", mock.Anything, mock.AnythingOfType("*model.RegisterRequest")).
			Return(nil)
		r := newTestRouter(new(mockCerealService), users)

		req := httptest.NewRequest(http.MethodPost, "/register",
			strings.NewReader(`{"username":"root","password":"12345678"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		users.AssertExpectations(t)
	})

	t.Run("responses carry a request ID", func(t *testing.T) {
		r := newTestRouter(new(mockCerealService), new(mockUserService))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}
