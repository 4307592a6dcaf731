package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	usecase "user-directory-service/internal/usecase/user"
	pkgerrors "user-directory-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

// MockUserUsecase is a mock implementation of user.Usecase
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, req usecase.CreateUserRequest) (*usecase.CreateUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateUserResponse), args.Error(1)
}

func (m *MockUserUsecase) GetUser(ctx context.Context, req usecase.GetUserRequest) (*usecase.GetUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GetUserResponse), args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context) (*usecase.ListUsersResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ListUsersResponse), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *MockUserUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockUserUsecase)
	handler := NewUserHandler(mockUsecase, zaptest.NewLogger(t))

	r := gin.New()
	r.GET("/users", handler.ListUsers)
	r.GET("/users/:id", handler.GetUser)
	r.POST("/users/create", handler.CreateUser)
	return r, mockUsecase
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)

		mockUsecase.On("CreateUser", mock.Anything, usecase.CreateUserRequest{
			Name: "John Doe", Email: "john@example.com", Password: "secret",
		}).Return(&usecase.CreateUserResponse{ID: testID, Name: "John Doe", Email: "john@example.com"}, nil)

		body := []byte(`{"name":"John Doe","email":"john@example.com","password":"secret"}`)
		req, _ := http.NewRequest(http.MethodPost, "/users/create", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":"`+testID+`","name":"John Doe","email":"john@example.com"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "password")
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		r, mockUsecase := setupTest(t)

		req, _ := http.NewRequest(http.MethodPost, "/users/create", bytes.NewBufferString(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeError(t, w).Error)
		mockUsecase.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{
			name:       "Missing fields",
			err:        pkgerrors.NewBadRequestError("", "validation failed: Password is required"),
			wantStatus: http.StatusBadRequest,
			wantKind:   "bad_request",
			wantMsg:    "validation failed: Password is required",
		},
		{
			name:       "Email taken",
			err:        pkgerrors.NewConflictError("user", "a user with this email already exists"),
			wantStatus: http.StatusConflict,
			wantKind:   "conflict",
			wantMsg:    "a user with this email already exists",
		},
		{
			name:       "Internal",
			err:        pkgerrors.NewInternalError(errors.New("dial tcp 10.0.0.1:5432: connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantKind:   "internal_error",
			wantMsg:    "An internal error occurred",
		},
		{
			name:       "Uncategorized",
			err:        errors.New("pq: relation users does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   "internal_error",
			wantMsg:    "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mockUsecase := setupTest(t)
			mockUsecase.On("CreateUser", mock.Anything, mock.Anything).Return(nil, tt.err)

			body := []byte(`{"name":"John Doe","email":"john@example.com"}`)
			req, _ := http.NewRequest(http.MethodPost, "/users/create", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantKind, resp.Error)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestGetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: testID}).
			Return(&usecase.GetUserResponse{ID: testID, Name: "Jane", Email: "jane@example.com"}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/users/"+testID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"`+testID+`","name":"Jane","email":"jane@example.com"}`, w.Body.String())
	})

	t.Run("Invalid ID", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: "abc"}).
			Return(nil, pkgerrors.NewBadRequestError("", "invalid user ID format"))

		req, _ := http.NewRequest(http.MethodGet, "/users/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorResponse{Error: "bad_request", Message: "invalid user ID format"}, decodeError(t, w))
	})

	t.Run("Not found", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: testID}).
			Return(nil, pkgerrors.NewNotFoundError("user", "user not found"))

		req, _ := http.NewRequest(http.MethodGet, "/users/"+testID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, ErrorResponse{Error: "not_found", Message: "user not found"}, decodeError(t, w))
	})
}

func TestListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("ListUsers", mock.Anything).Return(&usecase.ListUsersResponse{
			Users: []usecase.User{
				{ID: testID, Name: "Jane", Email: "jane@example.com"},
			},
		}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":"`+testID+`","name":"Jane","email":"jane@example.com"}]`, w.Body.String())
	})

	t.Run("Empty directory", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("ListUsers", mock.Anything).Return(nil, pkgerrors.NewNotFoundError("user", "no users found"))

		req, _ := http.NewRequest(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "no users found", decodeError(t, w).Message)
	})

	t.Run("Internal", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("ListUsers", mock.Anything).Return(nil, pkgerrors.NewInternalError(errors.New("timeout")))

		req, _ := http.NewRequest(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "timeout")
	})
}
