package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	domain "user-directory-service/internal/domain/user"
	apperrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/identifier"
	"user-directory-service/pkg/password"
)

const testID = "6f1c2b8e-3d4a-4c5b-9e7f-0a1b2c3d4e5f"

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// fakeHasher prefixes the plaintext so tests can recognize the stored value.
type fakeHasher struct {
	err error
}

func (h fakeHasher) Hash(plain string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plain, nil
}

func setupTestUsecase(t *testing.T) (*UserUsecase, *MockRepository) {
	mockRepo := new(MockRepository)
	uc := New(mockRepo, fakeHasher{}, identifier.Valid, zaptest.NewLogger(t))
	return uc, mockRepo
}

func validCreateRequest() CreateUserRequest {
	return CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	}
}

// ==================== CREATE USER TESTS ====================

func TestCreateUser_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()
	req := validCreateRequest()

	mockRepo.On("FindByEmail", ctx, req.Email).Return(nil, nil)
	mockRepo.On("Insert", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "" && u.Name == req.Name && u.Email == req.Email && u.PasswordHash == "hashed:secret123"
	})).Return(&domain.User{ID: testID, Name: req.Name, Email: req.Email}, nil)

	resp, err := uc.CreateUser(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, &CreateUserResponse{ID: testID, Name: "Alice", Email: "alice@example.com"}, resp)
	assert.True(t, identifier.Valid(resp.ID))

	mockRepo.AssertExpectations(t)
}

func TestCreateUser_LongPassword(t *testing.T) {
	hasher, err := password.NewHasher(password.DefaultCost)
	require.NoError(t, err)
	mockRepo := new(MockRepository)
	uc := New(mockRepo, hasher, identifier.Valid, zaptest.NewLogger(t))
	ctx := context.Background()
	req := CreateUserRequest{Name: "A", Email: "a@x.io", Password: strings.Repeat("p", 73)}

	var stored string
	mockRepo.On("FindByEmail", ctx, req.Email).Return(nil, nil)
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.User).PasswordHash }).
		Return(&domain.User{ID: testID, Name: req.Name, Email: req.Email}, nil)

	resp, err := uc.CreateUser(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, testID, resp.ID)
	assert.True(t, hasher.Compare(stored, req.Password))
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_ValidationError_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *CreateUserRequest)
		message string
	}{
		{name: "name", mutate: func(r *CreateUserRequest) { r.Name = "" }, message: "Name is required"},
		{name: "email", mutate: func(r *CreateUserRequest) { r.Email = "" }, message: "Email is required"},
		{name: "password", mutate: func(r *CreateUserRequest) { r.Password = "" }, message: "Password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, mockRepo := setupTestUsecase(t)
			req := validCreateRequest()
			tt.mutate(&req)

			resp, err := uc.CreateUser(context.Background(), req)

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
			assert.Contains(t, err.Error(), tt.message)
			mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
			mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUser_ValidationError_MultipleErrors(t *testing.T) {
	uc, _ := setupTestUsecase(t)

	resp, err := uc.CreateUser(context.Background(), CreateUserRequest{})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "Name is required")
	assert.Contains(t, err.Error(), "Email is required")
	assert.Contains(t, err.Error(), "Password is required")
}

func TestCreateUser_EmailAlreadyExists(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()
	req := validCreateRequest()

	existingUser := &domain.User{ID: testID, Name: "Existing User", Email: req.Email}
	mockRepo.On("FindByEmail", ctx, req.Email).Return(existingUser, nil)

	resp, err := uc.CreateUser(ctx, req)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "a user with this email already exists", err.Error())

	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_ConcurrentInsertMapsToConflict(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()
	req := validCreateRequest()

	mockRepo.On("FindByEmail", ctx, req.Email).Return(nil, nil)
	mockRepo.On("Insert", ctx, mock.Anything).
		Return(nil, fmt.Errorf("failed to create user: %w", domain.ErrEmailTaken))

	resp, err := uc.CreateUser(ctx, req)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "a user with this email already exists", err.Error())
	assert.NotContains(t, err.Error(), "email already taken")
}

func TestCreateUser_LookupFailureIsInternal(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()
	req := validCreateRequest()

	mockRepo.On("FindByEmail", ctx, req.Email).Return(nil, errors.New("connection reset by peer"))

	resp, err := uc.CreateUser(ctx, req)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	assert.NotContains(t, err.Error(), "connection reset")
}

func TestCreateUser_InsertFailureIsInternal(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()
	req := validCreateRequest()

	mockRepo.On("FindByEmail", ctx, req.Email).Return(nil, nil)
	mockRepo.On("Insert", ctx, mock.Anything).Return(nil, errors.New(`pq: relation "users" does not exist`))

	_, err := uc.CreateUser(ctx, req)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	assert.NotContains(t, err.Error(), "relation")
}

func TestCreateUser_HashFailureIsInternal(t *testing.T) {
	mockRepo := new(MockRepository)
	uc := New(mockRepo, fakeHasher{err: errors.New("password too long")}, identifier.Valid, zaptest.NewLogger(t))
	ctx := context.Background()
	req := validCreateRequest()

	mockRepo.On("FindByEmail", ctx, req.Email).Return(nil, nil)

	_, err := uc.CreateUser(ctx, req)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateUser_NeverLogsPassword(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mockRepo := new(MockRepository)
	uc := New(mockRepo, fakeHasher{}, identifier.Valid, zap.New(core))
	ctx := context.Background()
	req := validCreateRequest()

	mockRepo.On("FindByEmail", ctx, req.Email).Return(nil, nil)
	mockRepo.On("Insert", ctx, mock.Anything).Return(nil, domain.ErrEmailTaken)

	_, err := uc.CreateUser(ctx, req)
	require.Error(t, err)
	require.NotZero(t, logs.Len())

	for _, entry := range logs.All() {
		assert.NotContains(t, entry.Message, req.Password)
		for key, value := range entry.ContextMap() {
			rendered := fmt.Sprint(value)
			assert.False(t, strings.Contains(rendered, req.Password), "field %q leaks the password", key)
		}
	}
}

// ==================== GET USER TESTS ====================

func TestGetUser_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	expectedUser := &domain.User{ID: testID, Name: "Alice", Email: "alice@example.com"}
	mockRepo.On("FindByID", ctx, testID).Return(expectedUser, nil)

	resp, err := uc.GetUser(ctx, GetUserRequest{ID: testID})

	require.NoError(t, err)
	assert.Equal(t, &GetUserResponse{ID: testID, Name: "Alice", Email: "alice@example.com"}, resp)

	mockRepo.AssertExpectations(t)
}

func TestGetUser_InvalidID(t *testing.T) {
	for _, id := range []string{"", "1", "not-a-uuid", "6f1c2b8e-3d4a-4c5b-9e7f-0a1b2c3d4e5z"} {
		t.Run(id, func(t *testing.T) {
			uc, mockRepo := setupTestUsecase(t)

			resp, err := uc.GetUser(context.Background(), GetUserRequest{ID: id})

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
			assert.Equal(t, "invalid user ID format", err.Error())
			mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}
}

func TestGetUser_NotFound(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, testID).Return(nil, fmt.Errorf("lookup: %w", domain.ErrUserNotFound))

	resp, err := uc.GetUser(ctx, GetUserRequest{ID: testID})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "user not found", err.Error())
}

func TestGetUser_CategorizedErrorPassesThrough(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	notFound := apperrors.NewNotFoundError("user", "user not found")
	mockRepo.On("FindByID", ctx, testID).Return(nil, notFound)

	_, err := uc.GetUser(ctx, GetUserRequest{ID: testID})

	assert.Same(t, notFound, err)
}

func TestGetUser_StoreFailureIsInternal(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, testID).Return(nil, errors.New("i/o timeout"))

	_, err := uc.GetUser(ctx, GetUserRequest{ID: testID})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

// ==================== LIST USERS TESTS ====================

func TestListUsers_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	expectedUsers := []domain.User{
		{ID: testID, Name: "Alice", Email: "alice@example.com"},
		{ID: "0b5a1f0e-7c8d-4e2f-8a9b-1c2d3e4f5a6b", Name: "Bob", Email: "bob@example.com"},
	}
	mockRepo.On("FindAll", ctx).Return(expectedUsers, nil)

	resp, err := uc.ListUsers(ctx)

	require.NoError(t, err)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, User{ID: testID, Name: "Alice", Email: "alice@example.com"}, resp.Users[0])
	assert.Equal(t, "Bob", resp.Users[1].Name)

	again, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, resp, again)

	mockRepo.AssertExpectations(t)
}

func TestListUsers_EmptyIsNotFound(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("FindAll", ctx).Return([]domain.User{}, nil)

	resp, err := uc.ListUsers(ctx)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "no users found", err.Error())
}

func TestListUsers_StoreFailureIsInternal(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("FindAll", ctx).Return(nil, errors.New("too many connections"))

	_, err := uc.ListUsers(ctx)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	assert.Equal(t, "An internal error occurred", err.Error())
}

func TestListUsers_CategorizedErrorPassesThrough(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	notFound := apperrors.NewNotFoundError("user", "no users found")
	mockRepo.On("FindAll", ctx).Return(nil, notFound)

	_, err := uc.ListUsers(ctx)

	assert.Same(t, notFound, err)
}

// ==================== VALIDATION HELPER TESTS ====================

func TestFormatValidationError(t *testing.T) {
	validate := validator.New()

	err := validate.Struct(&CreateUserRequest{Email: "alice@example.com"})
	formatted := formatValidationError(err)

	require.Error(t, formatted)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(formatted))
	assert.Contains(t, formatted.Error(), "validation failed")
	assert.Contains(t, formatted.Error(), "Name is required")
	assert.Contains(t, formatted.Error(), "Password is required")
	assert.NotContains(t, formatted.Error(), "Email")
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	originalErr := errors.New("some other error")
	formatted := formatValidationError(originalErr)

	assert.Equal(t, originalErr, formatted)
}
