package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/user"
	apperrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/logger"
)

// Messages returned to callers. They never carry store details.
const (
	msgEmailExists  = "a user with this email already exists"
	msgInvalidID    = "invalid user ID format"
	msgUserNotFound = "user not found"
	msgNoUsersFound = "no users found"
	resourceUser    = "user"
)

// Repository defines the interface for user data access operations.
// Implementations report a missing record from FindByID with domain.ErrUserNotFound,
// a missing record from FindByEmail with (nil, nil), and a uniqueness violation
// from Insert with domain.ErrEmailTaken.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error) // Lookup for duplicate detection
	FindByID(ctx context.Context, id string) (*domain.User, error)       // Projected lookup by identifier
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)    // Insert; the store assigns the ID
	FindAll(ctx context.Context) ([]domain.User, error)                  // Projected listing of every user
}

// PasswordHasher computes one-way hashes of plaintext passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UserUsecase implements the user directory: creation with email uniqueness,
// lookup by identifier and listing. It holds no mutable state between calls.
type UserUsecase struct {
	repo     Repository
	hasher   PasswordHasher
	validID  domain.IDValidator
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new instance of UserUsecase with its collaborators.
func New(r Repository, h PasswordHasher, validID domain.IDValidator, log *zap.Logger) *UserUsecase {
	return &UserUsecase{
		repo:     r,
		hasher:   h,
		validID:  validID,
		log:      log,
		validate: validator.New(),
	}
}

// formatValidationError converts validator.ValidationErrors into a bad request error.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return apperrors.NewBadRequestError("", "validation failed: "+strings.Join(messages, ", "))
}

// CreateUser creates a new user after checking that the email is not taken.
// The pre-check is advisory; a concurrent insert of the same email is caught
// by the store's uniqueness constraint and reported as the same conflict.
func (uc *UserUsecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.PassThrough(err)
	}
	if existing != nil {
		log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewConflictError(resourceUser, msgEmailExists)
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	created, err := uc.repo.Insert(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			log.Warn("email taken by concurrent insert", zap.String("email", in.Email))
			return nil, apperrors.NewConflictError(resourceUser, msgEmailExists)
		}
		log.Error("failed to create user", zap.Error(err))
		return nil, apperrors.PassThrough(err)
	}

	log.Info("user created", zap.String("id", created.ID))
	return &CreateUserResponse{
		ID:    created.ID,
		Name:  created.Name,
		Email: created.Email,
	}, nil
}

// GetUser retrieves a user by ID. Malformed identifiers are rejected before
// the store is consulted.
func (uc *UserUsecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	if !uc.validID(in.ID) {
		log.Warn("get user validation failed", zap.String("id", in.ID), zap.String("reason", "invalid id"))
		return nil, apperrors.NewBadRequestError("", msgInvalidID)
	}

	u, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Debug("user not found", zap.String("id", in.ID))
			return nil, apperrors.NewNotFoundError(resourceUser, msgUserNotFound)
		}
		log.Error("failed to get user", zap.String("id", in.ID), zap.Error(err))
		return nil, apperrors.PassThrough(err)
	}

	return &GetUserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}

// ListUsers retrieves every user. An empty directory is reported as not found.
func (uc *UserUsecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("listing users")

	domainUsers, err := uc.repo.FindAll(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, apperrors.PassThrough(err)
	}
	if len(domainUsers) == 0 {
		log.Debug("no users found")
		return nil, apperrors.NewNotFoundError(resourceUser, msgNoUsersFound)
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			ID:    du.ID,
			Name:  du.Name,
			Email: du.Email,
		}
	}

	return &ListUsersResponse{
		Users: users,
	}, nil
}

var _ Usecase = (*UserUsecase)(nil)
