package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-directory-service/internal/domain/user"
)

// projection is the column set returned by every read. The password hash is
// stored but never selected.
var projection = []string{"id", "name", "email"}

// UserRepoPG implements the Repository interface using GORM. It runs against
// PostgreSQL in production and SQLite in tests.
type UserRepoPG struct {
	db    *gorm.DB         // GORM database connection
	log   *zap.Logger      // Structured logger for database operations
	newID user.IDGenerator // Identifier source for inserted rows
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger, newID user.IDGenerator) *UserRepoPG {
	return &UserRepoPG{db: db, log: log, newID: newID}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	Name     string `gorm:"not null"`
	Email    string `gorm:"not null;unique"`
	Password string `gorm:"column:password;not null"` // bcrypt hash
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() *user.User {
	return &user.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
	}
}

// Insert stores a new user with a freshly generated identifier. A duplicate
// email is reported as user.ErrEmailTaken.
func (r *UserRepoPG) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:       r.newID(),
		Name:     u.Name,
		Email:    u.Email,
		Password: u.PasswordHash,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			r.log.Warn("unique violation on user insert", zap.String("email", u.Email))
			return nil, fmt.Errorf("failed to create user: %w", user.ErrEmailTaken)
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.String("id", model.ID))
	return model.toDomain(), nil
}

// FindByID retrieves a user by identifier without the password hash.
func (r *UserRepoPG) FindByID(ctx context.Context, id string) (*user.User, error) {
	var model UserSchema
	err := r.db.WithContext(ctx).
		Select(projection).
		Where("id = ?", id).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.String("id", id))
			return nil, fmt.Errorf("id=%s: %w", id, user.ErrUserNotFound)
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.toDomain(), nil
}

// FindByEmail retrieves a user by email. A missing user yields (nil, nil).
func (r *UserRepoPG) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	err := r.db.WithContext(ctx).
		Select(projection).
		Where("email = ?", email).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toDomain(), nil
}

// FindAll retrieves every user without password hashes.
func (r *UserRepoPG) FindAll(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Select(projection).Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *model.toDomain()
	}

	return users, nil
}

// Ping checks that the database answers.
func (r *UserRepoPG) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
