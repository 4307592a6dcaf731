package grpc

import (
	"context"

	"go.uber.org/zap"

	"user-directory-service/internal/usecase/user"
	apperrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/logger"
)

// UserServiceServer implements the gRPC user directory service
type UserServiceServer struct {
	uc  user.Usecase
	log *zap.Logger
}

var _ UserDirectoryServer = (*UserServiceServer)(nil)

// NewUserServiceServer creates a new gRPC user service server
func NewUserServiceServer(uc user.Usecase, log *zap.Logger) *UserServiceServer {
	return &UserServiceServer{uc: uc, log: log}
}

// CreateUser handles gRPC CreateUser request
func (s *UserServiceServer) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	logger.WithContext(ctx, s.log).Info("gRPC CreateUser request", zap.String("name", req.Name), zap.String("email", req.Email))

	resp, err := s.uc.CreateUser(ctx, user.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, apperrors.PassThrough(err)
	}

	return &User{ID: resp.ID, Name: resp.Name, Email: resp.Email}, nil
}

// ListUsers handles gRPC ListUsers request
func (s *UserServiceServer) ListUsers(ctx context.Context, _ *ListUsersRequest) (*ListUsersResponse, error) {
	logger.WithContext(ctx, s.log).Info("gRPC ListUsers request")

	resp, err := s.uc.ListUsers(ctx)
	if err != nil {
		return nil, apperrors.PassThrough(err)
	}

	users := make([]User, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = User{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return &ListUsersResponse{Users: users}, nil
}

// GetUser handles gRPC GetUser request
func (s *UserServiceServer) GetUser(ctx context.Context, req *GetUserRequest) (*User, error) {
	logger.WithContext(ctx, s.log).Info("gRPC GetUser request", zap.String("id", req.ID))

	resp, err := s.uc.GetUser(ctx, user.GetUserRequest{ID: req.ID})
	if err != nil {
		return nil, apperrors.PassThrough(err)
	}

	return &User{ID: resp.ID, Name: resp.Name, Email: resp.Email}, nil
}
