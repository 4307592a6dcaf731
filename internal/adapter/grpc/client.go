package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// UserDirectoryClient calls the user directory over a gRPC connection
// using the JSON codec.
type UserDirectoryClient struct {
	cc grpc.ClientConnInterface
}

// NewUserDirectoryClient creates a client on cc.
func NewUserDirectoryClient(cc grpc.ClientConnInterface) *UserDirectoryClient {
	return &UserDirectoryClient{cc: cc}
}

func (c *UserDirectoryClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

// CreateUser calls UserDirectory.CreateUser.
func (c *UserDirectoryClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*User, error) {
	out := new(User)
	if err := c.invoke(ctx, CreateUserMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers calls UserDirectory.ListUsers.
func (c *UserDirectoryClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	out := new(ListUsersResponse)
	if err := c.invoke(ctx, ListUsersMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser calls UserDirectory.GetUser.
func (c *UserDirectoryClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*User, error) {
	out := new(User)
	if err := c.invoke(ctx, GetUserMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
