package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "userdirectory.v1.UserDirectory"

// Full method names.
const (
	CreateUserMethod = "/" + ServiceName + "/CreateUser"
	ListUsersMethod  = "/" + ServiceName + "/ListUsers"
	GetUserMethod    = "/" + ServiceName + "/GetUser"
)

// UserDirectoryServer is the server API of the user directory service.
type UserDirectoryServer interface {
	CreateUser(context.Context, *CreateUserRequest) (*User, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	GetUser(context.Context, *GetUserRequest) (*User, error)
}

// RegisterUserDirectoryServer registers srv on s.
func RegisterUserDirectoryServer(s grpc.ServiceRegistrar, srv UserDirectoryServer) {
	s.RegisterService(&UserDirectoryServiceDesc, srv)
}

// UserDirectoryServiceDesc describes the service for grpc.Server.
var UserDirectoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateUser", Handler: createUserHandler},
		{MethodName: "ListUsers", Handler: listUsersHandler},
		{MethodName: "GetUser", Handler: getUserHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "userdirectory/v1/user_directory",
}

func createUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserDirectoryServer).CreateUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CreateUserMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(UserDirectoryServer).CreateUser(ctx, req.(*CreateUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listUsersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListUsersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserDirectoryServer).ListUsers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListUsersMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(UserDirectoryServer).ListUsers(ctx, req.(*ListUsersRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserDirectoryServer).GetUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetUserMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(UserDirectoryServer).GetUser(ctx, req.(*GetUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}
