package grpc

// CreateUserRequest is the CreateUser RPC input.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetUserRequest is the GetUser RPC input.
type GetUserRequest struct {
	ID string `json:"id"`
}

// ListUsersRequest is the ListUsers RPC input. It carries no fields.
type ListUsersRequest struct{}

// User is the public projection of a directory entry.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsersResponse is the ListUsers RPC output.
type ListUsersResponse struct {
	Users []User `json:"users"`
}
