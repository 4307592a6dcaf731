package user

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID    string
	Name  string
	Email string
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID string
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	ID    string
	Name  string
	Email string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    string
	Name  string
	Email string
}
