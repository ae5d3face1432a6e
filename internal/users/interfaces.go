package users

import (
	"context"
)

// UserStore defines the interface for user storage operations.
// Implementations share a single connection handle across all callers;
// the underlying driver is responsible for connection-pool safety.
type UserStore interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*UpdateOutcome, error)
	DeleteUser(ctx context.Context, id string) (*DeleteOutcome, error)
	ListUsers(ctx context.Context) ([]User, error)
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// UserService defines the interface for user service operations
type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]User, error)
}
