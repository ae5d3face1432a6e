package users

import (
	"context"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	store UserStore
}

// NewUserService creates a new user service instance
func NewUserService(store UserStore) *UserServiceImpl {
	return &UserServiceImpl{
		store: store,
	}
}

// CreateUser creates a new user; the store assigns the identifier
func (s *UserServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if req.Name == "" || req.Location == "" || req.Title == "" {
		return nil, NewUserValidationError("", "name, location and title are required")
	}
	return s.store.CreateUser(ctx, req)
}

// GetUser retrieves a user by identifier
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, NewUserValidationError(id, "user ID is required")
	}
	return s.store.GetUser(ctx, id)
}

// UpdateUser writes the mutable fields of an existing user and returns
// the user re-read from the store. A zero matched count is surfaced as a
// not-found error rather than a silent success.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	if id == "" {
		return nil, NewUserValidationError(id, "user ID is required")
	}
	if req.Name == "" || req.Location == "" || req.Title == "" {
		return nil, NewUserValidationError(id, "name, location and title are required")
	}

	outcome, err := s.store.UpdateUser(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if outcome.MatchedCount == 0 {
		return nil, NewUserNotFoundError(id)
	}

	return s.store.GetUser(ctx, id)
}

// DeleteUser removes a user; a zero deleted count is surfaced as not-found
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return NewUserValidationError(id, "user ID is required")
	}

	outcome, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if outcome.DeletedCount == 0 {
		return NewUserNotFoundError(id)
	}

	return nil
}

// ListUsers returns all users in store-native order
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}
