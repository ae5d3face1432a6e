package users

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// fakeStore is an in-memory UserStore used by service and handler tests.
// It assigns UUID identifiers and applies the same typed-error contract
// the real backends do.
type fakeStore struct {
	mu    sync.Mutex
	users map[string]User

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]User)}
}

func (f *fakeStore) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	user := User{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Location: req.Location,
		Title:    req.Title,
	}
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeStore) GetUser(ctx context.Context, id string) (*User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, NewInvalidUserIDError(id, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, NewUserNotFoundError(id)
	}
	return &user, nil
}

func (f *fakeStore) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*UpdateOutcome, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, NewInvalidUserIDError(id, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return &UpdateOutcome{MatchedCount: 0}, nil
	}

	user.Name = req.Name
	user.Location = req.Location
	user.Title = req.Title
	f.users[id] = user
	return &UpdateOutcome{MatchedCount: 1}, nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id string) (*DeleteOutcome, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, NewInvalidUserIDError(id, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return &DeleteOutcome{DeletedCount: 0}, nil
	}
	delete(f.users, id)
	return &DeleteOutcome{DeletedCount: 1}, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	userList := make([]User, 0, len(f.users))
	for _, user := range f.users {
		userList = append(userList, user)
	}
	return userList, nil
}

func (f *fakeStore) HealthCheck(ctx context.Context) error {
	return f.failWith
}

func (f *fakeStore) Close(ctx context.Context) error {
	return nil
}
