package users

// User represents a person tracked by the roster
type User struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Title    string `json:"title"`
}

// CreateUserRequest represents the request to create a user.
// Any identifier supplied by the caller is ignored; the store assigns one.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
	Title    string `json:"title" binding:"required"`
}

// UpdateUserRequest represents the request to update a user's fields.
// The identifier is never part of the update set.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
	Title    string `json:"title" binding:"required"`
}

// UpdateOutcome reports how many documents an update touched,
// distinguishing "found and written" from "not found"
type UpdateOutcome struct {
	MatchedCount int64 `json:"matched_count"`
}

// DeleteOutcome reports how many documents a delete removed
type DeleteOutcome struct {
	DeletedCount int64 `json:"deleted_count"`
}
