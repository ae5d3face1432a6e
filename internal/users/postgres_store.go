package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UUID     string `bun:"uuid,pk,type:uuid,default:gen_random_uuid()" json:"uuid"`
	Name     string `bun:"name,notnull" json:"name"`
	Location string `bun:"location,notnull" json:"location"`
	Title    string `bun:"title,notnull" json:"title"`
}

// PostgresStore implements the UserStore interface with PostgreSQL storage
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore connects to PostgreSQL, runs migrations and returns a
// store over the shared bun handle
func NewPostgresStore(ctx context.Context, dsn string, maxConnections int) (*PostgresStore, error) {
	if maxConnections <= 0 {
		maxConnections = 10
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(maxConnections)
	sqldb.SetMaxIdleConns(maxConnections / 2)
	sqldb.SetConnMaxLifetime(time.Hour)

	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, NewStorageConnectionError("ping", err)
	}

	if err := CreateTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

// CreateTables creates the users table if it does not exist
func CreateTables(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*UserSchema)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return NewStorageQueryError("create tables", err)
	}
	return nil
}

// parseUserUUID validates a caller-supplied id against the backend's
// identifier format
func parseUserUUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, NewInvalidUserIDError(id, err)
	}
	return parsed, nil
}

// CreateUser inserts a new user; PostgreSQL assigns the identifier
func (s *PostgresStore) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	schema := &UserSchema{
		Name:     req.Name,
		Location: req.Location,
		Title:    req.Title,
	}

	_, err := s.db.NewInsert().
		Model(schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, NewStorageQueryError("insert user", err)
	}

	return schemaToUser(schema), nil
}

// GetUser retrieves a user by identifier
func (s *PostgresStore) GetUser(ctx context.Context, id string) (*User, error) {
	parsed, err := parseUserUUID(id)
	if err != nil {
		return nil, err
	}

	var schema UserSchema
	err = s.db.NewSelect().
		Model(&schema).
		Where("uuid = ?", parsed.String()).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFoundError(id)
		}
		return nil, NewStorageQueryError("get user", err)
	}

	return schemaToUser(&schema), nil
}

// UpdateUser writes the mutable fields of an existing user; the identifier
// column is never touched
func (s *PostgresStore) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*UpdateOutcome, error) {
	parsed, err := parseUserUUID(id)
	if err != nil {
		return nil, err
	}

	result, err := s.db.NewUpdate().
		Model((*UserSchema)(nil)).
		Where("uuid = ?", parsed.String()).
		Set("name = ?", req.Name).
		Set("location = ?", req.Location).
		Set("title = ?", req.Title).
		Exec(ctx)
	if err != nil {
		return nil, NewStorageQueryError("update user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, NewStorageQueryError("update user", err)
	}

	return &UpdateOutcome{MatchedCount: rowsAffected}, nil
}

// DeleteUser removes the matching user row
func (s *PostgresStore) DeleteUser(ctx context.Context, id string) (*DeleteOutcome, error) {
	parsed, err := parseUserUUID(id)
	if err != nil {
		return nil, err
	}

	result, err := s.db.NewDelete().
		Model((*UserSchema)(nil)).
		Where("uuid = ?", parsed.String()).
		Exec(ctx)
	if err != nil {
		return nil, NewStorageQueryError("delete user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, NewStorageQueryError("delete user", err)
	}

	return &DeleteOutcome{DeletedCount: rowsAffected}, nil
}

// ListUsers returns every user in table order
func (s *PostgresStore) ListUsers(ctx context.Context) ([]User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Scan(ctx)
	if err != nil {
		return nil, NewStorageQueryError("list users", err)
	}

	userList := make([]User, len(schemas))
	for i := range schemas {
		userList[i] = *schemaToUser(&schemas[i])
	}

	return userList, nil
}

// HealthCheck verifies the database is reachable
func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageConnectionError("ping", err)
	}
	return nil
}

// Close releases the shared database handle
func (s *PostgresStore) Close(ctx context.Context) error {
	return s.db.Close()
}

// schemaToUser converts the table schema to the domain model
func schemaToUser(schema *UserSchema) *User {
	return &User{
		ID:       schema.UUID,
		Name:     schema.Name,
		Location: schema.Location,
		Title:    schema.Title,
	}
}
