package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// userDocument represents the users collection schema in MongoDB
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Location string             `bson:"location"`
	Title    string             `bson:"title"`
}

// MongoStore implements the UserStore interface over a MongoDB collection
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store bound to the
// configured collection. The client is constructed once at startup and
// shared across all request handlers.
func NewMongoStore(ctx context.Context, uri, database, collection string, connectTimeout time.Duration) (*MongoStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo URI is required")
	}
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, NewStorageConnectionError("connect", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, NewStorageConnectionError("ping", err)
	}

	return &MongoStore{
		client: client,
		col:    client.Database(database).Collection(collection),
	}, nil
}

// parseObjectID converts a caller-supplied id string into the store's
// native identifier, surfacing malformed input as a typed error instead
// of letting the caller crash on it
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, NewInvalidUserIDError(id, err)
	}
	return oid, nil
}

// CreateUser inserts a new user and lets MongoDB assign its identifier
func (s *MongoStore) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	doc := userDocument{
		Name:     req.Name,
		Location: req.Location,
		Title:    req.Title,
	}

	result, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, NewStorageQueryError("insert user", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, NewStorageQueryError("insert user", fmt.Errorf("unexpected inserted ID type %T", result.InsertedID))
	}

	doc.ID = oid
	return documentToUser(doc), nil
}

// GetUser performs a point lookup by identifier
func (s *MongoStore) GetUser(ctx context.Context, id string) (*User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewUserNotFoundError(id)
		}
		return nil, NewStorageQueryError("get user", err)
	}

	return documentToUser(doc), nil
}

// UpdateUser writes the mutable fields of an existing user. The identifier
// is excluded from the update set; it is immutable once assigned.
func (s *MongoStore) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*UpdateOutcome, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"name":     req.Name,
		"location": req.Location,
		"title":    req.Title,
	}}

	result, err := s.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, NewStorageQueryError("update user", err)
	}

	return &UpdateOutcome{MatchedCount: result.MatchedCount}, nil
}

// DeleteUser removes the matching user document
func (s *MongoStore) DeleteUser(ctx context.Context, id string) (*DeleteOutcome, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, NewStorageQueryError("delete user", err)
	}

	return &DeleteOutcome{DeletedCount: result.DeletedCount}, nil
}

// ListUsers returns every user in the collection in store-native order
func (s *MongoStore) ListUsers(ctx context.Context) ([]User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, NewStorageQueryError("list users", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, NewStorageQueryError("list users", err)
	}

	userList := make([]User, len(docs))
	for i, doc := range docs {
		userList[i] = *documentToUser(doc)
	}

	return userList, nil
}

// HealthCheck verifies the MongoDB deployment is reachable
func (s *MongoStore) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return NewStorageConnectionError("ping", err)
	}
	return nil
}

// Close disconnects the shared client
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// documentToUser converts the collection schema to the domain model
func documentToUser(doc userDocument) *User {
	return &User{
		ID:       doc.ID.Hex(),
		Name:     doc.Name,
		Location: doc.Location,
		Title:    doc.Title,
	}
}
