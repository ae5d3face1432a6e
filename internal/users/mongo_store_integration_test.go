package users

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestMongoStoreIntegration exercises the store against a real MongoDB
// deployment and skips when none is reachable (CI/local development
// flexibility)
func TestMongoStoreIntegration(t *testing.T) {
	ctx := context.Background()

	uri := os.Getenv("ROSTER_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	store, err := NewMongoStore(ctx, uri, "rosterTestDB", "users_integration", 3*time.Second)
	if err != nil {
		t.Skipf("MongoDB not available, skipping integration test: %v", err)
		return
	}

	t.Cleanup(func() {
		_ = store.col.Drop(ctx)
		_ = store.Close(ctx)
	})

	t.Run("CreateThenGetRoundTrip", func(t *testing.T) {
		created, err := store.CreateUser(ctx, &CreateUserRequest{
			Name:     "John Doe",
			Location: "New York",
			Title:    "Software Engineer",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		fetched, err := store.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
	})

	t.Run("MalformedID", func(t *testing.T) {
		_, err := store.GetUser(ctx, "short")
		assert.True(t, IsInvalidID(err))

		_, err = store.UpdateUser(ctx, "short", &UpdateUserRequest{Name: "x", Location: "y", Title: "z"})
		assert.True(t, IsInvalidID(err))

		_, err = store.DeleteUser(ctx, "short")
		assert.True(t, IsInvalidID(err))
	})

	t.Run("UnknownID", func(t *testing.T) {
		unknown := primitive.NewObjectID().Hex()

		_, err := store.GetUser(ctx, unknown)
		assert.True(t, IsNotFound(err))

		outcome, err := store.UpdateUser(ctx, unknown, &UpdateUserRequest{Name: "x", Location: "y", Title: "z"})
		require.NoError(t, err)
		assert.Zero(t, outcome.MatchedCount)

		deleted, err := store.DeleteUser(ctx, unknown)
		require.NoError(t, err)
		assert.Zero(t, deleted.DeletedCount)
	})

	t.Run("UpdateKeepsIdentifier", func(t *testing.T) {
		created, err := store.CreateUser(ctx, &CreateUserRequest{
			Name:     "A",
			Location: "B",
			Title:    "C",
		})
		require.NoError(t, err)

		outcome, err := store.UpdateUser(ctx, created.ID, &UpdateUserRequest{
			Name:     "A2",
			Location: "B",
			Title:    "C",
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, outcome.MatchedCount)

		fetched, err := store.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "A2", fetched.Name)
	})

	t.Run("ListReflectsCreatesAndDeletes", func(t *testing.T) {
		before, err := store.ListUsers(ctx)
		require.NoError(t, err)

		created, err := store.CreateUser(ctx, &CreateUserRequest{
			Name:     "transient",
			Location: "nowhere",
			Title:    "nobody",
		})
		require.NoError(t, err)

		after, err := store.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before)+1)

		_, err = store.DeleteUser(ctx, created.ID)
		require.NoError(t, err)

		final, err := store.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, final, len(before))
		for _, user := range final {
			assert.NotEqual(t, created.ID, user.ID)
		}
	})

	t.Run("HealthCheck", func(t *testing.T) {
		assert.NoError(t, store.HealthCheck(ctx))
	})
}
