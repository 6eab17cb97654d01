package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/dalemusser/kanbanhub/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestContext returns a context with the standard test deadline.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// SetupTestDB connects to the MongoDB instance named by
// KANBANHUB_TEST_MONGO_URI and returns a database unique to this test.
// The database is dropped and the client disconnected on cleanup.
// Tests that need storage are skipped when the variable is unset, so
// the pure-logic suites still run everywhere.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("KANBANHUB_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("KANBANHUB_TEST_MONGO_URI not set; skipping database-backed test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("mongo connect failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("mongo ping failed: %v", err)
	}

	db := client.Database(fmt.Sprintf("kanbanhub_test_%s", primitive.NewObjectID().Hex()))

	// Tests exercise the same uniqueness guarantees production relies on.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes failed: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}
