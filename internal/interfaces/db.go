package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// DBClient defines the connection lifecycle of the document database.
// A client is acquired for one command and released when it finishes.
type DBClient interface {
	// Connect establishes a connection to the database.
	// It takes a context for cancellation and timeouts, and a DSN (Data Source Name) string.
	// Returns an error if the connection fails.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	Disconnect(ctx context.Context) error

	// Collection returns the handle of the configured collection.
	// It must only be called after a successful Connect.
	Collection() *mongo.Collection

	// Ping checks the health of the database connection.
	Ping(ctx context.Context) error
}
