package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/bookstore/config"
	"github.com/haguru/bookstore/internal/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// One command runs per process, so a tiny pool is enough.
	MAXPOOLSIZE = 2
)

// MongoDBClient implements the interfaces.DBClient interface for MongoDB operations.
type MongoDBClient struct {
	ServerOpts     *options.ServerAPIOptions
	client         *mongo.Client
	db             *mongo.Database
	databaseName   string
	collectionName string
	timeout        time.Duration
	logger         interfaces.Logger
}

// NewMongoDB returns a interface for db client and error if it occurs
func NewMongoDB(dbConfig *config.MongoDBConfig, logger interfaces.Logger) (interfaces.DBClient, error) {
	if dbConfig == nil {
		return nil, fmt.Errorf("MongoDBClient: config cannot be nil")
	}
	if dbConfig.Collection == "" {
		return nil, fmt.Errorf("MongoDBClient: Collection name cannot be empty")
	}

	db := &MongoDBClient{
		timeout:        dbConfig.Timeout,
		ServerOpts:     config.BuildServerAPIOptions(dbConfig.Options),
		databaseName:   dbConfig.DatabaseName,
		collectionName: dbConfig.Collection,
		logger:         logger,
	}

	return db, nil
}

// Connect establishes a connection to the MongoDB database using the provided DSN (Data Source Name).
// The database comes from the configured name, or from the DSN path when none is configured.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	if err := validateDSN(dsn); err != nil {
		return err
	}

	databaseName := m.databaseName
	if databaseName == "" {
		var err error
		databaseName, err = getDBNameFromMongoDSN(dsn)
		if err != nil {
			return fmt.Errorf("MongoDBClient: Failed to extract database name from datasource name(dsn): %w", err)
		}
	}

	// Set a timeout for the connection
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	clientOptions := options.Client().ApplyURI(dsn)

	// Set the server API options if provided
	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	m.logger.Debug("MongoDBClient: Connecting", "host", redactDSN(dsn), "database", databaseName)

	var err error
	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to create client: %w", err)
	}

	// Check if the connection is successful by pinging the server
	if err = m.Ping(ctx); err != nil {
		_ = m.client.Disconnect(context.Background())
		m.client = nil
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %w", err)
	}
	m.logger.Debug("MongoDBClient: Connected to MongoDB server successfully")

	m.db = m.client.Database(databaseName)
	return nil
}

// Disconnect closes the connection to the MongoDB database.
// It checks if the client is not nil before attempting to disconnect.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	m.logger.Debug("MongoDBClient: Disconnecting")
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}

// Collection returns the configured collection of the connected database.
func (m *MongoDBClient) Collection() *mongo.Collection {
	if m.db == nil {
		return nil
	}
	return m.db.Collection(m.collectionName)
}

// Ping verifies the MongoDB connection health using a ping command.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("MongoDBClient: not connected")
	}
	return m.client.Ping(ctx, readpref.Primary())
}

func validateDSN(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}
	return nil
}

// getDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func getDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("no database name found in MongoDB DSN path: %s", redactDSN(dsn))
	}

	// If the path contains additional segments (e.g., /db/collection), use only the first as the database name.
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}

	return dbName, nil
}

// redactDSN drops credentials so the DSN can be logged.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "<unparseable dsn>"
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}
