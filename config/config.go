package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"
	ENV_PATH    = "./res/config.env"
	ENV_PREFIX  = "BOOKSTORE"

	DefaultServiceName    = "bookstore"
	DefaultLogLevel       = "info"
	DefaultDSN            = "mongodb://localhost:27017/plp_bookstore"
	DefaultDatabaseName   = "plp_bookstore"
	DefaultCollectionName = "books"
	DefaultTimeout        = 10 * time.Second
	DefaultMetricsJob     = "bookstore"
)

// ServiceConfig holds the configuration for the command line tool.
type ServiceConfig struct {
	ServiceName string        `yaml:"service_name" envconfig:"BOOKSTORE_SERVICE_NAME" validate:"required"`
	LogLevel    string        `yaml:"loglevel" envconfig:"BOOKSTORE_LOGLEVEL" validate:"required,oneof=debug info warn error fatal panic"`
	Database    Database      `yaml:"database" validate:"required"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

type Database struct {
	MongoDB MongoDBConfig `yaml:"mongodb_config" validate:"required"`
}

// MongoDBConfig holds the connection target and the collection the commands run against.
type MongoDBConfig struct {
	DSN          string             `yaml:"dsn" envconfig:"BOOKSTORE_MONGODB_DSN" validate:"required,startswith=mongodb"`
	DatabaseName string             `yaml:"database_name" envconfig:"BOOKSTORE_MONGODB_DATABASE_NAME" validate:"required"`
	Collection   string             `yaml:"collection" envconfig:"BOOKSTORE_MONGODB_COLLECTION" validate:"required"`
	Timeout      time.Duration      `yaml:"timeout" envconfig:"BOOKSTORE_MONGODB_TIMEOUT" validate:"gte=0"`
	Options      MongoServerOptions `yaml:"mongo_server_options"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version" envconfig:"BOOKSTORE_MONGODB_API_VERSION"`
	SetStrict            bool   `yaml:"set_strict" envconfig:"BOOKSTORE_MONGODB_SET_STRICT"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors" envconfig:"BOOKSTORE_MONGODB_SET_DEPRECATION_ERRORS"`
}

// MetricsConfig controls the optional Pushgateway export. An empty URL disables it.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url" envconfig:"BOOKSTORE_METRICS_PUSHGATEWAY_URL" validate:"omitempty,url"`
	Job            string `yaml:"job" envconfig:"BOOKSTORE_METRICS_JOB" validate:"required_with=PushgatewayURL"`
}

// DefaultConfig returns the built-in connection target used when no config file exists.
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{
		ServiceName: DefaultServiceName,
		LogLevel:    DefaultLogLevel,
		Database: Database{
			MongoDB: MongoDBConfig{
				DSN:          DefaultDSN,
				DatabaseName: DefaultDatabaseName,
				Collection:   DefaultCollectionName,
				Timeout:      DefaultTimeout,
			},
		},
		Metrics: MetricsConfig{
			Job: DefaultMetricsJob,
		},
	}
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// Values present in the file override the defaults; absent keys keep them.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := DefaultConfig()

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfigEnvs applies BOOKSTORE_* environment overrides on top of config.
func LoadConfigEnvs(config *ServiceConfig) error {
	return envconfig.Process(ENV_PREFIX, config)
}

// LoadConfig loads in order the defaults, the YAML file, the optional env file
// and the environment. A missing YAML or env file is not an error.
func LoadConfig(configPath, envPath string) (*ServiceConfig, error) {
	config, err := ReadLocalConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		config = DefaultConfig()
	} else if err != nil {
		return nil, fmt.Errorf("failed to load configurations from file: %w", err)
	}

	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to set environment configurations: %w", err)
	}

	if err := LoadConfigEnvs(config); err != nil {
		return nil, fmt.Errorf("failed to load configurations from environment: %w", err)
	}

	return config, nil
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	if cfg.APIVersion == "" {
		return nil
	}

	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}
