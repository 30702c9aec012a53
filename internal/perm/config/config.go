package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI string
	Port     string
	DBName   string

	ActionTypesCollection         string
	TeamsCollection               string
	MembershipsCollection         string
	PositionPermissionsCollection string
	OverridesCollection           string
	GroupActionsCollection        string
	GroupAssignmentsCollection    string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Action registry cache
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ActionCacheTTL  time.Duration
	RegistryRefresh time.Duration

	// Cache invalidation events
	RabbitURI string

	// Service discovery (disabled when ConsulAddr is empty)
	ConsulAddr     string
	ServiceName    string
	ServiceID      string
	ServiceAddress string

	// Identity
	JWTSecret string

	// Bounded fan-out for enumeration and batch checks
	EnumerationConcurrency int
}

func LoadConfig() (*Config, error) {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg := &Config{
		MongoURI: mongoURI,
		Port:     port,
		DBName:   getEnv("DB_NAME", "perm_db"),

		ActionTypesCollection:         getEnv("COLLECTION_ACTION_TYPES", "action_types"),
		TeamsCollection:               getEnv("COLLECTION_TEAMS", "teams"),
		MembershipsCollection:         getEnv("COLLECTION_MEMBERSHIPS", "memberships"),
		PositionPermissionsCollection: getEnv("COLLECTION_POSITION_PERMISSIONS", "position_permissions"),
		OverridesCollection:           getEnv("COLLECTION_OVERRIDES", "user_permission_overrides"),
		GroupActionsCollection:        getEnv("COLLECTION_GROUP_ACTIONS", "permission_group_actions"),
		GroupAssignmentsCollection:    getEnv("COLLECTION_GROUP_ASSIGNMENTS", "user_group_assignments"),

		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PWD"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		ActionCacheTTL:  getEnvDuration("ACTION_CACHE_TTL", 5*time.Minute),
		RegistryRefresh: getEnvDuration("REGISTRY_REFRESH_INTERVAL", time.Minute),

		RabbitURI: os.Getenv("RABBITMQ_URI"),

		ConsulAddr:     os.Getenv("CONSUL_ADDR"),
		ServiceName:    getEnv("SERVICE_NAME", "permd"),
		ServiceID:      getEnv("SERVICE_ID", "permd-1"),
		ServiceAddress: getEnv("SERVICE_ADDRESS", "localhost"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		EnumerationConcurrency: getEnvInt("ENUMERATION_CONCURRENCY", 8),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.EnumerationConcurrency < 1 {
		return fmt.Errorf("ENUMERATION_CONCURRENCY must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return fallback
	}
	return val
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		d, err := time.ParseDuration(valStr)
		if err == nil {
			return d
		}
		return fallback
	}
	return time.Duration(val) * time.Second
}
