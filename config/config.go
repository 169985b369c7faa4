package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort string
	CORSOrigin string

	MongoURI    string
	MongoDBName string

	// CassandraHosts is empty when the activity log is disabled.
	CassandraHosts string

	NotificationsServiceURL string

	JWTSecret string
	JWTTTL    time.Duration

	LogFile  string
	LogLevel logrus.Level

	AdminUsername string
	AdminPassword string
}

// Load reads envFile if it exists and then the process environment. A missing
// env file is not an error; containers usually inject variables directly.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		CORSOrigin:              getEnv("CORS_ORIGIN", "*"),
		MongoURI:                getEnv("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
		MongoDBName:             getEnv("MONGO_DB_NAME", "task_management"),
		CassandraHosts:          os.Getenv("CASS_DB"),
		NotificationsServiceURL: os.Getenv("NOTIFICATIONS_SERVICE_URL"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		LogFile:                 getEnv("LOG_FILE", "logs/tasks.log"),
		AdminUsername:           os.Getenv("ADMIN_USERNAME"),
		AdminPassword:           os.Getenv("ADMIN_PASSWORD"),
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT %q", cfg.ServerPort)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
