package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Presence backend selection.
const (
	PresenceLocal = "local"
	PresenceRedis = "redis"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Realtime RealtimeConfig
}

type ServerConfig struct {
	Addr string
}

type DatabaseConfig struct {
	DSN string
}

type RedisConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret     string
	TokenDuration time.Duration
}

type RealtimeConfig struct {
	// WSPath is the path at which live connections are accepted.
	WSPath string
	// PresenceBackend is "local" for a single gateway process or "redis"
	// for a shared store visible to every gateway process.
	PresenceBackend string
	// NodeID identifies this gateway process on the cross-node relay.
	NodeID string
}

// Load reads configuration from .env.local/.env and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("PRESENCE_BACKEND")))
	if backend == "" {
		backend = PresenceLocal
	}
	if backend != PresenceLocal && backend != PresenceRedis {
		return nil, fmt.Errorf("invalid PRESENCE_BACKEND %q: want %q or %q", backend, PresenceLocal, PresenceRedis)
	}
	if backend == PresenceRedis && os.Getenv("REDIS_URL") == "" {
		return nil, fmt.Errorf("PRESENCE_BACKEND=redis requires REDIS_URL")
	}

	nodeID := strings.TrimSpace(os.Getenv("NODE_ID"))
	if nodeID == "" {
		nodeID, _ = os.Hostname()
	}

	return &Config{
		Server:   ServerConfig{Addr: ":" + port},
		Database: DatabaseConfig{DSN: os.Getenv("DATABASE_URL")},
		Redis:    RedisConfig{URL: os.Getenv("REDIS_URL")},
		Auth: AuthConfig{
			JWTSecret:     secret,
			TokenDuration: 24 * time.Hour,
		},
		Realtime: RealtimeConfig{
			WSPath:          getEnvOrDefault("WS_PATH", "/ws"),
			PresenceBackend: backend,
			NodeID:          nodeID,
		},
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
