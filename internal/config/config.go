package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinTokenSecretLength is the minimum HS256 secret size in bytes
const MinTokenSecretLength = 32

type Config struct {
	Database     DatabaseConfig
	Token        TokenConfig
	Server       ServerConfig
	CORS         CORSConfig
	Log          LogConfig
	Admin        AdminConfig
	Consultation ConsultationConfig
}

type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
	AutoMigrate bool
}

type TokenConfig struct {
	Secret string
	Expiry time.Duration
}

type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AdminConfig holds the credentials used by the create-admin command
type AdminConfig struct {
	Username string
	Email    string
	Password string
	FullName string
}

type ConsultationConfig struct {
	VideoBaseURL string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "mysql"),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "3306"),
			User:        getEnv("DB_USER", "root"),
			Password:    getEnv("DB_PASSWORD", ""),
			Database:    getEnv("DB_NAME", "hospital_management"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: parseBool(getEnv("DB_AUTO_MIGRATE", "false")),
		},
		Token: TokenConfig{
			Secret: getEnv("TOKEN_SECRET", ""),
			Expiry: parseDuration(getEnv("TOKEN_EXPIRY", "8h"), 8*time.Hour),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			GinMode:         getEnv("GIN_MODE", "debug"),
			ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Email:    getEnv("ADMIN_EMAIL", "admin@hospital.local"),
			Password: getEnv("ADMIN_PASSWORD", ""),
			FullName: getEnv("ADMIN_FULL_NAME", "System Administrator"),
		},
		Consultation: ConsultationConfig{
			VideoBaseURL: strings.TrimRight(getEnv("VIDEO_BASE_URL", "https://meet.hospital.local"), "/"),
		},
	}

	return config
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be mysql or postgres, got %q", c.Database.Driver))
	}

	if len(c.Token.Secret) < MinTokenSecretLength {
		errs = append(errs, fmt.Errorf("TOKEN_SECRET must be at least %d bytes", MinTokenSecretLength))
	}

	if c.Token.Expiry <= 0 {
		errs = append(errs, errors.New("TOKEN_EXPIRY must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using %s\n", s, fallback)
		return fallback
	}
	return duration
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
