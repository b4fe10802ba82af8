package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/pkg/logger"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"

	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	Port    string
	GinMode string

	StorageDriver string
	SQLitePath    string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string

	SessionBackend string
	RedisAddr      string
	RedisPort      string
	RedisPassword  string

	JWTSecret     string
	TokenTTL      time.Duration
	SessionTTL    time.Duration
	SessionCookie string
	CookieSecure  bool
	CORSOrigins   []string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
	SeedDemoData  bool

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
	LogConsole    bool
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func (c *Config) RedisFullAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisAddr, c.RedisPort)
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

// LoggerConfig maps the LOG_* settings onto the process logger and tags
// every entry with the backends in use.
func (c *Config) LoggerConfig() *logger.Config {
	return &logger.Config{
		Level:      c.LogLevel,
		Filename:   c.LogFilename,
		MaxSize:    c.LogMaxSize,
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAge,
		Compress:   c.LogCompress,
		Console:    c.LogConsole,
		Fields: map[string]string{
			"service":  "laboratorio",
			"storage":  c.StorageDriver,
			"sessions": c.SessionBackend,
		},
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.SessionBackend {
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.JWTSecret == "" && c.GinMode != "debug" {
		return fmt.Errorf("JWT_SECRET is required when GIN_MODE is %q", c.GinMode)
	}
	if c.TokenTTL <= 0 || c.SessionTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL and SESSION_TTL must be positive")
	}
	return nil
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &Config{
		Port:    getEnv("PORT", "8888"),
		GinMode: getEnv("GIN_MODE", "debug"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		SQLitePath:    getEnv("SQLITE_PATH", "laboratorio.db"),
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getEnv("DB_PORT", "5432"),

		SessionBackend: strings.ToLower(getEnv("SESSION_BACKEND", SessionMemory)),
		RedisAddr:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		SessionCookie: getEnv("SESSION_COOKIE", "lab_session"),
		CookieSecure:  getEnvAsBool("COOKIE_SECURE", false),
		CORSOrigins:   getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:8888"}),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SeedDemoData:  getEnvAsBool("SEED_DEMO_DATA", true),

		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFilename:   getEnv("LOG_FILENAME", "logs/app.log"),
		LogMaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvAsInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvAsBool("LOG_COMPRESS", true),
		LogConsole:    getEnvAsBool("LOG_CONSOLE", true),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
