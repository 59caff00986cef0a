package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	Storage     string `yaml:"storage"`
	CORSOrigins string `yaml:"cors_origins"`

	// SQL: DB_DSN, если задан, важнее DB_HOST/DB_USER/...
	DBDriver   string `yaml:"db_driver"`
	DBDSN      string `yaml:"db_dsn"`
	DBHost     string `yaml:"db_host"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBPort     string `yaml:"db_port"`
	DBSSLMode  string `yaml:"db_sslmode"`

	MongoURL      string `yaml:"mongo_url"`
	MongoDatabase string `yaml:"mongo_database"`

	// Transactions включает Transactor хранилища для многошаговых операций
	Transactions bool `yaml:"transactions"`
	BcryptCost   int  `yaml:"bcrypt_cost"`

	// Concurrency - сколько полей одного объекта разрешается одновременно
	Concurrency int `yaml:"concurrency"`
	// ComplexityLimit - предел сложности запроса, 0 - без ограничения
	ComplexityLimit int `yaml:"complexity_limit"`
}

// LoadEnv подгружает .env, если он есть
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found")
	}
}

// Load: .env -> переменные окружения (с умолчаниями) -> YAML-файл из CONFIG_FILE поверх
func Load() (*Config, error) {
	LoadEnv()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "dev"),
		Storage:       getEnv("STORAGE", StorageMemory),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBDSN:         getEnv("DB_DSN", ""),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "socialgraph"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		MongoURL:      getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "GraphQL"),
	}

	var err error
	if cfg.Transactions, err = getBool("TRANSACTIONS", false); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = getInt("GRAPHQL_CONCURRENCY", 16); err != nil {
		return nil, err
	}
	if cfg.ComplexityLimit, err = getInt("GRAPHQL_COMPLEXITY_LIMIT", 200); err != nil {
		return nil, err
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlay перекрывает значения теми, что заданы в YAML-файле
func (c *Config) overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StoragePostgres, StorageMongo:
	default:
		return fmt.Errorf("unknown storage type: %q", c.Storage)
	}

	if c.Storage == StoragePostgres && c.DBDriver != "postgres" && c.DBDriver != "sqlite3" {
		return fmt.Errorf("unsupported DB_DRIVER: %q", c.DBDriver)
	}
	if c.Storage == StorageMongo && c.MongoURL == "" {
		return errors.New("MONGO_URL is required for mongo storage")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("GRAPHQL_CONCURRENCY must be positive, got %d", c.Concurrency)
	}
	if c.ComplexityLimit < 0 {
		return fmt.Errorf("GRAPHQL_COMPLEXITY_LIMIT must not be negative, got %d", c.ComplexityLimit)
	}
	return nil
}

// DSN строка подключения для gorm
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	if c.DBDriver == "sqlite3" {
		return c.DBName + ".db"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}

func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("environment variable %s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s: %w", key, err)
	}
	return n, nil
}
