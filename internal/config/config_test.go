package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv сбрасывает переменные, которые могут прийти из окружения разработчика
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "STORAGE", "CORS_ORIGINS", "DB_DRIVER", "DB_DSN", "DB_HOST",
		"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT", "DB_SSLMODE", "MONGO_URL",
		"MONGO_DATABASE", "TRANSACTIONS", "BCRYPT_COST", "CONFIG_FILE",
		"GRAPHQL_CONCURRENCY", "GRAPHQL_COMPLEXITY_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, StorageMemory, cfg.Storage)
		assert.Equal(t, "GraphQL", cfg.MongoDatabase)
		assert.False(t, cfg.Transactions)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, 16, cfg.Concurrency)
		assert.Equal(t, 200, cfg.ComplexityLimit)
		assert.True(t, cfg.IsDev())
	})

	t.Run("Executor limits", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GRAPHQL_CONCURRENCY", "4")
		t.Setenv("GRAPHQL_COMPLEXITY_LIMIT", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, 0, cfg.ComplexityLimit)

		clearEnv(t)
		t.Setenv("GRAPHQL_CONCURRENCY", "0")
		_, err = Load()
		assert.Error(t, err)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE", "mongo")
		t.Setenv("TRANSACTIONS", "true")
		t.Setenv("BCRYPT_COST", "4")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, StorageMongo, cfg.Storage)
		assert.True(t, cfg.Transactions)
		assert.Equal(t, 4, cfg.BcryptCost)
	})

	t.Run("Malformed values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRANSACTIONS", "maybe")
		_, err := Load()
		assert.Error(t, err)

		clearEnv(t)
		t.Setenv("BCRYPT_COST", "ten")
		_, err = Load()
		assert.Error(t, err)

		clearEnv(t)
		t.Setenv("STORAGE", "redis")
		_, err = Load()
		assert.Error(t, err)
	})

	t.Run("YAML overlay", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9000")

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("storage: postgres\ndb_driver: sqlite3\ndb_name: graph\ntransactions: true\n"), 0o600))
		t.Setenv("CONFIG_FILE", path)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port, "keys missing in the file keep env values")
		assert.Equal(t, StoragePostgres, cfg.Storage)
		assert.True(t, cfg.Transactions)
		assert.Equal(t, "graph.db", cfg.DSN())
	})

	t.Run("Missing YAML file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestConfig_DSN(t *testing.T) {
	t.Run("Assembled from parts", func(t *testing.T) {
		cfg := &Config{
			DBDriver: "postgres", DBHost: "db", DBUser: "u", DBPassword: "p",
			DBName: "n", DBPort: "5432", DBSSLMode: "disable",
		}
		assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", cfg.DSN())
	})

	t.Run("Explicit DSN wins", func(t *testing.T) {
		cfg := &Config{DBDriver: "postgres", DBDSN: "postgres://x", DBHost: "db"}
		assert.Equal(t, "postgres://x", cfg.DSN())
	})
}

func TestConfig_Origins(t *testing.T) {
	cfg := &Config{CORSOrigins: "http://a.test, http://b.test,,"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}
