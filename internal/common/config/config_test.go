package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apiserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
database:
  type: postgres
  host: db
  port: 5432
  user: tpe
  password: secret
  dbname: tpe_manager
  sslmode: disable
jwt:
  secret_key: test-secret-key-that-is-long-enough!
  duration: 1h
`)

	cfg, err := LoadConfig[APIServerConfig](path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, time.Hour, cfg.JWT.Duration)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret_key: test-secret-key-that-is-long-enough!
`)

	cfg, err := LoadConfig[APIServerConfig](path)
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Duration)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
}

func TestLoadConfig_EnvSubstitution(t *testing.T) {
	t.Setenv("TPE_DB_HOST", "db.internal")

	path := writeConfig(t, `
database:
  type: postgres
  host: ${TPE_DB_HOST:localhost}
  user: ${TPE_DB_USER:tpe_user}
`)

	cfg, err := LoadConfig[APIServerConfig](path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "tpe_user", cfg.Database.User)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig[APIServerConfig](filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	pg := DatabaseConfig{Type: "postgres", Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", pg.GetDSN())

	my := DatabaseConfig{Type: "mysql", Host: "h", Port: 3306, User: "u", Password: "p", DBName: "d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=Local", my.GetDSN())

	lite := DatabaseConfig{Type: "sqlite", DBName: filepath.Join(t.TempDir(), "data", "tpe.db")}
	assert.Equal(t, lite.DBName, lite.GetDSN())

	unknown := DatabaseConfig{Type: "oracle"}
	assert.Empty(t, unknown.GetDSN())
}
