package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, DriverMySQL, c.DBDriver)
	assert.Equal(t, 300, c.IdempTTLSecs)
	assert.Equal(t, "@hourly", c.OverdueSweepSpec)
	assert.NoError(t, c.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", c.AppPort)
	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, "/tmp/x.db", c.SQLitePath)
	assert.Equal(t, 3, c.RedisDB)
	assert.Equal(t, 60, c.IdempTTLSecs)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort: "8080", DBDriver: DriverMySQL,
			MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d", MySQLUser: "u",
			IdempTTLSecs: 300, OverdueSweepSpec: "0 * * * *",
		}
	}
	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no port", func(c *Config) { c.AppPort = "" }},
		{"bad driver", func(c *Config) { c.DBDriver = "oracle" }},
		{"mysql host missing", func(c *Config) { c.MySQLHost = "" }},
		{"mysql port invalid", func(c *Config) { c.MySQLPort = "not-a-port" }},
		{"postgres dsn missing", func(c *Config) { c.DBDriver = DriverPostgres }},
		{"sqlite path missing", func(c *Config) { c.DBDriver = DriverSQLite; c.SQLitePath = "" }},
		{"ttl zero", func(c *Config) { c.IdempTTLSecs = 0 }},
		{"bad cron", func(c *Config) { c.OverdueSweepSpec = "every hour" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "lending"}
	assert.Equal(t, "u:p@tcp(db:3306)/lending?parseTime=true&loc=UTC&charset=utf8mb4", c.MySQLDSN())
}
