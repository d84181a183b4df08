package store

import (
	"fmt"
	"time"
)

// Config holds database connection configuration.
type Config struct {
	// Driver selects the backend: "sqlite" or "postgres".
	Driver string `yaml:"driver" env:"DELVE_DB_DRIVER"`

	SQLitePath string `yaml:"sqlite_path" env:"DELVE_SQLITE_PATH"`

	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection and pool settings.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"DELVE_PG_HOST"`
	Port     int    `yaml:"port" env:"DELVE_PG_PORT"`
	User     string `yaml:"user" env:"DELVE_PG_USER"`
	Password string `yaml:"password" env:"DELVE_PG_PASSWORD"`
	Database string `yaml:"database" env:"DELVE_PG_DATABASE"`
	SSLMode  string `yaml:"sslmode" env:"DELVE_PG_SSLMODE"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DefaultConfig returns an SQLite config storing runs at sqlitePath.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     string(DialectSQLite),
		SQLitePath: sqlitePath,
		Postgres:   DefaultPostgresConfig(),
	}
}

// DefaultPostgresConfig returns PostgresConfig with recommended pool settings.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Validate checks that the selected driver has what it needs.
func (c Config) Validate() error {
	switch DialectType(c.Driver) {
	case DialectSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite driver")
		}
	case DialectPostgres:
		if c.Postgres.Host == "" || c.Postgres.Database == "" {
			return fmt.Errorf("postgres host and database are required")
		}
		if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
			return fmt.Errorf("invalid postgres port: %d", c.Postgres.Port)
		}
	default:
		return fmt.Errorf("unknown database driver %q (must be sqlite or postgres)", c.Driver)
	}
	return nil
}

// DSN returns the data source name for sql.Open.
func (c Config) DSN() string {
	if DialectType(c.Driver) != DialectPostgres {
		return c.SQLitePath
	}
	pg := c.Postgres
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.Database, pg.SSLMode,
	)
}
