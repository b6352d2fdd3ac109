package database

const (
	// DriverSQLite selects the embedded file-backed SQLite store.
	DriverSQLite = "sqlite"
	// DriverPostgres selects a PostgreSQL server.
	DriverPostgres = "postgres"
)

// Config holds database connection settings shared across bots.
// Driver defaults to sqlite; Host/Port/User/Password/SSLMode are only
// consulted when Driver is postgres.
type Config struct {
	Driver         string `yaml:"driver" envconfig:"DB_DRIVER"`
	Path           string `yaml:"path" envconfig:"DB_PATH"`
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// ResolvedDriver normalizes the configured driver, defaulting to sqlite.
func (c Config) ResolvedDriver() string {
	if c.Driver == DriverPostgres {
		return DriverPostgres
	}
	return DriverSQLite
}

// SQLitePath returns the database file path, defaulting next to the binary.
func (c Config) SQLitePath() string {
	if c.Path != "" {
		return c.Path
	}
	return "fleamarket.db"
}
