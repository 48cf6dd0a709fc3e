package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"net"
	"net/url"
	"rental/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresMaxIdleTime       = 5 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	conn := &Connection{
		Read:  CreatePostgresReadConn(*config),
		Write: CreatePostgresWriteConn(*config),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Int("maxRetry", config.DB.Postgres.MaxRetry).Msg("Could not connect to database")
	}

	return conn
}

// Ping checks both pools, read first.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read connection: %w", err)
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write connection: %w", err)
	}

	return nil
}

func (c *Connection) Close() {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Failed to close database connection")
		}
	}
}

// Endpoint is one side of the read/write pair.
type Endpoint struct {
	Name     string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
	Timezone string
}

// DSN renders the endpoint as a lib/pq URL. Credentials are escaped and the
// session timezone is passed through when set.
func (e Endpoint) DSN() string {
	query := url.Values{}
	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func WriteEndpoint(cfg config.Config) Endpoint {
	write := cfg.DB.Postgres.Write

	return Endpoint{
		Name:     "write",
		Host:     write.Host,
		Port:     write.Port,
		Username: write.Username,
		Password: write.Password,
		Database: cfg.DB.Postgres.Prefix + write.Name,
		SSLMode:  write.SSLMode,
		Timezone: write.Timezone,
	}
}

func ReadEndpoint(cfg config.Config) Endpoint {
	read := cfg.DB.Postgres.Read

	return Endpoint{
		Name:     "read",
		Host:     read.Host,
		Port:     read.Port,
		Username: read.Username,
		Password: read.Password,
		Database: cfg.DB.Postgres.Prefix + read.Name,
		SSLMode:  read.SSLMode,
		Timezone: read.Timezone,
	}
}

func CreatePostgresWriteConn(cfg config.Config) *sqlx.DB {
	return Connect(WriteEndpoint(cfg), cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime)
}

func CreatePostgresReadConn(cfg config.Config) *sqlx.DB {
	return Connect(ReadEndpoint(cfg), cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime)
}

// Connect dials the endpoint up to maxRetry times, waiting waitSeconds between
// attempts, and returns nil when every attempt fails.
func Connect(endpoint Endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	logCtx := log.With().
		Str("name", endpoint.Name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Database).
		Logger()

	for attempt := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", endpoint.DSN())
		if err == nil {
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxIdleTime(postgresMaxIdleTime)

			logCtx.Info().Msg("Connected to database")

			return sqlDB
		}

		logCtx.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	return nil
}
