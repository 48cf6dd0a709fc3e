package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"rental/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionStepUp  Direction = "step-up"
	DirectionDrop    Direction = "drop"
	DirectionVersion Direction = "version"
)

var ErrUnknownDirection = errors.New("unknown migration direction")

func ParseDirection(value string) (Direction, error) {
	switch direction := Direction(value); direction {
	case DirectionUp, DirectionDown, DirectionStepUp, DirectionDrop, DirectionVersion:
		return direction, nil
	default:
		return "", fmt.Errorf("%w %q, use up, down, step-up, drop or version", ErrUnknownDirection, value)
	}
}

// DatabaseURL builds the migrate DSN against the write database. The optional
// prefix is prepended to the database name.
func DatabaseURL(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	query := url.Values{}
	if write.SSLMode != "" {
		query.Set("sslmode", write.SSLMode)
	}

	if cfg.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + write.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func SourceURL(cfg *config.Config) string {
	path := cfg.DB.Postgres.MigrationPath
	if path == "" {
		path = "migrations/postgres"
	}

	return "file://" + path
}

func Run(cfg *config.Config, direction Direction) error {
	mig, err := migrate.New(SourceURL(cfg), DatabaseURL(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer func() {
		if sourceErr, dbErr := mig.Close(); sourceErr != nil || dbErr != nil {
			log.Warn().AnErr("source", sourceErr).AnErr("database", dbErr).Msg("Failed to close migrate instance")
		}
	}()

	switch direction {
	case DirectionUp:
		err = mig.Up()
	case DirectionDown:
		err = mig.Steps(-1)
	case DirectionStepUp:
		err = mig.Steps(1)
	case DirectionDrop:
		err = mig.Down()
	case DirectionVersion:
		return logVersion(mig)
	default:
		return fmt.Errorf("%w %q", ErrUnknownDirection, direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", direction, err)
	}

	log.Info().Str("direction", string(direction)).Msg("Database migration finished")

	return logVersion(mig)
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("Database has no migrations applied")

		return nil
	}

	if err != nil {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migration version")

	return nil
}

func Up(cfg *config.Config) error {
	return Run(cfg, DirectionUp)
}
