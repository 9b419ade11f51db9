package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"roombooker/config"
)

type MigrationAction string

const (
	MigrationUp      MigrationAction = "up"
	MigrationDown    MigrationAction = "down"
	MigrationStepUp  MigrationAction = "step-up"
	MigrationDrop    MigrationAction = "drop"
	MigrationVersion MigrationAction = "version"
)

var ErrUnknownMigrationAction = errors.New("unknown migration action")

func ParseMigrationAction(raw string) (MigrationAction, error) {
	switch action := MigrationAction(raw); action {
	case MigrationUp, MigrationDown, MigrationStepUp, MigrationDrop, MigrationVersion:
		return action, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMigrationAction, raw)
	}
}

func databaseName(cfg *config.Config) string {
	return cfg.DB.Postgres.Prefix + cfg.DB.Postgres.Write.Name
}

// DatabaseURL points golang-migrate at the write node. Migrations never run
// against the read replica.
func DatabaseURL(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if cfg.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     "/" + databaseName(cfg),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func Migrate(cfg *config.Config, action MigrationAction) error {
	mig, err := migrate.New(cfg.DB.Postgres.MigrationPath, DatabaseURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	defer func() {
		srcErr, dbErr := mig.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close migrate instance")
		}
	}()

	switch action {
	case MigrationUp:
		err = mig.Up()
	case MigrationDown:
		err = mig.Steps(-1)
	case MigrationStepUp:
		err = mig.Steps(1)
	case MigrationDrop:
		err = mig.Down()
	case MigrationVersion:
		return logVersion(mig)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMigrationAction, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run %s migration: %w", action, err)
	}

	log.Info().Str("action", string(action)).Str("database", databaseName(cfg)).Msg("database migration finished")

	return nil
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("no migration applied yet")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("current migration version")

	return nil
}

func Up(cfg *config.Config) error {
	return Migrate(cfg, MigrationUp)
}
