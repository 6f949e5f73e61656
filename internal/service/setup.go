package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contact-console/internal/config"
	"gitlab.com/dirk.krummacker/contact-console/internal/console"
	"gitlab.com/dirk.krummacker/contact-console/internal/repository"
	"gitlab.com/dirk.krummacker/contact-console/internal/seed"
)

// Repositories bundles the storage of the console.
type Repositories struct {
	Submissions repository.SubmissionRepository
	ContactInfo repository.ContactInfoRepository

	db        *sqlx.DB
	sqlSubmit *repository.SQLSubmissions
}

// CreateDatabase opens the SQL database selected by the configuration and creates missing tables.
func CreateDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := repository.Connect(ctx, cfg.Driver(), cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenRepositories creates the repositories for the configured storage back end.
func OpenRepositories(ctx context.Context, cfg config.DatabaseConfig) (*Repositories, error) {
	if cfg.Storage == config.StorageMemory {
		return &Repositories{
			Submissions: repository.NewMemorySubmissions(),
			ContactInfo: repository.NewMemoryContactInfo(),
		}, nil
	}
	db, err := CreateDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewSQLRepositories(db)
}

// NewSQLRepositories creates the repositories on an open database. The database is closed
// together with the repositories.
func NewSQLRepositories(db *sqlx.DB) (*Repositories, error) {
	submissions, err := repository.NewSQLSubmissions(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Repositories{
		Submissions: submissions,
		ContactInfo: repository.NewSQLContactInfo(db),
		db:          db,
		sqlSubmit:   submissions,
	}, nil
}

// Close releases prepared statements and the database handle, if any.
func (r *Repositories) Close() error {
	var errs []error
	if r.sqlSubmit != nil {
		errs = append(errs, r.sqlSubmit.Close())
	}
	if r.db != nil {
		errs = append(errs, r.db.Close())
	}
	return errors.Join(errs...)
}

// Seed writes the configured seed data into the repositories.
func Seed(ctx context.Context, cfg config.SeedConfig, repos *Repositories, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	var data *seed.Data
	var err error
	if cfg.File != "" {
		data, err = seed.LoadFile(cfg.File)
	} else {
		data, err = seed.Default()
	}
	if err != nil {
		return err
	}
	created, err := seed.Apply(ctx, data, repos.Submissions, repos.ContactInfo)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("seed data applied", zap.Int("submissions_created", created), zap.String("file", cfg.File))
	return nil
}

// NewConsole creates the console state on the repositories.
func NewConsole(ctx context.Context, repos *Repositories, logger *zap.Logger) (*console.Console, error) {
	return console.New(ctx, repos.Submissions, repos.ContactInfo, console.NewLogNotifier(logger))
}
