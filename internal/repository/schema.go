package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemas holds the table definitions per database driver. The seq column records the insertion
// order of the submissions.
var schemas = map[string][]string{
	"mysql": {
		`CREATE TABLE IF NOT EXISTS contact_submissions (
			seq          BIGINT       NOT NULL AUTO_INCREMENT,
			id           VARCHAR(64)  NOT NULL,
			full_name    VARCHAR(200) NOT NULL,
			email        VARCHAR(320) NOT NULL,
			organization VARCHAR(200) NOT NULL DEFAULT '',
			subject      VARCHAR(200) NOT NULL,
			message      TEXT         NOT NULL,
			submitted_at DATETIME(6)  NOT NULL,
			status       VARCHAR(16)  NOT NULL DEFAULT 'new',
			PRIMARY KEY (seq),
			UNIQUE KEY uq_contact_submissions_id (id)
		)`,
		`CREATE TABLE IF NOT EXISTS contact_info (
			id             TINYINT      NOT NULL,
			address        TEXT         NOT NULL,
			phone          VARCHAR(64)  NOT NULL,
			email          VARCHAR(320) NOT NULL,
			business_hours TEXT         NOT NULL,
			website        VARCHAR(500) NOT NULL,
			facebook       VARCHAR(500) NOT NULL,
			linkedin       VARCHAR(500) NOT NULL,
			twitter        VARCHAR(500) NOT NULL,
			PRIMARY KEY (id)
		)`,
	},
	"sqlite": {
		`CREATE TABLE IF NOT EXISTS contact_submissions (
			seq          INTEGER  PRIMARY KEY AUTOINCREMENT,
			id           TEXT     NOT NULL UNIQUE,
			full_name    TEXT     NOT NULL,
			email        TEXT     NOT NULL,
			organization TEXT     NOT NULL DEFAULT '',
			subject      TEXT     NOT NULL,
			message      TEXT     NOT NULL,
			submitted_at DATETIME NOT NULL,
			status       TEXT     NOT NULL DEFAULT 'new'
		)`,
		`CREATE TABLE IF NOT EXISTS contact_info (
			id             INTEGER PRIMARY KEY,
			address        TEXT    NOT NULL,
			phone          TEXT    NOT NULL,
			email          TEXT    NOT NULL,
			business_hours TEXT    NOT NULL,
			website        TEXT    NOT NULL,
			facebook       TEXT    NOT NULL,
			linkedin       TEXT    NOT NULL,
			twitter        TEXT    NOT NULL
		)`,
	},
}

// Schema returns the statements that create the tables for the given driver.
func Schema(driver string) ([]string, error) {
	statements, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("no schema for database driver %q", driver)
	}
	return statements, nil
}

// Migrate creates all tables that do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements, err := Schema(db.DriverName())
	if err != nil {
		return err
	}
	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
