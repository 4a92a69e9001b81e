package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/output"
)

// sqliteSchema creates the export tables. isms.position keeps dataset order.
const sqliteSchema = `
CREATE TABLE isms (
	position    INTEGER PRIMARY KEY,
	code        TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	key_points  TEXT NOT NULL DEFAULT ''
);
CREATE TABLE aliases (
	code  TEXT NOT NULL REFERENCES isms(code),
	alias TEXT NOT NULL
);
CREATE TABLE four_grid (
	code     TEXT NOT NULL REFERENCES isms(code),
	position TEXT NOT NULL,
	label    TEXT NOT NULL,
	value    TEXT NOT NULL,
	text     TEXT NOT NULL,
	PRIMARY KEY (code, position)
);
CREATE INDEX idx_aliases_alias ON aliases(alias);
`

// WriteSQLite writes the records to a fresh SQLite database at path.
// The database is built next to path and renamed into place, so an existing
// file is replaced only when every insert succeeded.
func WriteSQLite(ctx context.Context, path string, isms []*catalog.Ism) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-ismism-*.db")
	if err != nil {
		return output.NewSystemErrorWithCause("failed to create temp database", err)
	}
	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := buildSQLite(ctx, tmpPath, isms); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}

func buildSQLite(ctx context.Context, path string, isms []*catalog.Ism) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return output.NewSystemErrorWithCause("opening database", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return output.NewSystemErrorWithCause("creating schema", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return output.NewSystemErrorWithCause("starting transaction", err)
	}
	if err := insertIsms(ctx, tx, isms); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return output.NewSystemErrorWithCause("committing export", err)
	}
	return db.Close()
}

func insertIsms(ctx context.Context, tx *sql.Tx, isms []*catalog.Ism) error {
	ismStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO isms (position, code, name, description, key_points) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return output.NewSystemErrorWithCause("preparing insert", err)
	}
	defer func() { _ = ismStmt.Close() }()

	aliasStmt, err := tx.PrepareContext(ctx, `INSERT INTO aliases (code, alias) VALUES (?, ?)`)
	if err != nil {
		return output.NewSystemErrorWithCause("preparing insert", err)
	}
	defer func() { _ = aliasStmt.Close() }()

	gridStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO four_grid (code, position, label, value, text) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return output.NewSystemErrorWithCause("preparing insert", err)
	}
	defer func() { _ = gridStmt.Close() }()

	for i, ism := range isms {
		if _, err := ismStmt.ExecContext(ctx, i, ism.Code, ism.Name, ism.Description, strings.Join(ism.KeyPoints, "\n")); err != nil {
			return output.NewSystemErrorWithCause(fmt.Sprintf("inserting %s", ism.Code), err)
		}
		for _, alias := range ism.Aliases {
			if _, err := aliasStmt.ExecContext(ctx, ism.Code, alias); err != nil {
				return output.NewSystemErrorWithCause(fmt.Sprintf("inserting alias of %s", ism.Code), err)
			}
		}
		for _, pos := range ism.FourGrid.Positions() {
			if pos.Item == nil {
				continue
			}
			if _, err := gridStmt.ExecContext(ctx, ism.Code, pos.Key, pos.Label, pos.Item.Value, pos.Item.Text); err != nil {
				return output.NewSystemErrorWithCause(fmt.Sprintf("inserting grid of %s", ism.Code), err)
			}
		}
	}
	return nil
}

