// Package runlog persists import-run outcomes to a local SQLite ledger so
// runs can be audited after the console output is gone.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ctc-parts/catalog-importer/internal/importer"
)

const schema = `
CREATE TABLE IF NOT EXISTS import_run (
	id          TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	source      TEXT NOT NULL,
	attempted   INTEGER NOT NULL,
	succeeded   INTEGER NOT NULL,
	verified    INTEGER NOT NULL,
	failed      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS import_outcome (
	run_id      TEXT NOT NULL REFERENCES import_run(id),
	seq         INTEGER NOT NULL,
	part_no     TEXT NOT NULL,
	ss_part_no  TEXT NOT NULL,
	status      TEXT NOT NULL,
	http_status INTEGER NOT NULL,
	part_id     TEXT NOT NULL,
	error       TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Ledger is the SQLite-backed run history. SQLite is single-writer, so the
// connection pool is pinned to one connection.
type Ledger struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the ledger database at path.
func Open(path string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create runlog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open runlog: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply runlog schema: %w", err)
	}
	return &Ledger{db: db, logger: logger}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record stores one run's summary and per-record outcomes and returns the
// run id.
func (l *Ledger) Record(ctx context.Context, source string, outcomes []importer.Outcome, summary importer.Summary) (string, error) {
	runID := uuid.New().String()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin runlog tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_run (id, started_at, source, attempted, succeeded, verified, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		time.Now().UTC().Format(time.RFC3339),
		source,
		summary.Attempted,
		summary.Succeeded,
		summary.Verified,
		summary.Failed,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO import_outcome (run_id, seq, part_no, ss_part_no, status, http_status, part_id, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare outcome insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, o := range outcomes {
		_, err = stmt.ExecContext(ctx,
			runID, i,
			o.Record.PartNo, o.Record.SecondaryPartNo,
			string(o.Status), o.HTTPStatus, o.PartID, o.Err,
		)
		if err != nil {
			return "", fmt.Errorf("insert outcome %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit runlog tx: %w", err)
	}
	l.logger.Info("runlog.recorded", "run_id", runID, "outcomes", len(outcomes))
	return runID, nil
}
