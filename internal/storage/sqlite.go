package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dbgdoc/internal/audit"
	"dbgdoc/internal/severity"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS functions (
			id TEXT PRIMARY KEY,
			name TEXT,
			package TEXT,
			filepath TEXT,
			line INTEGER,
			title TEXT,
			declared_inputs INTEGER,
			params INTEGER,
			variadic INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS findings (
			unit_id TEXT,
			function TEXT,
			filepath TEXT,
			line INTEGER,
			kind TEXT,
			severity INTEGER,
			message TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_functions_file ON functions(filepath);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

const functionColumns = "id, name, package, filepath, line, title, declared_inputs, params, variadic"

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, records []audit.Record, findings []audit.Finding) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Snapshot semantics: anything not in this audit is gone.
	if _, err := tx.ExecContext(ctx, "DELETE FROM findings"); err != nil {
		return fmt.Errorf("failed to clear findings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM functions"); err != nil {
		return fmt.Errorf("failed to clear functions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO functions (`+functionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			package=excluded.package,
			filepath=excluded.filepath,
			line=excluded.line,
			title=excluded.title,
			declared_inputs=excluded.declared_inputs,
			params=excluded.params,
			variadic=excluded.variadic
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Function, r.Package, r.Filepath, r.Line, r.Title, r.DeclaredInputs, r.Params, r.Variadic); err != nil {
			return err
		}
	}

	findingStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings (unit_id, function, filepath, line, kind, severity, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer findingStmt.Close()

	for _, f := range findings {
		if _, err := findingStmt.ExecContext(ctx, f.UnitID, f.Function, f.Filepath, f.Line, string(f.Kind), f.Severity.Rank(), f.Message); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetFunction(ctx context.Context, id string) (*audit.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+functionColumns+" FROM functions WHERE id = ?", id)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("function %s: %w", id, ErrNotFound)
	}
	return r, err
}

func (s *SQLiteStore) FindFunctionsByFile(ctx context.Context, filepath string) ([]*audit.Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+functionColumns+" FROM functions WHERE filepath = ? ORDER BY line", filepath)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*audit.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan function: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) ListFindings(ctx context.Context) ([]audit.Finding, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT unit_id, function, filepath, line, kind, severity, message FROM findings ORDER BY filepath, line, rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	var findings []audit.Finding
	for rows.Next() {
		var f audit.Finding
		var kind string
		var rank int
		if err := rows.Scan(&f.UnitID, &f.Function, &f.Filepath, &f.Line, &kind, &rank, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		f.Kind = audit.Kind(kind)
		f.Severity = severity.Level(rank)
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*audit.Record, error) {
	var r audit.Record
	if err := row.Scan(&r.ID, &r.Function, &r.Package, &r.Filepath, &r.Line, &r.Title, &r.DeclaredInputs, &r.Params, &r.Variadic); err != nil {
		return nil, err
	}
	return &r, nil
}
