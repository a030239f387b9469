package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/harrykeightley/wordcrossing-generator/internal/level"
)

// DBStore keeps levels in a SQL database, keyed by name with the JSON
// encoding as payload.
type DBStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite opens or creates a SQLite level database at the given path.
func OpenSQLite(path string) (*DBStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	return open(SQLiteDialect{}, path)
}

// OpenPostgres connects to a Postgres level database.
func OpenPostgres(dsn string) (*DBStore, error) {
	return open(PostgresDialect{}, dsn)
}

func open(dialect Dialect, dsn string) (*DBStore, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init database: %w", err)
		}
	}
	s := &DBStore{db: db, dialect: dialect}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *DBStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS levels (
		name TEXT PRIMARY KEY,
		grid_rows INTEGER NOT NULL,
		grid_cols INTEGER NOT NULL,
		payload TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// Save upserts a level under its name.
func (s *DBStore) Save(lvl *level.Level) error {
	payload, err := json.Marshal(lvl)
	if err != nil {
		return fmt.Errorf("encode level %s: %w", lvl.Name, err)
	}
	query := fmt.Sprintf(`INSERT INTO levels (name, grid_rows, grid_cols, payload)
		VALUES (%s, %s, %s, %s)
		ON CONFLICT (name) DO UPDATE SET
			grid_rows = excluded.grid_rows,
			grid_cols = excluded.grid_cols,
			payload = excluded.payload`,
		s.dialect.Placeholder(1), s.dialect.Placeholder(2),
		s.dialect.Placeholder(3), s.dialect.Placeholder(4))
	if _, err := s.db.Exec(query, lvl.Name, lvl.Rows, lvl.Cols, string(payload)); err != nil {
		return fmt.Errorf("save level %s: %w", lvl.Name, err)
	}
	return nil
}

// Load fetches a level by name.
func (s *DBStore) Load(name string) (*level.Level, error) {
	query := fmt.Sprintf("SELECT payload FROM levels WHERE name = %s", s.dialect.Placeholder(1))
	var payload string
	if err := s.db.QueryRow(query, name).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}
	var lvl level.Level
	if err := json.Unmarshal([]byte(payload), &lvl); err != nil {
		return nil, fmt.Errorf("decode level %s: %w", name, err)
	}
	return &lvl, nil
}

// List returns the stored level names in sorted order.
func (s *DBStore) List() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM levels ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (s *DBStore) Close() error {
	return s.db.Close()
}
