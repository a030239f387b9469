package store

import "fmt"

// Dialect abstracts the SQL syntax differences between the supported
// database backends.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// Placeholder returns the parameter placeholder for the given
	// 1-indexed position.
	Placeholder(position int) string

	// InitStatements returns statements run once after connecting.
	InitStatements() []string
}

// SQLiteDialect targets modernc.org/sqlite.
type SQLiteDialect struct{}

func (SQLiteDialect) DriverName() string { return "sqlite" }

func (SQLiteDialect) Placeholder(int) string { return "?" }

func (SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

// PostgresDialect targets lib/pq.
type PostgresDialect struct{}

func (PostgresDialect) DriverName() string { return "postgres" }

func (PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

func (PostgresDialect) InitStatements() []string { return nil }
