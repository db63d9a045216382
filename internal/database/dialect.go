package database

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string

	// BoolValue returns the SQL representation of a boolean value
	BoolValue(b bool) string

	// UpsertClause returns the clause appended to an INSERT to update the
	// given columns when a row with the same conflict key already exists
	UpsertClause(conflictColumns string, updateColumns ...string) string

	// InsertIgnoreClause returns the clause appended to an INSERT to make it
	// a no-op when a row with the same conflict key already exists
	InsertIgnoreClause(conflictColumns string) string
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders not inside quotes
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// onConflictUpdateClause builds the ON CONFLICT ... DO UPDATE clause shared by
// SQLite and PostgreSQL
func onConflictUpdateClause(conflictColumns string, updateColumns []string) string {
	assignments := make([]string, len(updateColumns))
	for i, col := range updateColumns {
		assignments[i] = col + " = excluded." + col
	}
	return "ON CONFLICT (" + conflictColumns + ") DO UPDATE SET " + strings.Join(assignments, ", ")
}
