package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TableReader reads a table of a SQLite database as a grid of cells, with
// the column names as header row
type TableReader struct {
	db    *sql.DB
	table string
	owned bool
}

// Open opens a SQLite database file and reads the named table
func Open(dataSourceName, table string) (*TableReader, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	reader, err := NewTableReader(db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	reader.owned = true
	return reader, nil
}

// NewTableReader wraps an existing connection
func NewTableReader(db *sql.DB, table string) (*TableReader, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &TableReader{db: db, table: table}, nil
}

// Close closes the database when the reader opened it
func (r *TableReader) Close() error {
	if !r.owned {
		return nil
	}
	return r.db.Close()
}

// ReadGrid selects every row of the table in rowid order
func (r *TableReader) ReadGrid(ctx context.Context) ([][]string, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s" ORDER BY rowid`, r.table))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", r.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", r.table, err)
	}

	grid := [][]string{columns}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row of %s: %w", r.table, err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = cellString(v)
		}
		grid = append(grid, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows of %s: %w", r.table, err)
	}

	return grid, nil
}

// Describe names the source in log lines and errors
func (r *TableReader) Describe() string {
	return "sqlite:" + r.table
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprint(val)
	}
}
