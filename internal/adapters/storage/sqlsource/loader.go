// Package sqlsource loads view records from a read-only SQL query.
package sqlsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"volunteerhub/internal/adapters/storage"
	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
)

// ErrNoIDColumn is returned when the query has no id column.
var ErrNoIDColumn = errors.New("query must select an id column")

// DefaultSourceName tags records whose row has no source column.
const DefaultSourceName = "sqlite"

// Loader maps each row of Query onto a record: column names (lower-cased)
// become field names and the id column becomes the record ID.
type Loader struct {
	db     storage.SQLDB
	query  string
	source string
}

// NewLoader creates a Loader. An empty source uses DefaultSourceName.
// PRE: db is non-nil; query is a SELECT
// POST: Load runs query on every call
func NewLoader(db storage.SQLDB, query, source string) *Loader {
	if source == "" {
		source = DefaultSourceName
	}
	return &Loader{db: db, query: query, source: source}
}

// Name identifies the loader in logs.
func (l *Loader) Name() string {
	return l.source
}

// Load runs the query and returns one record per row, in row order.
// PRE: ctx is valid
// POST: NULL columns are omitted from the record; BLOB/TEXT bytes become strings;
// rows with a NULL or empty id are skipped
func (l *Loader) Load(ctx context.Context) ([]viewengine.Record, error) {
	rows, err := l.db.QueryContext(ctx, l.query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", l.source, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", l.source, err)
	}
	names := make([]string, len(cols))
	idIdx := -1
	for i, c := range cols {
		names[i] = strings.ToLower(strings.TrimSpace(c))
		if names[i] == viewengine.IDField {
			idIdx = i
		}
	}
	if idIdx < 0 {
		return nil, ErrNoIDColumn
	}

	var out []viewengine.Record
	skipped := 0
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", l.source, err)
		}
		id := columnString(values[idIdx])
		if id == "" {
			skipped++
			continue
		}
		fields := make(map[string]any, len(cols)+1)
		for i, v := range values {
			if i == idIdx || v == nil {
				continue
			}
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			fields[names[i]] = v
		}
		if _, ok := fields[records.FieldSource]; !ok {
			fields[records.FieldSource] = l.source
		}
		out = append(out, viewengine.NewRecord(id, fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows %s: %w", l.source, err)
	}
	if skipped > 0 {
		slog.Warn("sql_rows_skipped", "source", l.source, "reason", "empty id", "rows", skipped)
	}
	return out, nil
}

func columnString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	}
	return fmt.Sprint(v)
}
