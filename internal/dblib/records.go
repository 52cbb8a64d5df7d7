package dblib

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"gridedit/internal/gridstate"
)

// TableQuery returns the query that reads the record columns of table.
func TableQuery(dbType DatabaseType, table string) string {
	return fmt.Sprintf("SELECT id, name, age FROM %s", quoteQualified(dbType, table))
}

// LoadRecords runs query and scans its id, name and age columns into records.
// Column names match case-insensitively; other columns are ignored. A NULL
// name reads as "" and a NULL age as 0.
func LoadRecords(ctx context.Context, db *sql.DB, query string) ([]gridstate.Record, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	index := map[gridstate.Field]int{}
	for i, name := range names {
		f := gridstate.Field(strings.ToLower(name))
		if _, dup := index[f]; f.Valid() && !dup {
			index[f] = i
		}
	}
	for _, f := range gridstate.Fields {
		if _, ok := index[f]; !ok {
			return nil, fmt.Errorf("query result has no %q column", f)
		}
	}

	var records []gridstate.Record
	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		var r gridstate.Record
		rawID := values[index[gridstate.FieldID]]
		if rawID == nil {
			return nil, fmt.Errorf("row %d: id is NULL", len(records)+1)
		}
		if r.ID, err = toInt64(rawID); err != nil {
			return nil, fmt.Errorf("row %d: id: %w", len(records)+1, err)
		}
		r.Name = toString(values[index[gridstate.FieldName]])
		age, err := toInt64(values[index[gridstate.FieldAge]])
		if err != nil {
			return nil, fmt.Errorf("row %d: age: %w", len(records)+1, err)
		}
		r.Age = int(age)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func toInt64(v any) (int64, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	}
	return 0, fmt.Errorf("unsupported value %T", v)
}

func toString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	}
	return fmt.Sprint(v)
}
