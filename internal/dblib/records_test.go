package dblib

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"gridedit/internal/gridstate"
)

func setupTestDB(t *testing.T, ddl string, inserts ...string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(ddl); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	for _, stmt := range inserts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to insert test data: %v", err)
		}
	}
	return db
}

func TestLoadRecords(t *testing.T) {
	db := setupTestDB(t,
		`CREATE TABLE people (id INTEGER PRIMARY KEY, Name TEXT, AGE INTEGER, email TEXT)`,
		`INSERT INTO people VALUES (1, 'Alice', 30, 'a@example.com')`,
		`INSERT INTO people VALUES (2, 'Bob', 25, NULL)`,
		`INSERT INTO people VALUES (3, NULL, NULL, NULL)`,
	)

	records, err := LoadRecords(context.Background(), db, "SELECT * FROM people ORDER BY id")
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}

	want := []gridstate.Record{
		{ID: 1, Name: "Alice", Age: 30},
		{ID: 2, Name: "Bob", Age: 25},
		{ID: 3, Name: "", Age: 0},
	}
	if len(records) != len(want) {
		t.Fatalf("LoadRecords() returned %d records, want %d", len(records), len(want))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, records[i], want[i])
		}
	}
}

func TestLoadRecordsTableQuery(t *testing.T) {
	db := setupTestDB(t,
		`CREATE TABLE "Staff" (id INTEGER PRIMARY KEY, name TEXT, age TEXT)`,
		`INSERT INTO "Staff" VALUES (7, 'Eve', ' 41 ')`,
	)

	records, err := LoadRecords(context.Background(), db, TableQuery(SQLite, "Staff"))
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	if len(records) != 1 || records[0] != (gridstate.Record{ID: 7, Name: "Eve", Age: 41}) {
		t.Errorf("LoadRecords() = %+v", records)
	}
}

func TestLoadRecordsErrors(t *testing.T) {
	tests := []struct {
		name    string
		inserts []string
		query   string
		wantErr string
	}{
		{
			name:    "missing column",
			query:   "SELECT id, name FROM t",
			wantErr: `no "age" column`,
		},
		{
			name:    "null id",
			inserts: []string{`INSERT INTO t VALUES (NULL, 'x', '1')`},
			query:   "SELECT * FROM t",
			wantErr: "id is NULL",
		},
		{
			name:    "non-numeric age",
			inserts: []string{`INSERT INTO t VALUES (1, 'y', 'old')`},
			query:   "SELECT * FROM t",
			wantErr: "row 1: age",
		},
		{
			name:    "bad query",
			query:   "SELECT * FROM missing",
			wantErr: "failed to query records",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t, `CREATE TABLE t (id INTEGER, name TEXT, age TEXT)`, tt.inserts...)
			_, err := LoadRecords(context.Background(), db, tt.query)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadRecords() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSelect(t *testing.T) {
	tests := []struct {
		name    string
		dbType  DatabaseType
		query   string
		wantErr bool
	}{
		{"simple select", SQLite, "SELECT id, name, age FROM people", false},
		{"where clause", PostgreSQL, `SELECT * FROM "people" WHERE age > 20`, false},
		{"mysql backticks", MySQL, "SELECT * FROM `people`", false},
		{"trailing semicolon", SQLite, "SELECT * FROM people;", false},
		{"delete", SQLite, "DELETE FROM people", true},
		{"multiple statements", SQLite, "SELECT 1; SELECT 2", true},
		{"garbage", SQLite, "SELEKT everything", true},
		{"empty", SQLite, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelect(tt.dbType, tt.query)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSelect(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			}
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		dbType   DatabaseType
		ident    string
		expected string
	}{
		{SQLite, "people", "people"},
		{SQLite, "People", `"People"`},
		{PostgreSQL, "order", `"order"`},
		{PostgreSQL, `we"ird`, `"we""ird"`},
		{MySQL, "my table", "`my table`"},
		{MySQL, "1st", "`1st`"},
		{SQLite, "t2", "t2"},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := quoteIdent(tt.dbType, tt.ident); got != tt.expected {
				t.Errorf("quoteIdent(%v, %q) = %q, want %q", tt.dbType, tt.ident, got, tt.expected)
			}
		})
	}

	if got := TableQuery(PostgreSQL, "public.People"); got != `SELECT id, name, age FROM public."People"` {
		t.Errorf("TableQuery() = %q", got)
	}
}
