package dblib

import "fmt"

// DatabaseType identifies a supported SQL backend.
type DatabaseType int

const (
	SQLite DatabaseType = iota
	PostgreSQL
	MySQL
)

var databaseIcons = map[DatabaseType]string{
	SQLite:     "🪶",
	PostgreSQL: "🐘",
	MySQL:      "🐬",
}

func (t DatabaseType) String() string {
	switch t {
	case SQLite:
		return "sqlite"
	case PostgreSQL:
		return "postgres"
	case MySQL:
		return "mysql"
	}
	return fmt.Sprintf("DatabaseType(%d)", int(t))
}

// Icon returns the glyph shown next to the database name.
func (t DatabaseType) Icon() string {
	return databaseIcons[t]
}

// DriverName returns the database/sql driver registered for t.
func (t DatabaseType) DriverName() (string, error) {
	switch t {
	case SQLite:
		return "sqlite3", nil
	case PostgreSQL:
		return "postgres", nil
	case MySQL:
		return "mysql", nil
	}
	return "", fmt.Errorf("unsupported database type: %v", t)
}

// ParseDatabaseType maps a user supplied name onto a DatabaseType.
func ParseDatabaseType(name string) (DatabaseType, error) {
	switch name {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pg":
		return PostgreSQL, nil
	case "mysql", "mariadb":
		return MySQL, nil
	}
	return 0, fmt.Errorf("unknown database type %q", name)
}
