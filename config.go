package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"os/user"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"gridedit/internal/dblib"
	"gridedit/internal/gridstate"
)

// Config describes where the initial records come from when importing from a
// database. The import is read-only; edits never go back to the source.
type Config struct {
	Database string
	Host     string
	Port     string
	Username string
	Password string
	Table    string
	Command  string
	// DBTypeOverride allows explicitly selecting the database type via flags
	DBTypeOverride *dblib.DatabaseType
}

// enabled reports whether any database import was requested.
func (c *Config) enabled() bool {
	return c.Database != ""
}

func (c *Config) detectDatabaseType() dblib.DatabaseType {
	if c.DBTypeOverride != nil {
		return *c.DBTypeOverride
	}
	for _, suffix := range []string{".sqlite", ".sqlite3", ".db"} {
		if strings.HasSuffix(c.Database, suffix) {
			return dblib.SQLite
		}
	}
	return dblib.PostgreSQL
}

func currentUsername() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

func (c *Config) buildConnectionString() (string, dblib.DatabaseType, error) {
	dbType := c.detectDatabaseType()

	switch dbType {
	case dblib.SQLite:
		if _, err := os.Stat(c.Database); os.IsNotExist(err) {
			return "", dbType, fmt.Errorf("sqlite file does not exist: %s", c.Database)
		}
		return "file:" + c.Database + "?mode=ro", dbType, nil

	case dblib.PostgreSQL:
		parts := []string{"dbname=" + c.Database}
		if c.Host != "" {
			parts = append(parts, "host="+c.Host)
		}
		if c.Port != "" {
			parts = append(parts, "port="+c.Port)
		}
		username := c.Username
		if username == "" {
			username = currentUsername()
		}
		if username != "" {
			parts = append(parts, "user="+username)
		}
		if c.Password != "" {
			parts = append(parts, "password="+c.Password)
		}
		parts = append(parts, "sslmode=disable")
		return strings.Join(parts, " "), dbType, nil

	case dblib.MySQL:
		cfg := mysql.NewConfig()
		cfg.User = c.Username
		if cfg.User == "" {
			cfg.User = currentUsername()
		}
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		host, port := c.Host, c.Port
		if host == "" {
			host = "localhost"
		}
		if port == "" {
			port = "3306"
		}
		cfg.Addr = net.JoinHostPort(host, port)
		cfg.DBName = c.Database
		return cfg.FormatDSN(), dbType, nil
	}
	return "", dbType, fmt.Errorf("unsupported database type")
}

func (c *Config) connect(ctx context.Context) (*sql.DB, dblib.DatabaseType, error) {
	connStr, dbType, err := c.buildConnectionString()
	if err != nil {
		return nil, dbType, err
	}
	driverName, err := dbType.DriverName()
	if err != nil {
		return nil, dbType, err
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, dbType, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, dbType, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, dbType, nil
}

// seedQuery picks the query used for the import: the -c statement if given,
// otherwise the record columns of --table.
func (c *Config) seedQuery(dbType dblib.DatabaseType) (string, error) {
	switch {
	case c.Command != "":
		if err := dblib.ValidateSelect(dbType, c.Command); err != nil {
			return "", err
		}
		return c.Command, nil
	case c.Table != "":
		return dblib.TableQuery(dbType, c.Table), nil
	}
	return "", fmt.Errorf("must specify either --table or --command with a database")
}

// loadRecords connects, runs the seed query and closes the connection.
func (c *Config) loadRecords(ctx context.Context) ([]gridstate.Record, error) {
	db, dbType, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query, err := c.seedQuery(dbType)
	if err != nil {
		return nil, err
	}
	logger.Info("importing records", "db", c.Database, "type", dbType, "query", query)

	records, err := dblib.LoadRecords(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("import from %s %s: %w", dbType.Icon(), c.Database, err)
	}
	return records, nil
}
