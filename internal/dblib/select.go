package dblib

import (
	"fmt"

	"github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/mysql"
	_ "github.com/pingcap/tidb/parser/test_driver"
)

// ValidateSelect checks that query is exactly one SELECT statement.
// Double quotes are read as identifiers except for MySQL.
func ValidateSelect(dbType DatabaseType, query string) error {
	p := parser.New()
	if dbType != MySQL {
		p.SetSQLMode(mysql.ModeANSIQuotes)
	}

	stmts, _, err := p.Parse(query, "", "")
	if err != nil {
		return fmt.Errorf("failed to parse SQL: %w", err)
	}
	switch len(stmts) {
	case 0:
		return fmt.Errorf("no SQL statement found")
	case 1:
	default:
		return fmt.Errorf("expected a single statement, got %d", len(stmts))
	}

	if _, ok := stmts[0].(*ast.SelectStmt); !ok {
		return fmt.Errorf("expected SELECT statement, got %T", stmts[0])
	}
	return nil
}
