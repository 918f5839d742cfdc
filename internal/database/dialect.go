package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", name)
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case SQLite:
		return "sqlite"
	}
	return string(d)
}

// DialectOf maps an open handle back to its dialect.
func DialectOf(q sqlx.QueryerContext) Dialect {
	type driverNamer interface{ DriverName() string }
	if dn, ok := q.(driverNamer); ok {
		if d, err := ParseDialect(dn.DriverName()); err == nil {
			return d
		}
	}
	return SQLite
}
