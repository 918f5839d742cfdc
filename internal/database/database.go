package database

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type Config struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

func init() {
	// modernc registers plain "sqlite", which sqlx does not know yet.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open prepares a pool for the configured store. No connection is made
// until the first operation, so an unreachable store never stops startup.
func Open(cfg *Config) (*sqlx.DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn, err := DSN(dialect, cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", dialect, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}

// Ping checks the store is reachable within timeout.
func Ping(ctx context.Context, db *sqlx.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return db.PingContext(pingCtx)
}

func DSN(d Dialect, cfg *Config) (string, error) {
	switch d {
	case Postgres:
		port := cfg.Port
		if port == "" {
			port = "5432"
		}
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		parts := []string{
			"host=" + cfg.Host,
			"port=" + port,
			"user=" + cfg.User,
			"password=" + cfg.Password,
			"dbname=" + cfg.DBName,
			"sslmode=" + sslMode,
		}
		if cfg.ConnectTimeout > 0 {
			parts = append(parts, fmt.Sprintf("connect_timeout=%d", int(cfg.ConnectTimeout.Seconds())))
		}
		return strings.Join(parts, " "), nil

	case MySQL:
		port := cfg.Port
		if port == "" {
			port = "3306"
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, port)
		mc.DBName = cfg.DBName
		mc.ParseTime = true
		mc.Timeout = cfg.ConnectTimeout
		return mc.FormatDSN(), nil

	case SQLite:
		path := cfg.Path
		if path == "" {
			return "", fmt.Errorf("sqlite store needs a file path")
		}
		return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
	}
	return "", fmt.Errorf("unsupported dialect %q", d)
}
