package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Flarenzy/blog-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Options struct {
	Migrate bool
	Logger  *slog.Logger
}

// Store owns the process-wide database handle. It is safe for concurrent use
// and must be closed once on shutdown.
type Store struct {
	Posts  domain.PostRepository
	Driver string

	ping  func(context.Context) error
	close func()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Store) Close() {
	s.close()
}

// Open picks a backend from the DSN: postgres:// and postgresql:// use a pgx
// pool, sqlite://, file: and :memory: use modernc sqlite.
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	driver, target, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverPostgres:
		return openPostgres(ctx, target, opts)
	case DriverSQLite:
		return openSQLite(ctx, target, opts)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func parseDSN(dsn string) (string, string, error) {
	switch {
	case dsn == "":
		return "", "", fmt.Errorf("empty database dsn")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return DriverSQLite, dsn, nil
	default:
		return "", "", fmt.Errorf("unrecognised database dsn scheme")
	}
}

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 20
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = time.Minute
	config.ConnConfig.ConnectTimeout = 10 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func openPostgres(ctx context.Context, dsn string, opts Options) (*Store, error) {
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if opts.Migrate {
		// goose needs database/sql; use a dedicated handle so closing it
		// leaves the pool alone.
		sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
		err := Migrate(ctx, opts.Logger, sqlDB, goose.DialectPostgres, DriverPostgres)
		_ = sqlDB.Close()
		if err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &Store{
		Posts:  NewPostgresPostRepository(pool),
		Driver: DriverPostgres,
		ping:   pool.Ping,
		close:  pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, target string, opts Options) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", target)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps :memory: databases shared and avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if opts.Migrate {
		if err := Migrate(ctx, opts.Logger, sqlDB, goose.DialectSQLite3, DriverSQLite); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	return &Store{
		Posts:  NewSQLitePostRepository(sqlDB),
		Driver: DriverSQLite,
		ping:   sqlDB.PingContext,
		close:  func() { _ = sqlDB.Close() },
	}, nil
}
