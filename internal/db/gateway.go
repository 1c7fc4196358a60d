// Package db is the persistence gateway: parameterized statements over a pgx
// pool, a transactional unit of work, and driver-error classification.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Querier executes parameterized statements. Every error it returns has
// already been classified into an *apperr.Error.
type Querier interface {
	// Query runs a statement returning rows. Callers must Close the rows.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	// QueryRow runs a statement returning at most one row; errors surface on Scan.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	// Exec runs a mutation and returns the number of affected rows.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	// Insert runs an INSERT ... RETURNING id and returns the generated id.
	Insert(ctx context.Context, sql string, args ...any) (int, error)
}

// Gateway is the storage capability injected into stores.
type Gateway interface {
	Querier
	// InTx runs fn inside a single transaction. The transaction commits when fn
	// returns nil and rolls back on error or panic; its connection is always
	// returned to the pool.
	InTx(ctx context.Context, fn func(q Querier) error) error
	Ping(ctx context.Context) error
	Close()
}

// Config holds pool settings.
type Config struct {
	URL            string
	MaxConns       int32
	ConnectTimeout time.Duration
}

// Pool is the pgxpool-backed Gateway.
type Pool struct {
	pool *pgxpool.Pool
	log  *zap.Logger
	querier
}

var _ Gateway = (*Pool)(nil)

// Open creates a connection pool and verifies connectivity.
func Open(ctx context.Context, cfg Config, log *zap.Logger) (*Pool, error) {
	if cfg.URL == "" {
		return nil, errors.New("database url is empty")
	}
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, Classify(fmt.Errorf("unable to ping database: %w", err))
	}
	return New(pool, log), nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool, log *zap.Logger) *Pool {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{pool: pool, log: log, querier: querier{q: pool}}
}

func (p *Pool) Ping(ctx context.Context) error {
	return Classify(p.pool.Ping(ctx))
}

func (p *Pool) Close() { p.pool.Close() }

// InTx implements Gateway.
func (p *Pool) InTx(ctx context.Context, fn func(q Querier) error) (err error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return Classify(fmt.Errorf("failed to begin transaction: %w", err))
	}

	defer func() {
		if rv := recover(); rv != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(rv)
		}
		if err != nil {
			if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				p.log.Warn("rollback failed", zap.Error(rbErr))
			}
		}
	}()

	if err = fn(querier{q: tx}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return Classify(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type querier struct {
	q pgxQuerier
}

func (q querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	r, err := q.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, Classify(err)
	}
	return classifiedRows{Rows: r}, nil
}

func (q querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return classifiedRow{row: q.q.QueryRow(ctx, sql, args...)}
}

func (q querier) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := q.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, Classify(err)
	}
	return tag.RowsAffected(), nil
}

func (q querier) Insert(ctx context.Context, sql string, args ...any) (int, error) {
	var id int
	if err := q.q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, Classify(err)
	}
	return id, nil
}

type classifiedRow struct {
	row pgx.Row
}

func (r classifiedRow) Scan(dest ...any) error {
	return Classify(r.row.Scan(dest...))
}

type classifiedRows struct {
	pgx.Rows
}

func (r classifiedRows) Scan(dest ...any) error {
	return Classify(r.Rows.Scan(dest...))
}

func (r classifiedRows) Err() error {
	return Classify(r.Rows.Err())
}
