package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cooooin/harmony/internal/models"
)

type Config struct {
	// Path is the database file. Pragmas are appended as DSN options so
	// every pooled connection gets them, not just the first.
	Path string
	// MaxConns is the fixed pool size.
	MaxConns int
	// AcquireTimeout bounds how long Acquire blocks for a free lease.
	AcquireTimeout time.Duration
	// BusyTimeout is handed to SQLite's busy handler, per connection.
	BusyTimeout time.Duration
}

func (c *Config) withDefaults() {
	if c.MaxConns <= 0 {
		c.MaxConns = 10
	}
	if c.AcquireTimeout <= 0 {
		c.AcquireTimeout = 5 * time.Second
	}
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = 5 * time.Second
	}
}

// Pool hands out exclusive connection leases over a fixed-size set of
// SQLite connections. Waiters are served in arrival order: a permit
// channel queues blocked acquirers and the runtime wakes them FIFO.
type Pool struct {
	db       *sql.DB
	permits  chan struct{}
	maxConns int
	timeout  time.Duration
}

func NewPool(ctx context.Context, cfg Config) (*Pool, error) {
	cfg.withDefaults()

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=%d&_foreign_keys=on&_loc=UTC",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
	}
	sqldb.SetMaxOpenConns(cfg.MaxConns)
	sqldb.SetMaxIdleConns(cfg.MaxConns)
	sqldb.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqldb.PingContext(pingCtx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Path, err)
	}

	permits := make(chan struct{}, cfg.MaxConns)
	for i := 0; i < cfg.MaxConns; i++ {
		permits <- struct{}{}
	}
	return &Pool{db: sqldb, permits: permits, maxConns: cfg.MaxConns, timeout: cfg.AcquireTimeout}, nil
}

// Acquire blocks until a lease is free, the configured acquire timeout
// elapses, or ctx is done. Timeout and cancellation both surface as
// models.ErrPoolTimeout so callers never hang on an exhausted pool.
func (p *Pool) Acquire(ctx context.Context) (*Lease, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	select {
	case <-p.permits:
	case <-ctx.Done():
		return nil, fmt.Errorf("acquire lease: %w", models.ErrPoolTimeout)
	}

	conn, err := p.db.Conn(ctx)
	if err != nil {
		p.permits <- struct{}{}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquire lease: %w", models.ErrPoolTimeout)
		}
		return nil, fmt.Errorf("acquire lease: %w", err)
	}
	return &Lease{pool: p, conn: conn}, nil
}

// Available reports how many leases are currently free.
func (p *Pool) Available() int { return len(p.permits) }

// InUse reports how many leases are currently held.
func (p *Pool) InUse() int { return p.maxConns - len(p.permits) }

func (p *Pool) Close() error { return p.db.Close() }

// Lease is exclusive use of one connection until Release.
type Lease struct {
	pool    *Pool
	conn    *sql.Conn
	damaged bool
	once    sync.Once
}

func (l *Lease) Conn() *sql.Conn { return l.conn }

// Damage marks the underlying connection as unusable. Release will
// discard it instead of returning it, and the next open gets a fresh one.
func (l *Lease) Damage() { l.damaged = true }

// Release returns the lease to the pool. Safe to call more than once, so
// a deferred Release still pairs with an early one on the error path.
func (l *Lease) Release() {
	l.once.Do(func() {
		if l.damaged {
			// Returning ErrBadConn from Raw makes database/sql close the
			// driver connection rather than recycle it.
			_ = l.conn.Raw(func(any) error { return driver.ErrBadConn })
		}
		_ = l.conn.Close()
		l.pool.permits <- struct{}{}
	})
}
