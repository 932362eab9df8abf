package runner

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mgutz/sproc/config"
)

// Open opens every configured connection. The configured default becomes
// the default connection and is also reachable by name.
func Open(ctx context.Context, cfg *config.Config) (*Connections, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conns := NewConnections(nil)
	for _, name := range cfg.Names() {
		db, err := OpenDB(ctx, cfg.Connections[name])
		if err != nil {
			conns.Close()
			return nil, fmt.Errorf("open connection %q: %w", name, err)
		}
		conns.Add(name, db)
		if name == cfg.Default {
			conns.def = db
		}
	}
	return conns, nil
}

// OpenDB opens and pings a single connection.
func OpenDB(ctx context.Context, cc config.Connection) (*DB, error) {
	dbx, err := sqlx.Open(cc.Driver, cc.DSN)
	if err != nil {
		return nil, err
	}

	if cc.MaxOpen > 0 {
		dbx.SetMaxOpenConns(cc.MaxOpen)
	}
	if cc.MaxIdle > 0 {
		dbx.SetMaxIdleConns(cc.MaxIdle)
	}
	if cc.ConnMaxLifetime > 0 {
		dbx.SetConnMaxLifetime(cc.ConnMaxLifetime)
	}

	timeout := cc.PingTimeout
	if timeout <= 0 {
		timeout = config.DefaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := dbx.PingContext(pingCtx); err != nil {
		dbx.Close()
		return nil, err
	}

	logger.Info("connected", "driver", cc.Driver)
	return NewDBFromSqlx(dbx), nil
}
