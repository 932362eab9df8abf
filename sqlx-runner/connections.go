package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mgutz/sproc"
	"go.uber.org/multierr"
)

var (
	// ErrUnknownConnection is returned when a named connection is not registered.
	ErrUnknownConnection = errors.New("unknown connection")
	// ErrNoDefaultConnection is returned when Connections has no default.
	ErrNoDefaultConnection = errors.New("no default connection")
)

// Connections is the default connection plus any named connections. It
// implements sproc.Database and is read-only once built.
type Connections struct {
	def   *DB
	named map[string]*DB
}

// NewConnections creates Connections with def as the default connection.
func NewConnections(def *DB) *Connections {
	return &Connections{def: def, named: map[string]*DB{}}
}

// Add registers a named connection.
func (c *Connections) Add(name string, db *DB) *Connections {
	c.named[name] = db
	return c
}

// Default returns the default connection.
func (c *Connections) Default() *DB {
	return c.def
}

// Names returns the registered connection names, sorted.
func (c *Connections) Names() []string {
	names := make([]string, 0, len(c.named))
	for name := range c.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Driver implements sproc.Database using the default connection. It is
// empty when there is no default.
func (c *Connections) Driver() string {
	if c.def == nil {
		return ""
	}
	return c.def.Driver()
}

// Select implements sproc.Database on the default connection.
func (c *Connections) Select(ctx context.Context, query string, args ...interface{}) (sproc.Rows, error) {
	if c.def == nil {
		return nil, ErrNoDefaultConnection
	}
	return c.def.Select(ctx, query, args...)
}

// Connection implements sproc.Database.
func (c *Connections) Connection(name string) (sproc.Selector, error) {
	if name == "" {
		if c.def == nil {
			return nil, ErrNoDefaultConnection
		}
		return c.def, nil
	}
	db, ok := c.named[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnection, name)
	}
	return db, nil
}

// Close closes every connection once.
func (c *Connections) Close() error {
	var err error
	closed := map[*DB]bool{}
	for _, db := range append([]*DB{c.def}, c.namedDBs()...) {
		if db == nil || closed[db] {
			continue
		}
		closed[db] = true
		err = multierr.Append(err, db.Close())
	}
	return err
}

func (c *Connections) namedDBs() []*DB {
	var dbs []*DB
	for _, name := range c.Names() {
		dbs = append(dbs, c.named[name])
	}
	return dbs
}
