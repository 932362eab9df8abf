package sproc

import "context"

// Selector runs a statement which returns rows. With no args the statement
// is sent as is; otherwise args are bound in order.
type Selector interface {
	Select(ctx context.Context, query string, args ...interface{}) (Rows, error)
}

// Database is the database the builder executes against. Select uses the
// default connection.
type Database interface {
	Selector

	// Driver returns the active driver identifier such as "mysql" or "sqlsrv".
	Driver() string

	// Connection returns the named connection.
	Connection(name string) (Selector, error)
}
