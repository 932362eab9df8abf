package runner

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mgutz/sproc"
)

// DB is a single database connection pool which can run stored procedure
// calls.
type DB struct {
	DB     *sqlx.DB
	driver string
}

// NewDB instantiates a DB for a given database/sql connection.
func NewDB(db *sql.DB, driverName string) *DB {
	return NewDBFromSqlx(sqlx.NewDb(db, driverName))
}

// NewDBFromString opens a DB from a given driver and connection string.
func NewDBFromString(driver string, connectionString string) (*DB, error) {
	dbx, err := sqlx.Open(driver, connectionString)
	if err != nil {
		logger.Error("Database error", "err", err, "driver", driver)
		return nil, err
	}
	return NewDBFromSqlx(dbx), nil
}

// NewDBFromSqlx creates a new DB object from existing sqlx.DB.
func NewDBFromSqlx(dbx *sqlx.DB) *DB {
	return &DB{DB: dbx, driver: canonicalDriver(dbx.DriverName())}
}

// canonicalDriver maps Go driver names to the identifiers used to pick a
// stored procedure dialect.
func canonicalDriver(name string) string {
	switch name {
	case "sqlserver", "mssql", "azuresql":
		return sproc.DriverSQLServer
	default:
		return name
	}
}

// Driver implements sproc.Database.
func (db *DB) Driver() string {
	return db.driver
}

// Close closes the underlying pool.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Select runs query and scans every row into a record. A single
// map[string]interface{} argument binds :name placeholders by name.
func (db *DB) Select(ctx context.Context, query string, args ...interface{}) (sproc.Rows, error) {
	fullSQL, bindArgs, err := db.bind(query, args)
	if err != nil {
		logger.Error("select.bind", "err", err, "sql", query)
		return nil, err
	}

	if logger.IsInfo() {
		startTime := time.Now()
		defer func() {
			logger.Info("select", "elapsed", time.Since(startTime).Nanoseconds(), "sql", fullSQL)
		}()
	}

	var rows *sqlx.Rows
	if bindArgs == nil {
		rows, err = db.DB.QueryxContext(ctx, fullSQL)
	} else {
		rows, err = db.DB.QueryxContext(ctx, fullSQL, bindArgs...)
	}
	if err != nil {
		logger.Error("select.query", "err", err, "sql", fullSQL)
		return nil, err
	}
	defer rows.Close()

	var records []sproc.Record
	for rows.Next() {
		rec := map[string]interface{}{}
		if err = rows.MapScan(rec); err != nil {
			logger.Error("select.scan", "err", err, "sql", fullSQL)
			return nil, err
		}
		for k, v := range rec {
			if b, ok := v.([]byte); ok {
				rec[k] = string(b)
			}
		}
		records = append(records, sproc.Record(rec))
	}
	if err = rows.Err(); err != nil {
		logger.Error("select.rows_err", "err", err, "sql", fullSQL)
		return nil, err
	}

	return sproc.NewRows(records), nil
}

func (db *DB) bind(query string, args []interface{}) (string, []interface{}, error) {
	if len(args) == 0 {
		return query, nil, nil
	}
	if len(args) == 1 {
		if m, ok := args[0].(map[string]interface{}); ok {
			q, bindArgs, err := sqlx.Named(query, m)
			if err != nil {
				return "", nil, err
			}
			return db.DB.Rebind(q), bindArgs, nil
		}
	}
	return query, args, nil
}
