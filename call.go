package sproc

import (
	"context"
	"database/sql"
	"strings"
)

// Builder creates stored procedure calls against a database. The dialect
// command is chosen once from the database driver.
type Builder struct {
	db      Database
	command Command
}

// New creates a Builder for db.
func New(db Database) *Builder {
	b := &Builder{db: db, command: Call}
	if db == nil {
		logger.Warn("New.no_database")
		return b
	}
	b.command = CommandFor(db.Driver())
	return b
}

// Command returns the dialect command used for calls.
func (b *Builder) Command() Command {
	return b.command
}

// Procedure starts a call of the named stored procedure.
func (b *Builder) Procedure(name string) *ProcedureBuilder {
	return &ProcedureBuilder{call: &call{
		db:      b.db,
		command: b.command,
		sproc:   name,
	}}
}

// call is the state shared by the builder stages of a single call.
type call struct {
	db         Database
	command    Command
	sproc      string
	connection string
	params     Parameters
	values     []interface{}
	executed   bool
	result     Rows
}

// ProcedureBuilder is a call with a procedure name but no parameters yet.
type ProcedureBuilder struct {
	call *call
}

// Connection selects a named connection. The empty string selects the
// default connection.
func (b *ProcedureBuilder) Connection(name string) *ProcedureBuilder {
	b.call.connection = name
	return b
}

// Statement returns the statement without its parameter clause, e.g.
// "CALL get_user".
func (b *ProcedureBuilder) Statement() string {
	return string(b.call.command) + " " + b.call.sproc
}

// Params sets the placeholders. Use Named for request fields and Raw for
// caller supplied tokens.
func (b *ProcedureBuilder) Params(params Parameters) *CallBuilder {
	b.call.params = params
	return &CallBuilder{call: b.call}
}

// CallBuilder is a call which is ready to execute.
type CallBuilder struct {
	call *call
}

// Values sets positional bind values. A single map[string]interface{} binds
// named placeholders by field name instead.
func (b *CallBuilder) Values(values ...interface{}) *CallBuilder {
	if values == nil {
		values = []interface{}{}
	}
	b.call.values = values
	return b
}

// ToSQL serializes CallBuilder to a SQL string and its bind values.
//
//	CALL get_user (:id);
//	EXEC get_user @id
func (b *CallBuilder) ToSQL() (string, []interface{}) {
	c := b.call
	buf := bufPool.Get()
	defer bufPool.Put(buf)

	buf.WriteString(string(c.command))
	buf.WriteRune(' ')
	buf.WriteString(c.sproc)
	c.command.WriteClause(buf, c.params.Placeholders())

	if len(c.values) == 0 {
		return buf.String(), nil
	}
	return buf.String(), c.values
}

// Execute runs the call on the selected connection and returns its rows.
// Errors from the database are returned as is.
func (b *CallBuilder) Execute(ctx context.Context) (Rows, error) {
	c := b.call
	if c.executed {
		return Rows{}, ErrAlreadyExecuted
	}
	if c.db == nil {
		return Rows{}, ErrNoDatabase
	}
	if strings.TrimSpace(c.sproc) == "" {
		logger.Error("Invalid sproc name", "name", c.sproc)
		return Rows{}, ErrInvalidProcedure
	}
	if err := c.checkValues(); err != nil {
		logger.Error("execute.values", "err", err, "sproc", c.sproc,
			"placeholders", c.params.bindCount(), "values", len(c.values))
		return Rows{}, err
	}
	c.executed = true

	fullSQL, args := b.ToSQL()

	var selector Selector = c.db
	if c.connection != "" {
		conn, err := c.db.Connection(c.connection)
		if err != nil {
			logger.Error("execute.connection", "err", err, "connection", c.connection)
			return Rows{}, err
		}
		selector = conn
	}

	var rows Rows
	var err error
	if args == nil {
		rows, err = selector.Select(ctx, fullSQL)
	} else {
		rows, err = selector.Select(ctx, fullSQL, args...)
	}
	if err != nil {
		logger.Error("execute.select", "err", err, "sql", fullSQL, "connection", c.connection)
		return Rows{}, err
	}

	c.result = NewRows(rows)
	return c.result, nil
}

// Result returns the rows of the executed call. It is empty before Execute.
func (b *CallBuilder) Result() Rows {
	if b.call.result == nil {
		return Rows{}
	}
	return b.call.result
}

// checkValues verifies positional values match the placeholders. Named
// bindings, either a single map or sql.NamedArg values, are left to the
// driver.
func (c *call) checkValues() error {
	if len(c.values) == 0 {
		return nil
	}
	if len(c.values) == 1 {
		if _, ok := c.values[0].(map[string]interface{}); ok {
			return nil
		}
	}
	for _, v := range c.values {
		if _, ok := v.(sql.NamedArg); ok {
			return nil
		}
	}
	if len(c.values) != c.params.bindCount() {
		return ErrArgumentMismatch
	}
	return nil
}
