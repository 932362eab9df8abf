package sproc

import "github.com/mgutz/sproc/common"

// Command is the vendor specific keyword used to invoke a stored procedure.
type Command string

const (
	// Call is used by MySQL and is the fallback for unknown drivers.
	Call Command = "CALL"
	// Exec is used by SQL Server.
	Exec Command = "EXEC"
)

// Driver identifiers recognized by CommandFor.
const (
	DriverMySQL     = "mysql"
	DriverSQLServer = "sqlsrv"
)

// CommandFor returns the command for a driver identifier. Unknown drivers,
// including the empty string, use CALL.
func CommandFor(driver string) Command {
	switch driver {
	case DriverMySQL:
		return Call
	case DriverSQLServer:
		return Exec
	default:
		return Call
	}
}

// String implements Stringer.
func (c Command) String() string {
	return string(c)
}

// WriteClause writes the parameter clause following the procedure name.
//
//	CALL proc (:a, :b);
//	EXEC proc @a, @b
func (c Command) WriteClause(buf common.BufferWriter, placeholders string) {
	if c == Exec {
		buf.WriteRune(' ')
		buf.WriteString(placeholders)
		return
	}
	buf.WriteString(" (")
	buf.WriteString(placeholders)
	buf.WriteString(");")
}
