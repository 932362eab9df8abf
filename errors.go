package sproc

import (
	"errors"
)

var (
	// ErrNoDatabase is returned when a call is executed without a database.
	ErrNoDatabase = errors.New("no database to execute stored procedure against")
	// ErrInvalidProcedure is returned when the procedure name is empty.
	ErrInvalidProcedure = errors.New("invalid stored procedure name")
	// ErrArgumentMismatch ...
	ErrArgumentMismatch = errors.New("mismatch between placeholders and values")
	// ErrAlreadyExecuted is returned when a call builder is executed twice.
	ErrAlreadyExecuted = errors.New("stored procedure call already executed")
)
