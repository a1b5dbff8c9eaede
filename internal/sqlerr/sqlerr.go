// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes from the PostgreSQL driver and converts them
// into client-safe application errors (e.g., a unique violation becomes a
// conflict with a stable machine code like DECK_ALREADY_EXISTS).
package sqlerr

// Code classifies a database error into the categories the application
// cares about.
type Code int

const (
	// Other covers everything that is not a recognized constraint
	// violation; it maps to a generic 500.
	Other Code = iota

	// UniqueViolation: SQLSTATE 23505.
	UniqueViolation

	// ForeignKeyViolation: SQLSTATE 23503.
	ForeignKeyViolation

	// NotNullViolation: SQLSTATE 23502.
	NotNullViolation

	// CheckViolation: SQLSTATE 23514.
	CheckViolation

	// ConnectionFailure: SQLSTATE class 08.
	ConnectionFailure
)

// Severity mirrors the PostgreSQL severity field.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
	SeverityPanic
	SeverityOther
)

// MapCode maps a PostgreSQL SQLSTATE string onto a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	}
	if len(sqlstate) >= 2 && sqlstate[:2] == "08" {
		return ConnectionFailure
	}
	return Other
}

// MapSeverity maps the driver's severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityOther
	}
}

// Error is the normalized form of a PostgreSQL error, carrying both the
// mapped category and the raw driver metadata needed to phrase messages.
type Error struct {
	Code         Code
	Severity     Severity
	DatabaseCode string // original SQLSTATE
	Message      string

	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

// Error satisfies the error interface with the driver's message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error for errors.As chains.
func (e *Error) Unwrap() error {
	return e.driverErr
}
