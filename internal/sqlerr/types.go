package sqlerr

// Code is a driver-independent category for a database error.
type Code int

const (
	// Other covers everything not explicitly classified.
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	InvalidTextRepresentation
	SerializationFailure
	DeadlockDetected
)

// Severity mirrors the postgres error severity levels we care about.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
	SeverityPanic
	SeverityOther
)

// Error is the structured form of a database error, keeping the original
// SQLSTATE alongside schema metadata useful for message generation.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a postgres SQLSTATE to a Code.
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
	case "22P02":
		return InvalidTextRepresentation
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	default:
		return Other
	}
}

// MapSeverity maps a postgres severity string to a Severity.
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
