// Package errors provides structured error types for the engine.
// All errors include a category, code, and message for consistent
// handling across the parser, executor, and front ends. No error is
// fatal to the engine: the database and all tables remain valid and
// queryable after any failed statement.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by the layer that produced them.
type ErrorCategory string

const (
	// ErrCategorySyntax covers statements the parser cannot turn into a command
	ErrCategorySyntax ErrorCategory = "SYNTAX"

	// ErrCategorySemantic covers well-formed statements that reference
	// unknown tables or columns
	ErrCategorySemantic ErrorCategory = "SEMANTIC"

	// ErrCategoryConstraint covers primary key and unique violations
	ErrCategoryConstraint ErrorCategory = "CONSTRAINT"

	// ErrCategoryType covers literal values that do not fit a column's
	// declared type
	ErrCategoryType ErrorCategory = "TYPE"

	// ErrCategoryInternal covers unexpected engine failures
	ErrCategoryInternal ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Syntax codes
	CodeParseError = "PARSE_ERROR"

	// Semantic codes
	CodeUnknownTable        = "UNKNOWN_TABLE"
	CodeUnknownColumn       = "UNKNOWN_COLUMN"
	CodeDuplicateTable      = "DUPLICATE_TABLE"
	CodeDuplicateColumnName = "DUPLICATE_COLUMN_NAME"
	CodeMultiplePrimaryKeys = "MULTIPLE_PRIMARY_KEYS"
	CodeMissingPrimaryKey   = "MISSING_PRIMARY_KEY"
	CodeArityMismatch       = "ARITY_MISMATCH"
	CodeUnknownType         = "UNKNOWN_TYPE"
	CodeAmbiguousColumn     = "AMBIGUOUS_COLUMN"
	CodeSelfJoin            = "SELF_JOIN"

	// Constraint codes
	CodeDuplicatePrimaryKey  = "DUPLICATE_PRIMARY_KEY"
	CodeDuplicateUniqueValue = "DUPLICATE_UNIQUE_VALUE"

	// Type codes
	CodeTypeMismatch = "TYPE_MISMATCH"

	// Internal codes
	CodeUnexpected = "UNEXPECTED"
)

// EngineError is the structured error type used throughout the system.
type EngineError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Details  map[string]interface{}
	Cause    error
}

// Error returns a formatted error string.
func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *EngineError) Is(target error) bool {
	var t *EngineError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new EngineError.
func New(category ErrorCategory, code, message string) *EngineError {
	return &EngineError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}

// Wrap creates a new EngineError wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *EngineError {
	return &EngineError{
		Category: category,
		Code:     code,
		Message:  message,
		Cause:    cause,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *EngineError) WithDetails(details map[string]interface{}) *EngineError {
	cp := *e
	cp.Details = details
	return &cp
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not an EngineError.
func GetCategory(err error) ErrorCategory {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not an EngineError.
func GetCode(err error) string {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// GetDetails extracts the structured details from an error chain.
// Returns nil if the error is not an EngineError or carries none.
func GetDetails(err error) map[string]interface{} {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Details
	}
	return nil
}

// IsSyntax reports whether the error came from the parser.
func IsSyntax(err error) bool {
	return GetCategory(err) == ErrCategorySyntax
}

// Convenience constructors for common errors.

func NewSyntaxError(message string, cause error) *EngineError {
	return Wrap(ErrCategorySyntax, CodeParseError, message, cause)
}

func NewUnknownTableError(table string) *EngineError {
	return New(ErrCategorySemantic, CodeUnknownTable, fmt.Sprintf("table %q does not exist", table))
}

func NewUnknownColumnError(table, column string) *EngineError {
	return New(ErrCategorySemantic, CodeUnknownColumn, fmt.Sprintf("column %q does not exist in table %q", column, table))
}

func NewDuplicateTableError(table string) *EngineError {
	return New(ErrCategorySemantic, CodeDuplicateTable, fmt.Sprintf("table %q already exists", table))
}

func NewConstraintError(code, message string) *EngineError {
	return New(ErrCategoryConstraint, code, message)
}

func NewTypeMismatchError(column string, cause error) *EngineError {
	return Wrap(ErrCategoryType, CodeTypeMismatch, fmt.Sprintf("type error for column %q", column), cause)
}

func NewInternalError(message string, cause error) *EngineError {
	return Wrap(ErrCategoryInternal, CodeUnexpected, message, cause)
}
