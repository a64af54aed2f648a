package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrTypeValidation, "test error message")

	assert.Equal(t, ErrTypeValidation, err.Type)
	assert.Equal(t, "test error message", err.Message)
	assert.NoError(t, err.Cause)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrTypeDatabase, "failed to connect to %s", "database")

	assert.Equal(t, ErrTypeDatabase, err.Type)
	assert.Equal(t, "failed to connect to database", err.Message)
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := Wrap(originalErr, ErrTypeDatabase, "query execution failed")

	assert.Equal(t, ErrTypeDatabase, wrappedErr.Type)
	assert.Equal(t, "query execution failed", wrappedErr.Message)
	assert.Equal(t, originalErr, wrappedErr.Cause)
}

func TestWrapf(t *testing.T) {
	originalErr := errors.New("no such table")
	wrappedErr := Wrapf(originalErr, ErrTypeDatabase, "failed to query table %q", "users")

	assert.Equal(t, ErrTypeDatabase, wrappedErr.Type)
	assert.Equal(t, `failed to query table "users"`, wrappedErr.Message)
	assert.Equal(t, originalErr, wrappedErr.Cause)
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "error without cause",
			err: &Error{
				Type:    ErrTypeValidation,
				Message: "invalid input",
			},
			expected: "validation: invalid input",
		},
		{
			name: "error with cause",
			err: &Error{
				Type:    ErrTypeDatabase,
				Message: "query failed",
				Cause:   errors.New("connection timeout"),
			},
			expected: "database: query failed (caused by: connection timeout)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestUnwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := Wrap(originalErr, ErrTypeDatabase, "wrapped error")

	assert.Equal(t, originalErr, wrappedErr.Unwrap())
}

func TestWithSuggestion(t *testing.T) {
	err := New(ErrTypeUnsafe, "request appears to modify data")
	err = err.WithSuggestion("Rephrase the question as a read-only request")
	err = err.WithSuggestion("Use a database client directly for data changes")

	assert.Len(t, err.Suggestions, 2)
	assert.Contains(t, err.Suggestions, "Rephrase the question as a read-only request")
	assert.Contains(t, err.Suggestions, "Use a database client directly for data changes")
}

func TestIsType(t *testing.T) {
	structErr := New(ErrTypeValidation, "validation error")
	regularErr := errors.New("regular error")

	assert.True(t, IsType(structErr, ErrTypeValidation))
	assert.False(t, IsType(structErr, ErrTypeDatabase))
	assert.False(t, IsType(regularErr, ErrTypeValidation))
}

func TestGetType(t *testing.T) {
	structErr := New(ErrTypeSchema, "schema error")
	regularErr := errors.New("regular error")

	assert.Equal(t, ErrTypeSchema, GetType(structErr))
	assert.Equal(t, ErrTypeInternal, GetType(regularErr))
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError("no schema available")

	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Contains(t, err.Message, "no schema available")
	assert.Contains(t, err.Suggestions, "Provide a schema file with --schema")
}

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ErrTypeValidation, "validation"},
		{ErrTypeSchema, "schema"},
		{ErrTypeUnsafe, "unsafe_request"},
		{ErrTypeDatabase, "database"},
		{ErrTypeConfig, "config"},
		{ErrTypeNotFound, "not_found"},
		{ErrTypeInternal, "internal"},
	}

	for _, tt := range tests {
		t.Run(string(tt.errType), func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}
