// Package diagnostics defines the coded errors reported by the kindgen
// pipeline. Every detected error is local to one statement and
// non-recoverable for that statement; stages accumulate them on the
// pipeline context instead of aborting the whole run.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/kindgen/internal/token"
)

type ErrorCode string

const (
	// Parser errors
	ErrP001 ErrorCode = "P001" // malformed token sequence
	ErrP002 ErrorCode = "P002" // duplicate member name in one signature
	ErrP003 ErrorCode = "P003" // mutually exclusive dialect markers
	ErrP004 ErrorCode = "P004" // bad apply label (unknown, duplicate or missing)

	// Codegen errors
	ErrC001 ErrorCode = "C001" // arity mismatch in a realization binding
)

// DiagnosticError is an error tied to a source location.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func (e *DiagnosticError) Error() string {
	loc := fmt.Sprintf("%d:%d", e.Token.Line, e.Token.Column)
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	return fmt.Sprintf("%s [%s] %s", loc, e.Code, e.Message)
}

// NewError builds a DiagnosticError. Extra args are appended to the message
// as a quoted context hint (typically the offending lexeme).
func NewError(code ErrorCode, tok token.Token, message string, args ...string) *DiagnosticError {
	msg := message
	for _, arg := range args {
		msg += fmt.Sprintf(" (got %q)", arg)
	}
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}
