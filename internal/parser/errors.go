package parser

import "fmt"

// Position locates a byte in the source text. Line and Column are 1-based.
type Position struct {
	Line   int
	Column int
	Offset int
}

// ParseError is the single error surface of the parser. Err carries the
// specific failure kind (SyntaxError, UnassignedSymbolError,
// ScopeDisciplineError, scope.DuplicateSymbolError, scope.UnknownSymbolError
// or graph.InvariantViolation) for errors.As dispatch. A parse error aborts
// the whole parse; there is no recovery.
type ParseError struct {
	Message  string
	Position Position
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SyntaxError reports an expected token or construct that is absent.
type SyntaxError struct {
	Expected string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s", e.Expected)
}

// UnassignedSymbolError reports an expression reading a variable that was
// declared but never given a value.
type UnassignedSymbolError struct {
	Name string
}

func (e *UnassignedSymbolError) Error() string {
	return fmt.Sprintf("variable %s read before assignment", e.Name)
}

// ScopeDisciplineError reports unbalanced scope pushes and pops: a block
// exit that does not restore the scope active at block entry, or a pop with
// no scope left.
type ScopeDisciplineError struct {
	Reason string
}

func (e *ScopeDisciplineError) Error() string {
	return "scope discipline: " + e.Reason
}
