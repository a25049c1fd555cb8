package stride

import "fmt"

// ParseErrorKind enumerates the ways a pattern can be malformed.
type ParseErrorKind uint8

const (
	ErrUnexpectedEndOfInput ParseErrorKind = iota
	ErrEmptyParameterName
	ErrDuplicateParameterName
	ErrTrailingAfterRestParameter
	ErrUnbalancedBrace
	ErrInvalidRegex
	ErrEmptyPattern
)

var parseErrorText = map[ParseErrorKind]string{
	ErrUnexpectedEndOfInput:       "unexpected end of input",
	ErrEmptyParameterName:         "empty parameter name",
	ErrDuplicateParameterName:     "duplicate parameter name",
	ErrTrailingAfterRestParameter: "trailing step after rest parameter",
	ErrUnbalancedBrace:            "unbalanced brace",
	ErrInvalidRegex:               "invalid regex",
	ErrEmptyPattern:               "empty pattern",
}

// ParseError is returned by Add when a pattern does not conform to the
// grammar. Pos is the byte offset at which parsing gave up.
type ParseError struct {
	Kind    ParseErrorKind
	Pattern string
	Pos     int
	Detail  string
}

func (e *ParseError) Error() string {
	msg := parseErrorText[e.Kind]
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("stride: parse %q at offset %d: %s", e.Pattern, e.Pos, msg)
}

func parseErr(kind ParseErrorKind, pattern string, pos int, detail string) *ParseError {
	return &ParseError{Kind: kind, Pattern: pattern, Pos: pos, Detail: detail}
}

// ConflictError records a route whose terminal was already taken by an
// earlier registration. The earlier route stays in effect; the later one is
// shadowed and can never match.
type ConflictError struct {
	Kept     string // pattern of the earlier, winning route
	Shadowed string // pattern of the later, unreachable route
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("stride: route %q is shadowed by earlier route %q", e.Shadowed, e.Kept)
}

// CompileError is returned by Compile when the destination set cannot be
// turned into a matcher. Compilation is fail-fast: nothing is produced.
type CompileError struct {
	Reason string
}

func (e *CompileError) Error() string { return "stride: compile: " + e.Reason }
