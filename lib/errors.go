package lib

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	InvalidCharacters ErrorKind = iota
	PatternError
	UnbalancedBrackets
	UnmatchedBracket
	InvalidToken
	DivisionByZero
	IntegerOnlyOperation
	IndeterminateForm
	DomainError
	Overflow
	TooDeep
)

var errorKindNames = map[ErrorKind]string{
	InvalidCharacters:    "InvalidCharacters",
	PatternError:         "PatternError",
	UnbalancedBrackets:   "UnbalancedBrackets",
	UnmatchedBracket:     "UnmatchedBracket",
	InvalidToken:         "InvalidToken",
	DivisionByZero:       "DivisionByZero",
	IntegerOnlyOperation: "IntegerOnlyOperation",
	IndeterminateForm:    "IndeterminateForm",
	DomainError:          "DomainError",
	Overflow:             "Overflow",
	TooDeep:              "TooDeep",
}

func (k ErrorKind) String() string {
	name, ok := errorKindNames[k]
	if !ok {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return name
}

// EvalError is returned for every evaluation failure. Msg is meant to be
// shown to the user as is.
type EvalError struct {
	Kind ErrorKind
	Msg  string
}

func (e *EvalError) Error() string {
	return e.Msg
}

// Is reports whether target is an *EvalError of the same kind, so callers can
// write errors.Is(err, lib.ErrDivisionByZero).
func (e *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidCharacters  = &EvalError{Kind: InvalidCharacters, Msg: "expression contains invalid characters"}
	ErrPatternError       = &EvalError{Kind: PatternError, Msg: "expression does not match the required pattern"}
	ErrUnbalancedBrackets = &EvalError{Kind: UnbalancedBrackets, Msg: "mismatched parentheses"}
	ErrUnmatchedBracket   = &EvalError{Kind: UnmatchedBracket, Msg: "missing closing bracket"}
	ErrInvalidToken       = &EvalError{Kind: InvalidToken, Msg: "invalid token"}
	ErrDivisionByZero     = &EvalError{Kind: DivisionByZero, Msg: "division by zero"}
	ErrIntegerOnly        = &EvalError{Kind: IntegerOnlyOperation, Msg: "operation requires integers"}
	ErrIndeterminateForm  = &EvalError{Kind: IndeterminateForm, Msg: "indeterminate form 0**0"}
	ErrDomain             = &EvalError{Kind: DomainError, Msg: "math domain error"}
	ErrOverflow           = &EvalError{Kind: Overflow, Msg: "numerical result out of range"}
	ErrTooDeep            = &EvalError{Kind: TooDeep, Msg: "expression nested too deeply"}
)

func evalErrorf(kind ErrorKind, format string, args ...interface{}) *EvalError {
	return &EvalError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind from err. The second result is false when err
// is not an evaluation error.
func KindOf(err error) (ErrorKind, bool) {
	var e *EvalError
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}
