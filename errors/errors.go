package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/wippyai/napi-runtime/abi"
)

// Phase indicates where the error was raised
type Phase string

const (
	PhaseHost        Phase = "host"        // host status translation
	PhaseMarshal     Phase = "marshal"     // argument count and tag validation
	PhaseApplication Phase = "application" // raised by the native function
	PhaseGenerate    Phase = "generate"    // trampoline signature checks
)

// Kind categorizes the error. The set is closed.
type Kind string

const (
	KindInvalidArg        Kind = "invalid_arg"
	KindObjectExpected    Kind = "object_expected"
	KindStringExpected    Kind = "string_expected"
	KindNameExpected      Kind = "name_expected"
	KindFunctionExpected  Kind = "function_expected"
	KindNumberExpected    Kind = "number_expected"
	KindBooleanExpected   Kind = "boolean_expected"
	KindArrayExpected     Kind = "array_expected"
	KindGenericFailure    Kind = "generic_failure"
	KindPendingException  Kind = "pending_exception"
	KindCancelled         Kind = "cancelled"
	KindEscapeCalledTwice Kind = "escape_called_twice"
	KindApplication       Kind = "application_error"
)

var descriptions = map[Kind]string{
	KindInvalidArg:        "napi: invalid argument",
	KindObjectExpected:    "napi: object expected",
	KindStringExpected:    "napi: string expected",
	KindNameExpected:      "napi: name expected",
	KindFunctionExpected:  "napi: function expected",
	KindNumberExpected:    "napi: number expected",
	KindBooleanExpected:   "napi: boolean expected",
	KindArrayExpected:     "napi: array expected",
	KindGenericFailure:    "napi: generic failure",
	KindPendingException:  "napi: pending exception",
	KindCancelled:         "napi: cancelled",
	KindEscapeCalledTwice: "napi: escape called twice",
	KindApplication:       "napi: application error",
}

// KindFromStatus maps a failing host status to its Kind.
//
// It panics for abi.StatusOK and for codes outside the host's enumeration:
// either means the caller skipped the status gate, which is a bug in this
// module rather than a runtime condition.
func KindFromStatus(status abi.Status) Kind {
	switch status {
	case abi.StatusInvalidArg:
		return KindInvalidArg
	case abi.StatusObjectExpected:
		return KindObjectExpected
	case abi.StatusStringExpected:
		return KindStringExpected
	case abi.StatusNameExpected:
		return KindNameExpected
	case abi.StatusFunctionExpected:
		return KindFunctionExpected
	case abi.StatusNumberExpected:
		return KindNumberExpected
	case abi.StatusBooleanExpected:
		return KindBooleanExpected
	case abi.StatusArrayExpected:
		return KindArrayExpected
	case abi.StatusGenericFailure:
		return KindGenericFailure
	case abi.StatusPendingException:
		return KindPendingException
	case abi.StatusCancelled:
		return KindCancelled
	case abi.StatusEscapeCalledTwice:
		return KindEscapeCalledTwice
	}
	panic(fmt.Sprintf("errors: KindFromStatus called with %v: either the host returned an unknown code or the ok status was not gated", status))
}

// Description returns the fixed human-readable text for k.
func (k Kind) Description() string {
	if d, ok := descriptions[k]; ok {
		return d
	}
	return "napi: " + strings.ReplaceAll(string(k), "_", " ")
}

// Error is the structured error type used throughout the module
type Error struct {
	Cause     error
	Kind      Kind
	Phase     Phase
	Message   string
	Exception abi.Value
}

// Error renders the kind description, the optional message in parentheses
// and a marker when a host exception is attached.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Kind.Description())

	if e.Message != "" {
		b.WriteString(" (")
		b.WriteString(e.Message)
		b.WriteByte(')')
	}

	if e.HasException() {
		b.WriteString(", JavaScript exception attached")
	}

	return b.String()
}

// HasException reports whether a host exception handle is attached.
func (e *Error) HasException() bool {
	return e.Exception != abi.Nil
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. An empty Phase on the
// target matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind && (t.Phase == "" || e.Phase == t.Phase)
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(kind Kind) *Builder {
	return &Builder{
		err: Error{
			Kind: kind,
		},
	}
}

// Phase sets where the error was raised
func (b *Builder) Phase(p Phase) *Builder {
	b.err.Phase = p
	return b
}

// Message sets the human-readable context
func (b *Builder) Message(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Message = fmt.Sprintf(msg, args...)
	} else {
		b.err.Message = msg
	}
	return b
}

// Exception attaches an already constructed host exception
func (b *Builder) Exception(v abi.Value) *Builder {
	b.err.Exception = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// FromStatus returns nil for abi.StatusOK and a host-phase Error otherwise.
// The error carries neither message nor exception.
func FromStatus(status abi.Status) error {
	if status == abi.StatusOK {
		return nil
	}
	return &Error{
		Kind:  KindFromStatus(status),
		Phase: PhaseHost,
	}
}

// Application wraps an exception handle created on behalf of application
// code.
func Application(exception abi.Value) *Error {
	return &Error{
		Kind:      KindApplication,
		Phase:     PhaseApplication,
		Exception: exception,
	}
}

// From converts any error to *Error. Errors from other packages become
// application errors whose message is the original text.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return &Error{
		Kind:    KindApplication,
		Phase:   PhaseApplication,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == k
}
