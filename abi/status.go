package abi

import "fmt"

// Status is the result code of a host call.
type Status int

const (
	StatusOK Status = iota
	StatusInvalidArg
	StatusObjectExpected
	StatusStringExpected
	StatusNameExpected
	StatusFunctionExpected
	StatusNumberExpected
	StatusBooleanExpected
	StatusArrayExpected
	StatusGenericFailure
	StatusPendingException
	StatusCancelled
	StatusEscapeCalledTwice
)

var statusNames = [...]string{
	StatusOK:                "ok",
	StatusInvalidArg:        "invalid_arg",
	StatusObjectExpected:    "object_expected",
	StatusStringExpected:    "string_expected",
	StatusNameExpected:      "name_expected",
	StatusFunctionExpected:  "function_expected",
	StatusNumberExpected:    "number_expected",
	StatusBooleanExpected:   "boolean_expected",
	StatusArrayExpected:     "array_expected",
	StatusGenericFailure:    "generic_failure",
	StatusPendingException:  "pending_exception",
	StatusCancelled:         "cancelled",
	StatusEscapeCalledTwice: "escape_called_twice",
}

// Valid reports whether s is one of the codes the host may return.
func (s Status) Valid() bool {
	return s >= StatusOK && s <= StatusEscapeCalledTwice
}

func (s Status) String() string {
	if s.Valid() {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", int(s))
}
