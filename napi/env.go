package napi

import (
	"github.com/wippyai/napi-runtime/abi"
	"github.com/wippyai/napi-runtime/errors"
)

// Env is the environment of one host call. It is a plain value and may be
// copied freely, but it must not outlive the callback it was handed to.
type Env struct {
	raw abi.Env
}

// NewEnv wraps a raw host environment.
func NewEnv(raw abi.Env) Env {
	return Env{raw: raw}
}

// Raw returns the wrapped host environment.
func (e Env) Raw() abi.Env {
	return e.raw
}

// Equal reports whether both handles refer to the same host environment.
func (e Env) Equal(other Env) bool {
	return e.raw == other.raw
}

// host returns the raw environment, substituting one that rejects every call
// when the Env is the zero value.
func (e Env) host() abi.Env {
	if e.raw == nil {
		return detachedEnv{}
	}
	return e.raw
}

// HandleStatus converts a host status into an error. StatusOK yields nil.
func (e Env) HandleStatus(status abi.Status) error {
	return errors.FromStatus(status)
}

// Undefined returns the host's undefined value.
func (e Env) Undefined() (Undefined, error) {
	raw, status := e.host().GetUndefined()
	if err := e.HandleStatus(status); err != nil {
		return Undefined{}, err
	}
	return Undefined{handle{env: e, raw: raw}}, nil
}

// Null returns the host's null value.
func (e Env) Null() (Null, error) {
	raw, status := e.host().GetNull()
	if err := e.HandleStatus(status); err != nil {
		return Null{}, err
	}
	return Null{handle{env: e, raw: raw}}, nil
}

// Global returns the host's global object.
func (e Env) Global() (Object, error) {
	raw, status := e.host().GetGlobal()
	if err := e.HandleStatus(status); err != nil {
		return Object{}, err
	}
	return Object{handle{env: e, raw: raw}}, nil
}

// IsExceptionPending reports whether a host exception is scheduled for the
// current call.
func (e Env) IsExceptionPending() (bool, error) {
	pending, status := e.host().IsExceptionPending()
	if err := e.HandleStatus(status); err != nil {
		return false, err
	}
	return pending, nil
}

// LastException removes and returns the pending exception. When nothing is
// pending the host reports undefined.
func (e Env) LastException() (Any, error) {
	raw, status := e.host().GetAndClearLastException()
	if err := e.HandleStatus(status); err != nil {
		return Any{}, err
	}
	return Any{handle{env: e, raw: raw}}, nil
}

type errorCtor func(env abi.Env, code, msg abi.Value) (abi.Value, abi.Status)

var (
	createError      errorCtor = abi.Env.CreateError
	createTypeError  errorCtor = abi.Env.CreateTypeError
	createRangeError errorCtor = abi.Env.CreateRangeError
)

// NewError creates a host Error with the given message and returns it
// attached to an application error.
func (e Env) NewError(msg string) *errors.Error {
	return e.newException(createError, errors.PhaseApplication, msg)
}

// NewTypeError is NewError for TypeError.
func (e Env) NewTypeError(msg string) *errors.Error {
	return e.newException(createTypeError, errors.PhaseApplication, msg)
}

// NewRangeError is NewError for RangeError.
func (e Env) NewRangeError(msg string) *errors.Error {
	return e.newException(createRangeError, errors.PhaseApplication, msg)
}

// newException builds the host throwable. If the host refuses, the host
// failure is returned instead; it carries no exception.
func (e Env) newException(ctor errorCtor, phase errors.Phase, msg string) *errors.Error {
	h := e.host()

	text, status := h.CreateStringUTF8([]byte(msg))
	if status != abi.StatusOK {
		return errors.From(e.HandleStatus(status))
	}

	exc, status := ctor(h, abi.Nil, text)
	if status != abi.StatusOK {
		return errors.From(e.HandleStatus(status))
	}

	return errors.New(errors.KindApplication).
		Phase(phase).
		Message("%s", msg).
		Exception(exc).
		Build()
}

// mismatch is the error returned by every Check constructor.
func (e Env) mismatch(expected string) error {
	return e.newException(createTypeError, errors.PhaseMarshal, expected+" expected")
}
