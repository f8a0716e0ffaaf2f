package trampoline

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/napi-runtime/abi"
	"github.com/wippyai/napi-runtime/errors"
	"github.com/wippyai/napi-runtime/napi"
)

// Throw schedules err as the pending exception of the current call and
// returns the undefined handle, ready to be returned from a callback.
//
// An attached exception is rethrown as-is. An already pending exception is
// left in place. Anything else is thrown as a plain Error with err's text.
func Throw(env napi.Env, err error) abi.Value {
	e := errors.From(err)
	raw := env.Raw()

	switch {
	case e.HasException():
		if status := raw.Throw(e.Exception); status != abi.StatusOK {
			Logger().Warn("rethrow failed",
				zap.Stringer("status", status), zap.Error(e))
		}

	case pending(raw):
		Logger().Debug("exception already pending, leaving it in place", zap.Error(e))

	default:
		throwMessage(raw, e)
	}

	return undefined(env)
}

func throwMessage(raw abi.Env, e *errors.Error) {
	msg := e.Error()
	if !strings.ContainsRune(msg, 0) {
		if raw.ThrowError("", msg) == abi.StatusOK {
			return
		}
	}

	Logger().Warn("error message rejected by host, throwing kind description",
		zap.String("kind", string(e.Kind)))

	if status := raw.ThrowError("", e.Kind.Description()); status != abi.StatusOK {
		Logger().Warn("throw failed", zap.Stringer("status", status))
	}
}

func pending(raw abi.Env) bool {
	ok, status := raw.IsExceptionPending()
	return status == abi.StatusOK && ok
}

func undefined(env napi.Env) abi.Value {
	u, err := env.Undefined()
	if err != nil {
		return abi.Nil
	}
	return u.Raw()
}
