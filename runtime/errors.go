package runtime

import (
	stderrors "errors"
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/napi-runtime/errors"
)

// ScriptError is a JavaScript exception that escaped a script or an addon
// call.
type ScriptError struct {
	Exception *goja.Exception
	Script    string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Script, e.Exception.Error())
}

// Unwrap returns the goja exception.
func (e *ScriptError) Unwrap() error {
	return e.Exception
}

// Value returns the thrown JavaScript value.
func (e *ScriptError) Value() goja.Value {
	return e.Exception.Value()
}

// wrapScriptError turns goja failures into ScriptError or a cancelled error.
// Other errors pass through.
func wrapScriptError(script string, err error) error {
	var exc *goja.Exception
	if stderrors.As(err, &exc) {
		Logger().Debug("script exception", zap.String("script", script), zap.Error(err))
		return &ScriptError{Exception: exc, Script: script}
	}

	var interrupted *goja.InterruptedError
	if stderrors.As(err, &interrupted) {
		cause := err
		if v, ok := interrupted.Value().(error); ok {
			cause = v
		}
		return errors.New(errors.KindCancelled).
			Phase(errors.PhaseHost).
			Message("%s interrupted", script).
			Cause(cause).
			Build()
	}

	return err
}
