package runtime

import (
	"context"

	"github.com/dop251/goja"

	"github.com/wippyai/napi-runtime/errors"
	"github.com/wippyai/napi-runtime/trampoline"
)

// Addon is a loaded set of native callbacks.
type Addon struct {
	runtime   *Runtime
	callbacks *trampoline.Registry
	exports   *goja.Object
	name      string
}

func (a *Addon) Name() string {
	return a.name
}

// Exports returns the exported symbols, sorted.
func (a *Addon) Exports() []string {
	cbs := a.callbacks.Callbacks()
	out := make([]string, len(cbs))
	for i, cb := range cbs {
		out[i] = cb.Symbol()
	}
	return out
}

// Callback returns the trampoline exported under symbol.
func (a *Addon) Callback(symbol string) (*trampoline.Callback, bool) {
	return a.callbacks.Lookup(symbol)
}

// Object returns the exports object scripts receive from require.
func (a *Addon) Object() *goja.Object {
	return a.exports
}

// Call invokes the export fn with Go arguments converted by goja.
func (a *Addon) Call(ctx context.Context, fn string, args ...any) (goja.Value, error) {
	var out goja.Value
	err := a.runtime.enter(ctx, a.name+"."+fn, func(vm *goja.Runtime) error {
		callable, ok := goja.AssertFunction(a.exports.Get(fn))
		if !ok {
			return errors.New(errors.KindFunctionExpected).
				Phase(errors.PhaseHost).
				Message("%s has no export %q", a.name, fn).
				Build()
		}

		argv := make([]goja.Value, len(args))
		for i, arg := range args {
			argv[i] = vm.ToValue(arg)
		}

		v, err := callable(goja.Undefined(), argv...)
		out = v
		return err
	})
	return out, err
}
