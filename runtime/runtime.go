package runtime

import (
	"context"
	stderrors "errors"
	"sort"
	"sync"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"go.uber.org/zap"

	"github.com/wippyai/napi-runtime/abi"
	"github.com/wippyai/napi-runtime/engine"
	"github.com/wippyai/napi-runtime/errors"
	"github.com/wippyai/napi-runtime/napi"
	"github.com/wippyai/napi-runtime/trampoline"
)

// Config holds configuration for runtime creation
type Config struct {
	// Engine configures the underlying host. nil means defaults.
	Engine *engine.Config

	// Console receives console.log/warn/error output. nil routes it to the
	// package logger.
	Console console.Printer
}

type Runtime struct {
	engine  *engine.GojaEngine
	modules *require.Registry
	addons  map[string]*Addon
	mu      sync.Mutex
	closed  bool
}

func New(ctx context.Context) (*Runtime, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates a runtime with custom configuration.
func NewWithConfig(ctx context.Context, cfg *Config) (*Runtime, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}

	eng, err := engine.NewGojaEngineWithConfig(c.Engine)
	if err != nil {
		return nil, errors.New(errors.KindGenericFailure).
			Phase(errors.PhaseHost).
			Message("create engine").
			Cause(err).
			Build()
	}

	r := &Runtime{
		engine:  eng,
		modules: new(require.Registry),
		addons:  make(map[string]*Addon),
	}

	printer := c.Console
	if printer == nil {
		printer = logPrinter{}
	}
	r.modules.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(printer))
	r.modules.Enable(eng.VM())

	if !eng.Config().DisableConsole {
		console.Enable(eng.VM())
	}

	return r, nil
}

// Close interrupts any running script and rejects further use.
func (r *Runtime) Close(ctx context.Context) error {
	r.engine.VM().Interrupt(errClosed)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.addons = nil
	return nil
}

var errClosed = stderrors.New("runtime closed")

// Engine returns the host engine. Use it only while no script is running.
func (r *Runtime) Engine() *engine.GojaEngine {
	return r.engine
}

// LoadAddon makes the callbacks in reg available to scripts as
// require(name). The exports object is built once, here; every require
// returns the same object.
func (r *Runtime) LoadAddon(name string, reg *trampoline.Registry) (*Addon, error) {
	if name == "" {
		return nil, errors.New(errors.KindInvalidArg).
			Phase(errors.PhaseHost).
			Message("addon name cannot be empty").
			Build()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.usable(); err != nil {
		return nil, err
	}
	if _, dup := r.addons[name]; dup {
		return nil, errors.New(errors.KindInvalidArg).
			Phase(errors.PhaseHost).
			Message("addon %q already loaded", name).
			Build()
	}

	v, err := r.engine.WithEnv(func(env abi.Env) abi.Value {
		exports, err := reg.Exports(napi.NewEnv(env))
		if err != nil {
			return trampoline.Throw(napi.NewEnv(env), err)
		}
		return exports.Raw()
	})
	if err != nil {
		return nil, wrapScriptError(name, err)
	}

	addon := &Addon{
		name:      name,
		runtime:   r,
		callbacks: reg,
		exports:   v.ToObject(r.engine.VM()),
	}
	r.addons[name] = addon

	r.modules.RegisterNativeModule(name, func(_ *goja.Runtime, module *goja.Object) {
		_ = module.Set("exports", addon.exports)
	})

	Logger().Debug("addon loaded",
		zap.String("addon", name),
		zap.Int("exports", reg.Len()))
	return addon, nil
}

// Addon returns a loaded addon by name.
func (r *Runtime) Addon(name string) (*Addon, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.addons[name]
	return a, ok
}

// Addons returns the names of all loaded addons, sorted.
func (r *Runtime) Addons() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.addons))
	for name := range r.addons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunScript evaluates src as a script named name. Cancelling ctx interrupts
// the script.
func (r *Runtime) RunScript(ctx context.Context, name, src string) (goja.Value, error) {
	var out goja.Value
	err := r.enter(ctx, name, func(vm *goja.Runtime) error {
		v, err := vm.RunScript(name, src)
		out = v
		return err
	})
	return out, err
}

// Eval is RunScript with an anonymous script name.
func (r *Runtime) Eval(ctx context.Context, src string) (goja.Value, error) {
	return r.RunScript(ctx, "<eval>", src)
}

// Call invokes an addon export with Go arguments converted by goja.
func (r *Runtime) Call(ctx context.Context, addon, fn string, args ...any) (goja.Value, error) {
	a, ok := r.Addon(addon)
	if !ok {
		return nil, errors.New(errors.KindInvalidArg).
			Phase(errors.PhaseHost).
			Message("addon %q not loaded", addon).
			Build()
	}
	return a.Call(ctx, fn, args...)
}

// Export converts a script value to its natural Go form.
func Export(v goja.Value) any {
	if v == nil {
		return nil
	}
	return v.Export()
}

// enter serializes access to the VM and wires ctx to goja's interrupt.
func (r *Runtime) enter(ctx context.Context, name string, fn func(vm *goja.Runtime) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.usable(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.New(errors.KindCancelled).Phase(errors.PhaseHost).Cause(err).Build()
	}

	vm := r.engine.VM()
	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer func() {
		stop()
		vm.ClearInterrupt()
	}()

	if err := fn(vm); err != nil {
		return wrapScriptError(name, err)
	}
	return nil
}

func (r *Runtime) usable() error {
	if r.closed {
		return errors.New(errors.KindInvalidArg).
			Phase(errors.PhaseHost).
			Cause(errClosed).
			Message("runtime closed").
			Build()
	}
	return nil
}
