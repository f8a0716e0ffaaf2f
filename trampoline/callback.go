package trampoline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/napi-runtime/abi"
	"github.com/wippyai/napi-runtime/errors"
	"github.com/wippyai/napi-runtime/napi"
)

// Converter validates one argument handle and wraps it in a view.
type Converter func(env napi.Env, raw abi.Value) (napi.Value, error)

// Param is one declared parameter.
type Param struct {
	Name    string
	Convert Converter
}

// Handler receives the converted arguments in declaration order.
// A nil or zero-value result with a nil error returns undefined.
type Handler func(env napi.Env, args []napi.Value) (napi.Value, error)

// Callback is a generated trampoline.
type Callback struct {
	handler Handler
	symbol  string
	params  []Param
}

// Build assembles a trampoline. The parameter list is fixed at build time;
// the returned Callback is immutable.
func Build(symbol string, params []Param, handler Handler) *Callback {
	return &Callback{
		symbol:  symbol,
		params:  append([]Param(nil), params...),
		handler: handler,
	}
}

// Symbol returns the name the callback is exported under.
func (c *Callback) Symbol() string {
	return c.symbol
}

// Arity returns the number of arguments the callback requires.
func (c *Callback) Arity() int {
	return len(c.params)
}

// Params returns a copy of the parameter list.
func (c *Callback) Params() []Param {
	return append([]Param(nil), c.params...)
}

// Entry returns the host entry point.
func (c *Callback) Entry() abi.Callback {
	return c.invoke
}

// invoke never lets a handler panic reach the host; it becomes a
// generic_failure exception.
func (c *Callback) invoke(raw abi.Env, info abi.CallbackInfo) (ret abi.Value) {
	env := napi.NewEnv(raw)
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("callback panicked",
				zap.String("symbol", c.symbol), zap.Any("panic", r))
			ret = Throw(env, errors.New(errors.KindGenericFailure).
				Phase(errors.PhaseApplication).
				Message("panic: %v", r).
				Build())
		}
	}()

	result, err := c.run(env, info)
	if err != nil {
		return Throw(env, err)
	}
	if result == nil || result.Raw() == abi.Nil {
		return undefined(env)
	}
	return result.Raw()
}

func (c *Callback) run(env napi.Env, info abi.CallbackInfo) (napi.Value, error) {
	n := len(c.params)
	argv := make([]abi.Value, n)

	argc, _, status := env.Raw().GetCbInfo(info, argv)
	if err := env.HandleStatus(status); err != nil {
		return nil, err
	}

	if argc != n {
		err := env.NewTypeError(fmt.Sprintf("Expected %d arguments, but got %d", n, argc))
		err.Phase = errors.PhaseMarshal
		return nil, err
	}

	args := make([]napi.Value, n)
	for i, p := range c.params {
		v, err := p.Convert(env, argv[i])
		if err != nil {
			Logger().Debug("argument rejected",
				zap.String("symbol", c.symbol),
				zap.Int("index", i),
				zap.String("param", p.Name),
				zap.Error(err))
			return nil, err
		}
		args[i] = v
	}

	return c.handler(env, args)
}
