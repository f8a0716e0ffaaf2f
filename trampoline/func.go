package trampoline

import (
	"strconv"

	"github.com/wippyai/napi-runtime/abi"
	"github.com/wippyai/napi-runtime/napi"
)

// Check is the signature shared by the napi Check constructors, so
// napi.CheckNumber, napi.CheckString and CheckTypedArray[T] can be passed
// directly.
type Check[T napi.Value] func(env napi.Env, raw abi.Value) (T, error)

// Param returns a parameter that validates with check.
func (c Check[T]) Param(name string) Param {
	return Param{
		Name: name,
		Convert: func(env napi.Env, raw abi.Value) (napi.Value, error) {
			v, err := c(env, raw)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

func arg(i int) string {
	return "arg" + strconv.Itoa(i)
}

// Func0 builds a trampoline for a function without parameters.
func Func0[R napi.Value](symbol string, fn func(napi.Env) (R, error)) *Callback {
	return Build(symbol, nil, func(env napi.Env, _ []napi.Value) (napi.Value, error) {
		return fn(env)
	})
}

// Func1 builds a trampoline for a one-parameter function.
func Func1[A, R napi.Value](symbol string, ca Check[A], fn func(napi.Env, A) (R, error)) *Callback {
	params := []Param{ca.Param(arg(0))}
	return Build(symbol, params, func(env napi.Env, args []napi.Value) (napi.Value, error) {
		return fn(env, args[0].(A))
	})
}

// Func2 builds a trampoline for a two-parameter function.
func Func2[A, B, R napi.Value](symbol string, ca Check[A], cb Check[B], fn func(napi.Env, A, B) (R, error)) *Callback {
	params := []Param{ca.Param(arg(0)), cb.Param(arg(1))}
	return Build(symbol, params, func(env napi.Env, args []napi.Value) (napi.Value, error) {
		return fn(env, args[0].(A), args[1].(B))
	})
}

// Func3 builds a trampoline for a three-parameter function.
func Func3[A, B, C, R napi.Value](symbol string, ca Check[A], cb Check[B], cc Check[C], fn func(napi.Env, A, B, C) (R, error)) *Callback {
	params := []Param{ca.Param(arg(0)), cb.Param(arg(1)), cc.Param(arg(2))}
	return Build(symbol, params, func(env napi.Env, args []napi.Value) (napi.Value, error) {
		return fn(env, args[0].(A), args[1].(B), args[2].(C))
	})
}

// Func4 builds a trampoline for a four-parameter function.
func Func4[A, B, C, D, R napi.Value](symbol string, ca Check[A], cb Check[B], cc Check[C], cd Check[D], fn func(napi.Env, A, B, C, D) (R, error)) *Callback {
	params := []Param{ca.Param(arg(0)), cb.Param(arg(1)), cc.Param(arg(2)), cd.Param(arg(3))}
	return Build(symbol, params, func(env napi.Env, args []napi.Value) (napi.Value, error) {
		return fn(env, args[0].(A), args[1].(B), args[2].(C), args[3].(D))
	})
}

// Func5 builds a trampoline for a five-parameter function.
func Func5[A, B, C, D, E, R napi.Value](symbol string, ca Check[A], cb Check[B], cc Check[C], cd Check[D], ce Check[E], fn func(napi.Env, A, B, C, D, E) (R, error)) *Callback {
	params := []Param{ca.Param(arg(0)), cb.Param(arg(1)), cc.Param(arg(2)), cd.Param(arg(3)), ce.Param(arg(4))}
	return Build(symbol, params, func(env napi.Env, args []napi.Value) (napi.Value, error) {
		return fn(env, args[0].(A), args[1].(B), args[2].(C), args[3].(D), args[4].(E))
	})
}

// Func6 builds a trampoline for a six-parameter function. Functions with
// more parameters go through Build or Generate.
func Func6[A, B, C, D, E, F, R napi.Value](symbol string, ca Check[A], cb Check[B], cc Check[C], cd Check[D], ce Check[E], cf Check[F], fn func(napi.Env, A, B, C, D, E, F) (R, error)) *Callback {
	params := []Param{ca.Param(arg(0)), cb.Param(arg(1)), cc.Param(arg(2)), cd.Param(arg(3)), ce.Param(arg(4)), cf.Param(arg(5))}
	return Build(symbol, params, func(env napi.Env, args []napi.Value) (napi.Value, error) {
		return fn(env, args[0].(A), args[1].(B), args[2].(C), args[3].(D), args[4].(E), args[5].(F))
	})
}
