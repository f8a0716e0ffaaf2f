package trampoline

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/napi-runtime/abi"
	"github.com/wippyai/napi-runtime/engine"
	"github.com/wippyai/napi-runtime/errors"
	"github.com/wippyai/napi-runtime/internal/abitest"
	"github.com/wippyai/napi-runtime/napi"
)

func newEngine(t *testing.T) *engine.GojaEngine {
	t.Helper()
	e, err := engine.NewGojaEngine()
	require.NoError(t, err)
	return e
}

// install exposes cb as a global and returns the probe observing its calls.
func install(t *testing.T, e *engine.GojaEngine, cb *Callback) *abitest.Probe {
	t.Helper()
	p := &abitest.Probe{}
	require.NoError(t, e.VM().Set(cb.Symbol(), e.NewFunction(cb.Symbol(), p.Wrap(cb.Entry()))))
	return p
}

func run(t *testing.T, e *engine.GojaEngine, src string) goja.Value {
	t.Helper()
	v, err := e.VM().RunString(src)
	require.NoError(t, err)
	return v
}

// caught runs src and returns the message of the error it throws.
func caught(t *testing.T, e *engine.GojaEngine, src string) string {
	t.Helper()
	_, err := e.VM().RunString(src)
	var exc *goja.Exception
	require.ErrorAs(t, err, &exc)
	return exc.Value().ToObject(e.VM()).Get("message").String()
}

func add(env napi.Env, a, b napi.Number) (napi.Number, error) {
	x, err := a.Float64()
	if err != nil {
		return napi.Number{}, err
	}
	y, err := b.Float64()
	if err != nil {
		return napi.Number{}, err
	}
	return napi.NewFloat64(env, x+y)
}

func TestFunc2_Add(t *testing.T) {
	e := newEngine(t)
	cb := Func2("add", napi.CheckNumber, napi.CheckNumber, add)
	install(t, e, cb)

	assert.Equal(t, 2, cb.Arity())
	assert.Equal(t, "add", cb.Symbol())
	assert.Equal(t, int64(5), run(t, e, "add(2, 3)").ToInteger())
	assert.Equal(t, int64(0), run(t, e, "add(-1, 1)").ToInteger())
	assert.Equal(t, 0.5, run(t, e, "add(0.25, 0.25)").ToFloat())
	assert.Zero(t, e.LiveHandles())
}

func TestCallback_ArityMismatch(t *testing.T) {
	e := newEngine(t)
	p := install(t, e, Func2("add", napi.CheckNumber, napi.CheckNumber, add))

	tests := []struct {
		call string
		want string
	}{
		{"add()", "Expected 2 arguments, but got 0"},
		{"add(1)", "Expected 2 arguments, but got 1"},
		{"add(1, 2, 3)", "Expected 2 arguments, but got 3"},
		{"add(1, 2, 3, 4, 5, 6, 7)", "Expected 2 arguments, but got 7"},
	}

	for _, tt := range tests {
		t.Run(tt.call, func(t *testing.T) {
			assert.Equal(t, tt.want, caught(t, e, tt.call))

			rec := p.Last()
			assert.Zero(t, rec.Count("Typeof"), "no argument may be converted")
			assert.Equal(t, 1, rec.Count("Throw"))
			assert.Zero(t, rec.Count("ThrowError"))
		})
	}

	typeErr := run(t, e, `try { add(); } catch (e) { e instanceof TypeError }`)
	assert.True(t, typeErr.ToBoolean())
}

func TestCallback_ArityZero(t *testing.T) {
	e := newEngine(t)
	install(t, e, Func0("hello", func(env napi.Env) (napi.String, error) {
		return napi.NewString(env, "world")
	}))

	assert.Equal(t, "world", run(t, e, "hello()").String())
	assert.Equal(t, "Expected 0 arguments, but got 1", caught(t, e, "hello(1)"))
}

func TestCallback_ConversionShortCircuits(t *testing.T) {
	e := newEngine(t)
	called := false
	p := install(t, e, Func3("f", napi.CheckNumber, napi.CheckString, napi.CheckNumber,
		func(env napi.Env, a napi.Number, b napi.String, c napi.Number) (napi.Number, error) {
			called = true
			return a, nil
		}))

	assert.Equal(t, "String expected", caught(t, e, `f(1, 2, "three")`))
	assert.False(t, called)
	assert.Equal(t, 2, p.Last().Count("Typeof"), "third argument must not be inspected")

	assert.Equal(t, "Number expected", caught(t, e, `f("one", "two", 3)`))
	assert.Equal(t, 1, p.Last().Count("Typeof"))
}

func TestCallback_ConversionErrorIsTypeError(t *testing.T) {
	e := newEngine(t)
	install(t, e, Func1("neg", napi.CheckNumber, func(env napi.Env, n napi.Number) (napi.Number, error) {
		f, err := n.Float64()
		if err != nil {
			return napi.Number{}, err
		}
		return napi.NewFloat64(env, -f)
	}))

	v := run(t, e, `try { neg({}); } catch (e) { (e instanceof TypeError) + ":" + e.message }`)
	assert.Equal(t, "true:Number expected", v.String())
}

func TestCallback_NilResultIsUndefined(t *testing.T) {
	e := newEngine(t)
	install(t, e, Build("noop", nil, func(napi.Env, []napi.Value) (napi.Value, error) {
		return nil, nil
	}))
	install(t, e, Func0("zero", func(napi.Env) (napi.Object, error) {
		return napi.Object{}, nil
	}))

	assert.True(t, goja.IsUndefined(run(t, e, "noop()")))
	assert.True(t, goja.IsUndefined(run(t, e, "zero()")))
}

func TestThrow_RethrowsAttachedException(t *testing.T) {
	e := newEngine(t)
	p := install(t, e, Func1("reject", napi.CheckAny, func(env napi.Env, v napi.Any) (napi.Value, error) {
		return nil, errors.Application(v.Raw())
	}))

	v := run(t, e, `
		const marker = { tag: "mine" };
		let got;
		try { reject(marker); } catch (e) { got = e; }
		got === marker;
	`)
	assert.True(t, v.ToBoolean())

	rec := p.Last()
	assert.Equal(t, 1, rec.Count("Throw"))
	assert.Zero(t, rec.Count("ThrowError"))
}

func TestThrow_RespectsPendingException(t *testing.T) {
	e := newEngine(t)
	p := install(t, e, Func1("invoke", napi.CheckFunction, func(env napi.Env, fn napi.Function) (napi.Value, error) {
		return fn.Call(nil)
	}))

	v := run(t, e, `
		const marker = new RangeError("from callee");
		let got;
		try { invoke(() => { throw marker; }); } catch (e) { got = e; }
		got === marker;
	`)
	assert.True(t, v.ToBoolean())

	rec := p.Last()
	assert.Zero(t, rec.Count("Throw"))
	assert.Zero(t, rec.Count("ThrowError"))
	assert.Equal(t, 1, rec.Count("IsExceptionPending"))
}

func TestThrow_GoError(t *testing.T) {
	e := newEngine(t)
	p := install(t, e, Func0("fail", func(napi.Env) (napi.Value, error) {
		return nil, fmt.Errorf("disk %s", "full")
	}))

	assert.Equal(t, "napi: application error (disk full)", caught(t, e, "fail()"))
	assert.Equal(t, []string{"napi: application error (disk full)"}, p.Last().Messages)
}

func TestThrow_HostStatusError(t *testing.T) {
	e := newEngine(t)
	install(t, e, Func0("fail", func(napi.Env) (napi.Value, error) {
		return nil, errors.FromStatus(abi.StatusGenericFailure)
	}))

	assert.Equal(t, "napi: generic failure", caught(t, e, "fail()"))
}

func TestThrow_MessageWithNULFallsBack(t *testing.T) {
	e := newEngine(t)
	p := install(t, e, Func0("fail", func(napi.Env) (napi.Value, error) {
		return nil, stderrors.New("bad\x00news")
	}))

	assert.Equal(t, "napi: application error", caught(t, e, "fail()"))
	assert.Equal(t, []string{"napi: application error"}, p.Last().Messages)
}

func TestThrow_HostRefusesMessage(t *testing.T) {
	e := newEngine(t)
	cb := Func0("fail", func(napi.Env) (napi.Value, error) {
		return nil, stderrors.New("boom")
	})
	p := &abitest.Probe{Faults: map[string]abi.Status{"ThrowError": abi.StatusGenericFailure}}
	require.NoError(t, e.VM().Set("fail", e.NewFunction("fail", p.Wrap(cb.Entry()))))

	v := run(t, e, "fail()")
	assert.True(t, goja.IsUndefined(v))
	assert.Equal(t, []string{"napi: application error (boom)", "napi: application error"}, p.Last().Messages)
}

func TestCallback_CbInfoFailure(t *testing.T) {
	e := newEngine(t)
	called := false
	cb := Func1("f", napi.CheckNumber, func(env napi.Env, n napi.Number) (napi.Number, error) {
		called = true
		return n, nil
	})
	p := &abitest.Probe{Faults: map[string]abi.Status{"GetCbInfo": abi.StatusGenericFailure}}
	require.NoError(t, e.VM().Set("f", e.NewFunction("f", p.Wrap(cb.Entry()))))

	assert.Equal(t, "napi: generic failure", caught(t, e, "f(1)"))
	assert.False(t, called)
	assert.Equal(t, 0, p.Last().Count("Typeof"))
}

func TestCallback_PanicBecomesException(t *testing.T) {
	e := newEngine(t)
	install(t, e, Func1("explode", napi.CheckNumber, func(env napi.Env, n napi.Number) (napi.Number, error) {
		panic("kaboom")
	}))

	assert.Equal(t, "napi: generic failure (panic: kaboom)", caught(t, e, "explode(1)"))

	v := run(t, e, `try { explode(1); "no" } catch (e) { e instanceof Error }`)
	assert.True(t, v.ToBoolean())
}

func TestThrow_ReturnsUndefined(t *testing.T) {
	e := newEngine(t)

	_, err := e.WithEnv(func(raw abi.Env) abi.Value {
		h := Throw(napi.NewEnv(raw), stderrors.New("x"))

		typ, status := raw.Typeof(h)
		assert.Equal(t, abi.StatusOK, status)
		assert.Equal(t, abi.Undefined, typ)

		pending, status := raw.IsExceptionPending()
		assert.Equal(t, abi.StatusOK, status)
		assert.True(t, pending)
		return h
	})

	var exc *goja.Exception
	require.ErrorAs(t, err, &exc)
}

func TestBuild_ParamsAreCopied(t *testing.T) {
	params := []Param{Check[napi.Number](napi.CheckNumber).Param("x")}
	cb := Build("id", params, func(env napi.Env, args []napi.Value) (napi.Value, error) {
		return args[0], nil
	})
	params[0].Name = "changed"

	got := cb.Params()
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].Name)

	got[0].Name = "again"
	assert.Equal(t, "x", cb.Params()[0].Name)
}

func TestFunc6(t *testing.T) {
	e := newEngine(t)
	n := napi.CheckNumber
	install(t, e, Func6("sum6", n, n, n, n, n, n,
		func(env napi.Env, a, b, c, d, x, y napi.Number) (napi.Number, error) {
			total := 0.0
			for _, v := range []napi.Number{a, b, c, d, x, y} {
				x, err := v.Float64()
				if err != nil {
					return napi.Number{}, err
				}
				total += x
			}
			return napi.NewFloat64(env, total)
		}))

	assert.Equal(t, int64(21), run(t, e, "sum6(1, 2, 3, 4, 5, 6)").ToInteger())
	assert.Equal(t, "Expected 6 arguments, but got 5", caught(t, e, "sum6(1, 2, 3, 4, 5)"))
}
