package napi

import (
	"math"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/napi-runtime/abi"
	"github.com/wippyai/napi-runtime/engine"
	"github.com/wippyai/napi-runtime/errors"
)

func newEngine(t *testing.T) *engine.GojaEngine {
	t.Helper()
	e, err := engine.NewGojaEngine()
	require.NoError(t, err)
	return e
}

// within runs fn inside one host call and returns whatever fn returns.
func within(t *testing.T, e *engine.GojaEngine, fn func(env Env) Value) goja.Value {
	t.Helper()
	v, err := e.WithEnv(func(raw abi.Env) abi.Value {
		env := NewEnv(raw)
		if out := fn(env); out != nil {
			return out.Raw()
		}
		u, err := env.Undefined()
		require.NoError(t, err)
		return u.Raw()
	})
	require.NoError(t, err)
	return v
}

// args evaluates the JavaScript argument list src and hands the resulting
// handles to fn.
func args(t *testing.T, e *engine.GojaEngine, src string, fn func(env Env, argv []abi.Value)) {
	t.Helper()
	cb := func(raw abi.Env, info abi.CallbackInfo) abi.Value {
		argv := make([]abi.Value, 8)
		n, _, status := raw.GetCbInfo(info, argv)
		require.Equal(t, abi.StatusOK, status)
		env := NewEnv(raw)
		fn(env, argv[:n])
		u, _ := env.Undefined()
		return u.Raw()
	}
	require.NoError(t, e.VM().Set("inspect", e.NewFunction("inspect", cb)))
	_, err := e.VM().RunString("inspect(" + src + ")")
	require.NoError(t, err)
}

func message(t *testing.T, err error) string {
	t.Helper()
	var ne *errors.Error
	require.ErrorAs(t, err, &ne)
	require.True(t, ne.HasException(), "mismatch must carry a TypeError")
	return ne.Message
}

func TestCheck_Totality(t *testing.T) {
	e := newEngine(t)

	type check struct {
		name string
		fn   func(Env, abi.Value) error
	}
	checks := []check{
		{"Undefined", func(env Env, v abi.Value) error { _, err := CheckUndefined(env, v); return err }},
		{"Null", func(env Env, v abi.Value) error { _, err := CheckNull(env, v); return err }},
		{"Boolean", func(env Env, v abi.Value) error { _, err := CheckBoolean(env, v); return err }},
		{"Number", func(env Env, v abi.Value) error { _, err := CheckNumber(env, v); return err }},
		{"String", func(env Env, v abi.Value) error { _, err := CheckString(env, v); return err }},
		{"Object", func(env Env, v abi.Value) error { _, err := CheckObject(env, v); return err }},
		{"Array", func(env Env, v abi.Value) error { _, err := CheckArray(env, v); return err }},
		{"Function", func(env Env, v abi.Value) error { _, err := CheckFunction(env, v); return err }},
		{"ArrayBuffer", func(env Env, v abi.Value) error { _, err := CheckArrayBuffer(env, v); return err }},
		{"Buffer", func(env Env, v abi.Value) error { _, err := CheckBuffer(env, v); return err }},
		{"TypedArray", func(env Env, v abi.Value) error { _, err := CheckTypedArray[uint8](env, v); return err }},
	}

	// Each input is accepted by exactly the listed checks.
	inputs := []struct {
		src    string
		accept []string
	}{
		{"undefined", []string{"Undefined"}},
		{"null", []string{"Null"}},
		{"true", []string{"Boolean"}},
		{"1.5", []string{"Number"}},
		{"NaN", []string{"Number"}},
		{`"s"`, []string{"String"}},
		{"({})", []string{"Object"}},
		{"[1, 2]", []string{"Object", "Array"}},
		{"() => 1", []string{"Function"}},
		{"new ArrayBuffer(4)", []string{"Object", "ArrayBuffer"}},
		{"Buffer.alloc(4)", []string{"Object", "Buffer", "TypedArray"}},
		{"new Uint8Array(4)", []string{"Object", "TypedArray"}},
		{"Symbol('x')", nil},
	}

	for _, in := range inputs {
		t.Run(in.src, func(t *testing.T) {
			args(t, e, in.src, func(env Env, argv []abi.Value) {
				require.Len(t, argv, 1)
				for _, c := range checks {
					err := c.fn(env, argv[0])
					if contains(in.accept, c.name) {
						assert.NoError(t, err, c.name)
						continue
					}
					require.Error(t, err, c.name)
					assert.Equal(t, c.name+" expected", message(t, err))
					assert.True(t, errors.IsKind(err, errors.KindApplication))
				}
			})
		})
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestCheck_MismatchIsTypeError(t *testing.T) {
	e := newEngine(t)

	args(t, e, `"nope"`, func(env Env, argv []abi.Value) {
		_, err := CheckNumber(env, argv[0])
		require.Error(t, err)

		var ne *errors.Error
		require.ErrorAs(t, err, &ne)
		assert.Equal(t, errors.PhaseMarshal, ne.Phase)

		exc, err := CheckObject(env, ne.Exception)
		require.NoError(t, err)
		ctor, err := exc.GetNamed("name")
		require.NoError(t, err)
		name, err := ctor.AsString()
		require.NoError(t, err)
		text, err := name.Text()
		require.NoError(t, err)
		assert.Equal(t, "TypeError", text)
	})
}

func TestAny_Downcasts(t *testing.T) {
	e := newEngine(t)

	args(t, e, `42, "x"`, func(env Env, argv []abi.Value) {
		a, err := CheckAny(env, argv[0])
		require.NoError(t, err)

		n, err := a.AsNumber()
		require.NoError(t, err)
		i, err := n.Int32()
		require.NoError(t, err)
		assert.Equal(t, int32(42), i)

		_, err = a.AsString()
		assert.Error(t, err)

		s, err := CheckAny(env, argv[1])
		require.NoError(t, err)
		_, err = s.AsString()
		assert.NoError(t, err)
		_, err = s.AsObject()
		assert.Error(t, err)
	})
}

func TestNumber_RoundTrip(t *testing.T) {
	e := newEngine(t)

	within(t, e, func(env Env) Value {
		n, err := NewInt32(env, math.MinInt32)
		require.NoError(t, err)
		i, err := n.Int32()
		require.NoError(t, err)
		assert.Equal(t, int32(math.MinInt32), i)

		u, err := NewUint32(env, math.MaxUint32)
		require.NoError(t, err)
		got, err := u.Uint32()
		require.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32), got)

		for _, want := range []int64{1<<53 - 1, -(1<<53 - 1), 1 << 53} {
			big, err := NewInt64(env, want)
			require.NoError(t, err)
			i64, err := big.Int64()
			require.NoError(t, err)
			assert.Equal(t, want, i64)
		}

		// Outside the safe integer range values round to the nearest double.
		lossy, err := NewInt64(env, 1<<53+1)
		require.NoError(t, err)
		i64, err := lossy.Int64()
		require.NoError(t, err)
		assert.Equal(t, int64(1<<53), i64)

		f, err := NewFloat64(env, math.Inf(-1))
		require.NoError(t, err)
		x, err := f.Float64()
		require.NoError(t, err)
		assert.True(t, math.IsInf(x, -1))

		typ, err := f.ValueType()
		require.NoError(t, err)
		assert.Equal(t, abi.Number, typ)
		return nil
	})
}

func TestBoolean(t *testing.T) {
	e := newEngine(t)

	within(t, e, func(env Env) Value {
		yes, err := True(env)
		require.NoError(t, err)
		no, err := False(env)
		require.NoError(t, err)

		b, err := yes.Bool()
		require.NoError(t, err)
		assert.True(t, b)
		b, err = no.Bool()
		require.NoError(t, err)
		assert.False(t, b)

		again, err := NewBoolean(env, true)
		require.NoError(t, err)
		same, err := again.StrictEquals(yes)
		require.NoError(t, err)
		assert.True(t, same)
		return nil
	})
}

func TestNull_UndefinedIsNotNull(t *testing.T) {
	e := newEngine(t)

	within(t, e, func(env Env) Value {
		u, err := env.Undefined()
		require.NoError(t, err)
		_, err = CheckNull(env, u.Raw())
		assert.Equal(t, "Null expected", message(t, err))

		n, err := env.Null()
		require.NoError(t, err)
		_, err = CheckNull(env, n.Raw())
		assert.NoError(t, err)
		return nil
	})
}

func TestCoercion(t *testing.T) {
	e := newEngine(t)

	args(t, e, `"12.5", 0, null`, func(env Env, argv []abi.Value) {
		s, err := CheckString(env, argv[0])
		require.NoError(t, err)
		n, err := s.ToNumber()
		require.NoError(t, err)
		f, err := n.Float64()
		require.NoError(t, err)
		assert.Equal(t, 12.5, f)

		zero, err := CheckNumber(env, argv[1])
		require.NoError(t, err)
		b, err := zero.ToBoolean()
		require.NoError(t, err)
		truthy, err := b.Bool()
		require.NoError(t, err)
		assert.False(t, truthy)

		str, err := zero.ToString()
		require.NoError(t, err)
		text, err := str.Text()
		require.NoError(t, err)
		assert.Equal(t, "0", text)

		null, err := CheckNull(env, argv[2])
		require.NoError(t, err)
		_, err = null.ToObject()
		assert.True(t, errors.IsKind(err, errors.KindPendingException))

		exc, err := env.LastException()
		require.NoError(t, err)
		isErr, err := exc.IsError()
		require.NoError(t, err)
		assert.True(t, isErr)
	})
}

func TestInstanceOfAndPredicates(t *testing.T) {
	e := newEngine(t)

	args(t, e, `new RangeError("r"), RangeError, new DataView(new ArrayBuffer(2))`, func(env Env, argv []abi.Value) {
		errObj, err := CheckObject(env, argv[0])
		require.NoError(t, err)
		ctor, err := CheckFunction(env, argv[1])
		require.NoError(t, err)

		ok, err := errObj.InstanceOf(ctor.AsObject())
		require.NoError(t, err)
		assert.True(t, ok)

		isErr, err := errObj.IsError()
		require.NoError(t, err)
		assert.True(t, isErr)

		dv, err := CheckObject(env, argv[2])
		require.NoError(t, err)
		isDV, err := dv.IsDataView()
		require.NoError(t, err)
		assert.True(t, isDV)
		isTA, err := dv.IsTypedArray()
		require.NoError(t, err)
		assert.False(t, isTA)
	})
}

func TestZeroValueViewsFail(t *testing.T) {
	var n Number
	_, err := n.Float64()
	assert.True(t, errors.IsKind(err, errors.KindInvalidArg))

	var o Object
	_, err = o.GetNamed("x")
	assert.True(t, errors.IsKind(err, errors.KindInvalidArg))

	var s String
	_, err = s.Text()
	assert.True(t, errors.IsKind(err, errors.KindInvalidArg))

	var env Env
	_, err = env.Global()
	assert.True(t, errors.IsKind(err, errors.KindInvalidArg))

	_, err = CheckNumber(env, abi.Nil)
	assert.True(t, errors.IsKind(err, errors.KindInvalidArg))

	ne := env.NewError("x")
	assert.Equal(t, errors.KindInvalidArg, ne.Kind)
	assert.False(t, ne.HasException())
}

func TestEnv_Equal(t *testing.T) {
	e := newEngine(t)

	var first Env
	within(t, e, func(env Env) Value {
		first = env
		assert.True(t, env.Equal(NewEnv(env.Raw())))
		return nil
	})
	within(t, e, func(env Env) Value {
		assert.False(t, env.Equal(first))
		return nil
	})
}

func TestEnv_LastException(t *testing.T) {
	e := newEngine(t)

	within(t, e, func(env Env) Value {
		pending, err := env.IsExceptionPending()
		require.NoError(t, err)
		assert.False(t, pending)

		exc := env.NewRangeError("out of range")
		require.True(t, exc.HasException())
		assert.Equal(t, "out of range", exc.Message)
		assert.Equal(t, errors.PhaseApplication, exc.Phase)

		require.Equal(t, abi.StatusOK, env.Raw().Throw(exc.Exception))
		pending, err = env.IsExceptionPending()
		require.NoError(t, err)
		assert.True(t, pending)

		last, err := env.LastException()
		require.NoError(t, err)
		obj, err := last.AsObject()
		require.NoError(t, err)
		same, err := obj.StrictEquals(Any{handle{env: env, raw: exc.Exception}})
		require.NoError(t, err)
		assert.True(t, same)

		pending, err = env.IsExceptionPending()
		require.NoError(t, err)
		assert.False(t, pending)
		return nil
	})
}
