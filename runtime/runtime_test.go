package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/napi-runtime/engine"
	"github.com/wippyai/napi-runtime/errors"
	"github.com/wippyai/napi-runtime/napi"
	"github.com/wippyai/napi-runtime/trampoline"
)

func newRuntime(t *testing.T) *Runtime {
	t.Helper()
	ctx := context.Background()
	rt, err := New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(ctx) })
	return rt
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

func mathRegistry() *trampoline.Registry {
	return trampoline.NewRegistry().MustRegister(
		trampoline.Func2("add", napi.CheckNumber, napi.CheckNumber, add),
	)
}

func TestLoadAddon_Require(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)

	addon, err := rt.LoadAddon("math", mathRegistry())
	require.NoError(t, err)
	assert.Equal(t, "math", addon.Name())
	assert.Equal(t, []string{"add"}, addon.Exports())

	v, err := rt.Eval(ctx, `require("math").add(2, 3)`)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.ToInteger())

	same, err := rt.Eval(ctx, `require("math") === require("math")`)
	require.NoError(t, err)
	assert.True(t, same.ToBoolean())

	assert.Equal(t, []string{"math"}, rt.Addons())
}

func TestLoadAddon_Rejects(t *testing.T) {
	rt := newRuntime(t)

	_, err := rt.LoadAddon("", mathRegistry())
	assert.True(t, errors.IsKind(err, errors.KindInvalidArg))

	_, err = rt.LoadAddon("math", mathRegistry())
	require.NoError(t, err)
	_, err = rt.LoadAddon("math", mathRegistry())
	assert.True(t, errors.IsKind(err, errors.KindInvalidArg))
}

func TestCall(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)
	_, err := rt.LoadAddon("math", mathRegistry())
	require.NoError(t, err)

	v, err := rt.Call(ctx, "math", "add", -1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.ToInteger())

	_, err = rt.Call(ctx, "math", "sub", 1, 1)
	assert.True(t, errors.IsKind(err, errors.KindFunctionExpected))

	_, err = rt.Call(ctx, "nope", "add", 1, 1)
	assert.True(t, errors.IsKind(err, errors.KindInvalidArg))
}

func TestCall_ArityErrorIsScriptError(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)
	_, err := rt.LoadAddon("math", mathRegistry())
	require.NoError(t, err)

	_, err = rt.Call(ctx, "math", "add", 1)
	var se *ScriptError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "math.add", se.Script)
	assert.Contains(t, se.Error(), "Expected 2 arguments, but got 1")

	obj := se.Value().ToObject(rt.Engine().VM())
	assert.Equal(t, "TypeError", obj.Get("name").String())
}

func TestRunScript_Exception(t *testing.T) {
	rt := newRuntime(t)

	_, err := rt.RunScript(context.Background(), "boom.js", `throw new RangeError("nope")`)
	var se *ScriptError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "boom.js", se.Script)
	assert.Contains(t, se.Error(), "RangeError: nope")
}

func TestRunScript_Cancelled(t *testing.T) {
	rt := newRuntime(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := rt.RunScript(ctx, "loop.js", `for (;;) {}`)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindCancelled))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The interrupt does not leak into the next script.
	v, err := rt.Eval(context.Background(), "1 + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.ToInteger())
}

func TestRunScript_AlreadyCancelled(t *testing.T) {
	rt := newRuntime(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rt.Eval(ctx, "1")
	assert.True(t, errors.IsKind(err, errors.KindCancelled))
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	rt, err := New(ctx)
	require.NoError(t, err)
	require.NoError(t, rt.Close(ctx))

	_, err = rt.Eval(ctx, "1")
	assert.True(t, errors.IsKind(err, errors.KindInvalidArg))

	_, err = rt.LoadAddon("math", mathRegistry())
	assert.True(t, errors.IsKind(err, errors.KindInvalidArg))
}

type recordingPrinter struct {
	logs, warns, errs []string
}

func (p *recordingPrinter) Log(s string)   { p.logs = append(p.logs, s) }
func (p *recordingPrinter) Warn(s string)  { p.warns = append(p.warns, s) }
func (p *recordingPrinter) Error(s string) { p.errs = append(p.errs, s) }

func TestConsole(t *testing.T) {
	ctx := context.Background()
	p := &recordingPrinter{}
	rt, err := NewWithConfig(ctx, &Config{Console: p})
	require.NoError(t, err)
	defer rt.Close(ctx)

	_, err = rt.Eval(ctx, `console.log("hello", 1); console.warn("careful"); console.error("bad")`)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello 1"}, p.logs)
	assert.Equal(t, []string{"careful"}, p.warns)
	assert.Equal(t, []string{"bad"}, p.errs)
}

func TestConsole_Disabled(t *testing.T) {
	ctx := context.Background()
	p := &recordingPrinter{}
	rt, err := NewWithConfig(ctx, &Config{
		Engine:  &engine.Config{DisableConsole: true},
		Console: p,
	})
	require.NoError(t, err)
	defer rt.Close(ctx)

	v, err := rt.Eval(ctx, `typeof console`)
	require.NoError(t, err)
	assert.Equal(t, "undefined", v.String())

	_, err = rt.Eval(ctx, `require("console").log("still here")`)
	require.NoError(t, err)
	assert.Equal(t, []string{"still here"}, p.logs)
}

func TestExport(t *testing.T) {
	rt := newRuntime(t)

	v, err := rt.Eval(context.Background(), `({a: 1, b: [true, "x"]})`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1), "b": []any{true, "x"}}, Export(v))
	assert.Nil(t, Export(nil))
}
