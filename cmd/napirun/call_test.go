package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/napi-runtime/examples/addon"
	"github.com/wippyai/napi-runtime/internal/codegen"
	"github.com/wippyai/napi-runtime/runtime"
)

func parseAddon(t *testing.T) *codegen.Interface {
	t.Helper()
	iface, err := codegen.Parse(addon.Declarations, "numeric")
	require.NoError(t, err)
	return iface
}

func mustLookup(t *testing.T, iface *codegen.Interface, name string) codegen.Func {
	t.Helper()
	fn, ok := lookup(iface, name)
	require.True(t, ok, name)
	return fn
}

func TestLookup(t *testing.T) {
	iface := parseAddon(t)

	fn, ok := lookup(iface, "sumOfSquaresSeq")
	require.True(t, ok)
	assert.Equal(t, "sum-of-squares-seq", fn.Name)

	_, ok = lookup(iface, "sum-of-squares-par")
	assert.True(t, ok)

	_, ok = lookup(iface, "missing")
	assert.False(t, ok)
}

func TestSignature(t *testing.T) {
	iface := parseAddon(t)
	assert.Equal(t, "add(a: number, b: number) -> number", signature(mustLookup(t, iface, "add")))
	assert.Equal(t, "sumOfSquaresPar(values: Float64Array) -> number", signature(mustLookup(t, iface, "sumOfSquaresPar")))
	assert.Equal(t, "hello() -> string", signature(mustLookup(t, iface, "hello")))
}

func TestCallExpr(t *testing.T) {
	iface := parseAddon(t)

	tests := []struct {
		fn   string
		args []string
		want string
	}{
		{"hello", nil, `require("numeric").hello()`},
		{"greet", []string{`Ada "the first"`}, `require("numeric").greet("Ada \"the first\"")`},
		{"add", []string{"2", "-0.5"}, `require("numeric").add(2, -0.5)`},
		{"add", []string{"inf", "1"}, `require("numeric").add(Infinity, 1)`},
		{"add", []string{"1"}, `require("numeric").add(1)`},
		{"add", []string{"1", "2", "x"}, `require("numeric").add(1, 2, "x")`},
		{"sumOfSquaresSeq", []string{"1, 2,3"}, `require("numeric").sumOfSquaresSeq(new Float64Array([1, 2, 3]))`},
		{"sumOfSquaresSeq", []string{""}, `require("numeric").sumOfSquaresSeq(new Float64Array([]))`},
	}
	for _, tt := range tests {
		got, err := callExpr("numeric", mustLookup(t, iface, tt.fn), tt.args)
		require.NoError(t, err, tt.fn)
		assert.Equal(t, tt.want, got)
	}

	_, err := callExpr("numeric", mustLookup(t, iface, "add"), []string{"two", "1"})
	assert.EqualError(t, err, `a: invalid number "two"`)
}

func TestLiteral(t *testing.T) {
	boolType, err := codegen.Parse(`interface x { f: func(a: bool, b: list<s64>); }`, "")
	require.NoError(t, err)
	params := boolType.Funcs[0].Params

	lit, err := literal("true", params[0].Type)
	require.NoError(t, err)
	assert.Equal(t, "true", lit)

	_, err = literal("maybe", params[0].Type)
	assert.Error(t, err)

	lit, err = literal("1,2", params[1].Type)
	require.NoError(t, err)
	assert.Equal(t, "new BigInt64Array([BigInt(1), BigInt(2)])", lit)
}

func TestCallExpr_Evaluates(t *testing.T) {
	ctx := context.Background()
	iface := parseAddon(t)

	rt, err := newRuntime(ctx, iface, addon.New())
	require.NoError(t, err)
	defer rt.Close(ctx)

	expr, err := callExpr(iface.Name, mustLookup(t, iface, "sumOfSquaresPar"), []string{"1,2,3"})
	require.NoError(t, err)

	v, err := rt.Eval(ctx, expr)
	require.NoError(t, err)
	assert.Equal(t, 14.0, v.ToFloat())

	expr, err = callExpr(iface.Name, mustLookup(t, iface, "add"), []string{"1"})
	require.NoError(t, err)
	_, err = rt.Eval(ctx, expr)
	var se *runtime.ScriptError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "Expected 2 arguments, but got 1")
}
