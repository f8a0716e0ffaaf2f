package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/napi-runtime/internal/codegen"
)

func lookup(iface *codegen.Interface, name string) (codegen.Func, bool) {
	for _, fn := range iface.Funcs {
		if fn.Symbol() == name || fn.Name == name {
			return fn, true
		}
	}
	return codegen.Func{}, false
}

func signature(fn codegen.Func) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name + ": " + p.Type.JSName()
	}
	result := ""
	if fn.Result != nil {
		result = " -> " + fn.Result.JSName()
	}
	return fn.Symbol() + "(" + strings.Join(params, ", ") + ")" + result
}

// callExpr renders a script expression that calls fn on the addon loaded
// under module, with args parsed according to the declared parameter types.
// Argument count is not checked here so the trampoline reports it.
func callExpr(module string, fn codegen.Func, args []string) (string, error) {
	lits := make([]string, len(args))
	for i, a := range args {
		var t codegen.Type
		if i < len(fn.Params) {
			t = fn.Params[i].Type
		}
		lit, err := literal(a, t)
		if err != nil {
			name := fmt.Sprintf("arg%d", i)
			if i < len(fn.Params) {
				name = fn.Params[i].Name
			}
			return "", fmt.Errorf("%s: %w", name, err)
		}
		lits[i] = lit
	}

	mod, _ := json.Marshal(module)
	return fmt.Sprintf("require(%s).%s(%s)", mod, fn.Symbol(), strings.Join(lits, ", ")), nil
}

func literal(value string, t codegen.Type) (string, error) {
	if t.Elem == nil {
		return stringLiteral(value), nil
	}

	if t.List {
		var elems []string
		if strings.TrimSpace(value) != "" {
			for _, part := range strings.Split(value, ",") {
				n, err := numberLiteral(strings.TrimSpace(part))
				if err != nil {
					return "", err
				}
				elems = append(elems, n)
			}
		}
		ctor := t.JSName()
		if strings.HasPrefix(ctor, "Big") {
			for i, e := range elems {
				elems[i] = "BigInt(" + e + ")"
			}
		}
		return fmt.Sprintf("new %s([%s])", ctor, strings.Join(elems, ", ")), nil
	}

	switch t.JSName() {
	case "boolean":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("invalid boolean %q", value)
		}
		return strconv.FormatBool(b), nil
	case "number":
		return numberLiteral(value)
	default:
		return stringLiteral(value), nil
	}
}

func numberLiteral(s string) (string, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("invalid number %q", s)
	}
	switch {
	case math.IsInf(f, 1):
		return "Infinity", nil
	case math.IsInf(f, -1):
		return "-Infinity", nil
	case math.IsNaN(f):
		return "NaN", nil
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

func stringLiteral(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
