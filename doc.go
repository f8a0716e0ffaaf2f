// Package napiruntime is a type-safe native addon layer over a script engine.
//
// Native functions never see raw engine handles. Every argument is checked
// against its declared type before user code runs, and every Go error is
// turned back into a thrown script exception.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	napiruntime/         Root package with the module version
//	├── abi/             Host boundary: status codes, raw handles, the Env interface
//	├── errors/          Structured error kinds mirroring host status codes
//	├── napi/            Typed value views (Number, String, Object, TypedArray, ...)
//	├── trampoline/      Callback generator: arity check, conversion, throw protocol
//	├── engine/          goja-backed implementation of abi.Env
//	├── runtime/         High-level API: load addons, run scripts, call exports
//	├── internal/codegen WIT-style declarations to FuncN registrations
//	├── cmd/napigen/     go:generate front end for internal/codegen
//	└── cmd/napirun/     CLI and TUI for calling addon exports
//
// # Quick Start
//
// Define a function over typed views and load it as an addon:
//
//	func add(env napi.Env, a, b napi.Number) (napi.Number, error) {
//	    x, err := a.Float64()
//	    if err != nil {
//	        return napi.Number{}, err
//	    }
//	    y, err := b.Float64()
//	    if err != nil {
//	        return napi.Number{}, err
//	    }
//	    return napi.NewFloat64(env, x+y)
//	}
//
//	rt, err := runtime.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	reg := trampoline.NewRegistry().MustRegister(
//	    trampoline.Func2("add", napi.CheckNumber, napi.CheckNumber, add),
//	)
//	if _, err := rt.LoadAddon("math", reg); err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := rt.Eval(ctx, `require("math").add(2, 3)`)
//	fmt.Println(v) // 5
//
// Calling add with the wrong number of arguments throws a TypeError
// "Expected 2 arguments, but got 1"; passing a string throws
// "Number expected". Neither reaches the Go function.
//
// # Defining Callbacks
//
// Three front ends build the same trampoline.Callback:
//
//	trampoline.Build(symbol, params, handler)   untyped parameter list
//	trampoline.Func0 .. Func6                    typed generics
//	trampoline.Generate(symbol, fn)              reflection, checked once
//
// cmd/napigen emits FuncN registrations from a declaration file, see
// examples/addon.
//
// # Thread Safety
//
// Values and environments are valid only during the callback that received
// them. The engine rejects a retained handle with StatusInvalidArg. Runtime
// serializes script entry; the engine itself is single-threaded.
package napiruntime

// Version is the module version reported by the command line tools.
const Version = "0.1.0"
