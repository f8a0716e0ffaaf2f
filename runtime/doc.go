// Package runtime provides the high-level API for embedding native addons.
//
// # Quick Start
//
//	ctx := context.Background()
//	rt, err := runtime.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	// Build the addon
//	reg := trampoline.NewRegistry().MustRegister(
//	    trampoline.Func2("add", napi.CheckNumber, napi.CheckNumber, add),
//	)
//	if _, err := rt.LoadAddon("math", reg); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Use it from a script
//	v, err := rt.Eval(ctx, `require("math").add(2, 3)`)
//	fmt.Println(v) // 5
//
//	// Or call an export directly
//	v, err = rt.Call(ctx, "math", "add", 2, 3)
//
// # Addons
//
// An addon is a trampoline.Registry loaded under a name:
//
//	LoadAddon(name, registry)  - explicit registry
//	RegisterHost(host)         - every exported method of a struct
//
// Struct hosts implement Host. Method names become lowerCamelCase
// exports (SumOfSquares -> sumOfSquares). Implement ExplicitRegistrar to
// choose the names yourself.
//
// # Errors
//
// An exception that escapes a script or an export is returned as a
// *ScriptError holding the thrown value. Cancelling the context passed to
// RunScript, Eval or Call interrupts the script; the error then has kind
// errors.KindCancelled.
//
// # Console
//
// console.log and friends go to the package logger unless Config.Console
// supplies another printer. Set engine.Config.DisableConsole to leave the
// global undefined; require("console") keeps working.
//
// # Thread Safety
//
// Runtime is safe for concurrent use, but scripts run one at a time.
// The underlying engine is single-threaded.
package runtime
