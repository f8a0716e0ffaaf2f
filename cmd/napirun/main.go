// Command napirun loads the numeric example addon into a script runtime and
// calls its exports, runs a script against it, or browses it in a TUI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	napiruntime "github.com/wippyai/napi-runtime"
	"github.com/wippyai/napi-runtime/engine"
	"github.com/wippyai/napi-runtime/examples/addon"
	"github.com/wippyai/napi-runtime/internal/codegen"
	"github.com/wippyai/napi-runtime/runtime"
	"github.com/wippyai/napi-runtime/trampoline"
)

type argList []string

func (a *argList) String() string     { return strings.Join(*a, " ") }
func (a *argList) Set(v string) error { *a = append(*a, v); return nil }

func main() {
	var (
		scriptFile  = flag.String("script", "", "Script to run with the addon loaded")
		funcName    = flag.String("call", "", "Export to call")
		list        = flag.Bool("list", false, "List exported functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Development logging to stderr")
		workers     = flag.Int("workers", 0, "Goroutines for sumOfSquaresPar (0 = GOMAXPROCS)")
		version     = flag.Bool("version", false, "Print the version and exit")
		args        argList
	)
	flag.Var(&args, "arg", "Argument for -call (repeatable, list elements comma-separated)")
	flag.Parse()

	if *version {
		fmt.Println("napirun", napiruntime.Version)
		return
	}

	if *scriptFile == "" && *funcName == "" && !*list && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: napirun -list")
		fmt.Fprintln(os.Stderr, "       napirun -call <export> [-arg value ...]")
		fmt.Fprintln(os.Stderr, "       napirun -script <file.js>")
		fmt.Fprintln(os.Stderr, "       napirun -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		if err := setupLogging(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	iface, err := codegen.Parse(addon.Declarations, "numeric")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	impl := &addon.Addon{Workers: *workers}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(iface, impl); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(iface, impl, *scriptFile, *funcName, args, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging() error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	engine.SetLogger(logger.Named("engine"))
	trampoline.SetLogger(logger.Named("trampoline"))
	runtime.SetLogger(logger.Named("runtime"))
	return nil
}

func run(iface *codegen.Interface, impl *addon.Addon, scriptFile, funcName string, args []string, listOnly bool) error {
	ctx := context.Background()

	fmt.Printf("Addon: %s\n", iface.Name)
	fmt.Printf("\nExported functions:\n")
	for _, fn := range iface.Funcs {
		fmt.Printf("  %s\n", signature(fn))
	}

	if listOnly {
		return nil
	}

	rt, err := newRuntime(ctx, iface, impl)
	if err != nil {
		return err
	}
	defer rt.Close(ctx)

	if scriptFile != "" {
		src, err := os.ReadFile(scriptFile)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		fmt.Printf("\nRunning %s...\n", scriptFile)
		v, err := rt.RunScript(ctx, scriptFile, string(src))
		if err != nil {
			return fmt.Errorf("run %s: %w", scriptFile, err)
		}
		fmt.Printf("Result: %v\n", runtime.Export(v))
		return nil
	}

	fn, ok := lookup(iface, funcName)
	if !ok {
		return fmt.Errorf("no export named %q", funcName)
	}
	expr, err := callExpr(iface.Name, fn, args)
	if err != nil {
		return err
	}

	fmt.Printf("\nCalling %s...\n", expr)
	v, err := rt.Eval(ctx, expr)
	if err != nil {
		return fmt.Errorf("call %s: %w", fn.Symbol(), err)
	}
	fmt.Printf("Result: %v\n", runtime.Export(v))
	return nil
}

func newRuntime(ctx context.Context, iface *codegen.Interface, impl *addon.Addon) (*runtime.Runtime, error) {
	rt, err := runtime.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create runtime: %w", err)
	}
	if _, err := rt.LoadAddon(iface.Name, addon.NumericRegistry(impl)); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("load addon: %w", err)
	}
	return rt, nil
}
