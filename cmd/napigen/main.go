// Command napigen generates typed trampoline registrations from a WIT-style
// interface declaration.
//
//	//go:generate go run github.com/wippyai/napi-runtime/cmd/napigen -in addon.wit -out addon_gen.go -pkg addon
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wippyai/napi-runtime/internal/codegen"
)

func main() {
	var (
		inFile  = flag.String("in", "", "Path to the declaration file")
		outFile = flag.String("out", "", "Output Go file (stdout when empty)")
		pkgName = flag.String("pkg", os.Getenv("GOPACKAGE"), "Package name of the generated file")
		name    = flag.String("name", "", "Interface name when the file declares none")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: napigen -in <file.wit> [-out file.go] [-pkg name] [-name iface]")
		os.Exit(1)
	}

	if err := run(*inFile, *outFile, *pkgName, *name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inFile, outFile, pkgName, name string) error {
	data, err := os.ReadFile(inFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(inFile), filepath.Ext(inFile))
	}

	iface, err := codegen.Parse(string(data), name)
	if err != nil {
		return fmt.Errorf("parse %s: %w", inFile, err)
	}

	src, err := codegen.Generate(iface, codegen.Options{
		Package: pkgName,
		Source:  filepath.Base(inFile),
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if outFile == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	return os.WriteFile(outFile, src, 0o644)
}
