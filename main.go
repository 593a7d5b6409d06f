package main

import (
	"embed"
	"fmt"
	"log"

	"dbgdoc/internal/diag"
	"dbgdoc/internal/extractor"
	"dbgdoc/internal/guard"
	"dbgdoc/internal/severity"
)

//go:embed main.go sample.go
var sources embed.FS

// Title: Debug Module Library
// Input: None
// Output: None
func main() {
	funcs, err := loadDocumented("main.go", "sample.go")
	if err != nil {
		log.Fatalf("Failed to load documented functions: %v", err)
	}

	dbg := diag.New("Debug Module Library", severity.RankOf("Critical"), severity.RankOf("Critical"))
	if err := dbg.Critical(funcs["main"], "Debug Module Functional"); err != nil {
		log.Fatalf("Failed to emit: %v", err)
	}

	greet := guard.Wrap(guard.Func{
		Doc: funcs["Greet"].Doc,
		Fn: func(args ...any) (any, error) {
			return Greet(args[0].(string), args[1].(int)), nil
		},
	}, dbg)
	divide := guard.Wrap(guard.Func{
		Doc: funcs["Divide"].Doc,
		Fn: func(args ...any) (any, error) {
			return Divide(args[0].(int), args[1].(int))
		},
	}, dbg)

	if out, err := greet.Invoke("gopher", 2); err == nil {
		fmt.Printf("✅ %v\n", out)
	}
	if _, err := greet.Invoke("gopher"); err != nil {
		fmt.Printf("⚠️  %v\n", err)
	}
	if _, err := divide.Invoke(1, 0); err != nil {
		fmt.Printf("⚠️  %v\n", err)
	}
}

// loadDocumented extracts every function declared in the embedded files.
func loadDocumented(names ...string) (map[string]*extractor.FunctionUnit, error) {
	ext, err := extractor.NewExtractor("go")
	if err != nil {
		return nil, err
	}
	funcs := make(map[string]*extractor.FunctionUnit)
	for _, name := range names {
		src, err := sources.ReadFile(name)
		if err != nil {
			return nil, err
		}
		units, err := ext.ExtractFromSource(src, name)
		if err != nil {
			return nil, err
		}
		for k, u := range extractor.Index(units) {
			funcs[k] = u
		}
	}
	return funcs, nil
}
