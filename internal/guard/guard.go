// Package guard wraps documented functions so that every call is checked
// against the argument count declared in the documentation comment, and
// every failure is reported through a diag.Module before it reaches the
// caller.
package guard

import (
	"fmt"
	"runtime/debug"
	"strings"

	"dbgdoc/internal/diag"
	"dbgdoc/internal/docmeta"
)

// ContextHeader starts every failure diagnostic.
const ContextHeader = "Error Has Occurred. Context is:\n"

// Callable is a documented function that can be invoked positionally.
type Callable interface {
	docmeta.Documented
	Invoke(args ...any) (any, error)
}

// Func adapts a plain function and its comment into a Callable.
type Func struct {
	Doc string
	Fn  func(args ...any) (any, error)
}

func (f Func) DocText() string { return f.Doc }

func (f Func) Invoke(args ...any) (any, error) { return f.Fn(args...) }

// ArityMismatchError is returned when a guarded call receives a different
// number of arguments than its comment declares.
type ArityMismatchError struct {
	Expected int
	Received int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("Expected Number of Args: %d Received: %d", e.Expected, e.Received)
}

// Guarded is a Callable produced by Wrap. It holds no state of its own.
type Guarded struct {
	fn     Callable
	module *diag.Module
}

// Wrap returns fn guarded by m.
func Wrap(fn Callable, m *diag.Module) *Guarded {
	return &Guarded{fn: fn, module: m}
}

// DocText returns the wrapped function's comment unchanged.
func (g *Guarded) DocText() string {
	return g.fn.DocText()
}

// Invoke checks the argument count, calls the wrapped function and returns
// its result. An arity mismatch, a returned error or a panic each produce
// exactly one diagnostic at the module's exception severity; the original
// error is then returned, or the original panic value re-panicked.
func (g *Guarded) Invoke(args ...any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.module.Logger().Error("guarded call panicked", "panic", r, "stack", string(debug.Stack()))
			g.report(args)
			panic(r)
		}
		if err != nil {
			g.report(args)
		}
	}()

	if declared := docmeta.CountDeclaredInputs(g.fn.DocText()); declared != len(args) {
		return nil, &ArityMismatchError{Expected: declared, Received: len(args)}
	}
	return g.fn.Invoke(args...)
}

// report never panics and never returns an error: a failure to build the
// diagnostic must not mask the error being reported.
func (g *Guarded) report(args []any) {
	defer func() {
		if r := recover(); r != nil {
			g.module.Logger().Error("diagnostic emission panicked", "panic", r)
		}
	}()

	emit := g.module.EmitterFor(g.module.ExceptionSeverity())
	if err := emit(g.fn, ContextHeader+FormatArgs(args)); err != nil {
		g.module.Logger().Warn("could not emit failure diagnostic", "error", err)
	}
}

// FormatArgs renders call arguments as a parenthesised, comma separated
// list of Go-syntax values, e.g. (1, "two").
func FormatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%#v", a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
