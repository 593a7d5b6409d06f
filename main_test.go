package main

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"dbgdoc/internal/diag"
	"dbgdoc/internal/docmeta"
	"dbgdoc/internal/guard"
	"dbgdoc/internal/severity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocumented(t *testing.T) {
	funcs, err := loadDocumented("main.go", "sample.go")
	require.NoError(t, err)

	title, err := docmeta.ExtractTitle(funcs["main"].Doc)
	require.NoError(t, err)
	assert.Equal(t, "Function: Debug Module Library", title)
	assert.Equal(t, 0, docmeta.CountDeclaredInputs(funcs["main"].Doc))
	assert.Equal(t, 2, docmeta.CountDeclaredInputs(funcs["Divide"].Doc))
}

func TestGuardedDivide(t *testing.T) {
	funcs, err := loadDocumented("sample.go")
	require.NoError(t, err)

	var out bytes.Buffer
	m := diag.New("Debug Module Library", severity.High, severity.Critical,
		diag.WithWriter(&out),
		diag.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	divide := guard.Wrap(guard.Func{
		Doc: funcs["Divide"].Doc,
		Fn: func(args ...any) (any, error) {
			return Divide(args[0].(int), args[1].(int))
		},
	}, m)

	got, err := divide.Invoke(9, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Empty(t, out.String())

	_, err = divide.Invoke(1, 0)
	assert.Same(t, errDivideByZero, err)
	assert.Equal(t, "Module: Debug Module Library\nFunction: Divide Two Integers\n\tError Has Occurred. Context is:\n\t(1, 0)\n", out.String())
}
