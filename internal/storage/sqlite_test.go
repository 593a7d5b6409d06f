package storage

import (
	"context"
	"path/filepath"
	"testing"

	"dbgdoc/internal/audit"
	"dbgdoc/internal/severity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_SaveSnapshot_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	a := testRecord("go/p:A:1", "A", "file_a.go", 3)
	a.Title = "Function: A"
	b := testRecord("go/p:B:1", "B", "file_a.go", 12)
	b.Variadic = true
	findings := []audit.Finding{
		{UnitID: b.ID, Function: "B", Filepath: "file_a.go", Line: 12, Kind: audit.Variadic, Severity: severity.Low, Message: "variadic"},
		{UnitID: a.ID, Function: "A", Filepath: "file_a.go", Line: 3, Kind: audit.ArityMismatch, Severity: severity.Medium, Message: "mismatch"},
	}
	require.NoError(t, store.SaveSnapshot(ctx, []audit.Record{a, b}, findings))

	got, err := store.GetFunction(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, *got)

	byFile, err := store.FindFunctionsByFile(ctx, "file_a.go")
	require.NoError(t, err)
	require.Len(t, byFile, 2)
	assert.Equal(t, "A", byFile[0].Function)
	assert.True(t, byFile[1].Variadic)

	loaded, err := store.ListFindings(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, findings[1], loaded[0], "ordered by line")
	assert.Equal(t, findings[0], loaded[1])
}

func TestSQLiteStore_SaveSnapshot_Replaces(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	x := testRecord("x", "X", "file_x.go", 1)
	require.NoError(t, store.SaveSnapshot(ctx, []audit.Record{x}, []audit.Finding{{UnitID: "x", Kind: audit.MissingTitle}}))

	y := testRecord("y", "Y", "file_y.go", 1)
	require.NoError(t, store.SaveSnapshot(ctx, []audit.Record{y}, nil))

	_, err = store.GetFunction(ctx, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetFunction(ctx, "y")
	assert.NoError(t, err)

	loaded, err := store.ListFindings(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveSnapshot(context.Background(), []audit.Record{testRecord("k", "K", "k.go", 7)}, nil))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.FindFunctionsByFile(context.Background(), "k.go")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 7, records[0].Line)
}

func testRecord(id, name, path string, line int) audit.Record {
	return audit.Record{
		ID:             id,
		Function:       name,
		Package:        "p",
		Filepath:       path,
		Line:           line,
		DeclaredInputs: 1,
		Params:         1,
	}
}
