package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dbgdoc/internal/crawler"
	"dbgdoc/internal/extractor"
	"dbgdoc/internal/git"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterChanged(t *testing.T) {
	units := []*extractor.FunctionUnit{
		{Name: "A", Filepath: "pkg/a.go", StartLine: 5, EndLine: 8, Doc: "Title: A\nInput 1: x"},
		{Name: "B", Filepath: "pkg/a.go", StartLine: 20, EndLine: 25},
		{Name: "C", Filepath: "pkg/c.go", StartLine: 1, EndLine: 3},
	}

	t.Run("doc comment line", func(t *testing.T) {
		changes := git.Changes{{Path: "pkg/a.go", ChangedLines: []int{3}}}
		kept := FilterChanged(units, changes)
		require.Len(t, kept, 1)
		assert.Equal(t, "A", kept[0].Name)
	})

	t.Run("body line", func(t *testing.T) {
		changes := git.Changes{{Path: "pkg/a.go", ChangedLines: []int{22}}}
		kept := FilterChanged(units, changes)
		require.Len(t, kept, 1)
		assert.Equal(t, "B", kept[0].Name)
	})

	t.Run("untouched", func(t *testing.T) {
		changes := git.Changes{{Path: "pkg/a.go", ChangedLines: []int{12}}}
		assert.Empty(t, FilterChanged(units, changes))
		assert.Empty(t, FilterChanged(units, nil))
	})
}

func TestIndexer_Collect(t *testing.T) {
	root := t.TempDir()
	src := "package a\n\n// Title: A\nfunc A() {}\n\nfunc B() {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte(src), 0o644))

	ext, err := extractor.NewExtractor("go")
	require.NoError(t, err)
	idx := NewIndexer(crawler.NewCrawler(ext))

	units, err := idx.Collect(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, units, 2)

	changes := git.Changes{{Path: "a.go", ChangedLines: []int{3}}}
	changed, err := idx.CollectChanged(context.Background(), root, changes)
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, "A", changed[0].Name)
}
