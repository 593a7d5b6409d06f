package index

import (
	"context"
	"fmt"

	"dbgdoc/internal/crawler"
	"dbgdoc/internal/extractor"
	"dbgdoc/internal/git"
)

// Indexer collects the function units an audit works on.
type Indexer struct {
	crawler *crawler.Crawler
}

// NewIndexer creates a new indexer.
func NewIndexer(c *crawler.Crawler) *Indexer {
	return &Indexer{
		crawler: c,
	}
}

// Collect scans root and returns every function unit in path order.
func (i *Indexer) Collect(ctx context.Context, root string) ([]*extractor.FunctionUnit, error) {
	var units []*extractor.FunctionUnit
	err := i.crawler.ScanProject(ctx, root, func(unit *extractor.FunctionUnit) {
		units = append(units, unit)
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return units, nil
}

// CollectChanged is Collect restricted to functions whose declaration or
// doc comment overlaps a changed line.
func (i *Indexer) CollectChanged(ctx context.Context, root string, changes git.Changes) ([]*extractor.FunctionUnit, error) {
	units, err := i.Collect(ctx, root)
	if err != nil {
		return nil, err
	}
	return FilterChanged(units, changes), nil
}

// FilterChanged keeps units touched by changes. The doc comment counts as
// part of the function, so a unit is kept when any line from the start of
// its comment to its closing brace changed.
func FilterChanged(units []*extractor.FunctionUnit, changes git.Changes) []*extractor.FunctionUnit {
	var kept []*extractor.FunctionUnit
	for _, u := range units {
		c, ok := changes.Lookup(u.Filepath)
		if !ok {
			continue
		}
		if c.Overlaps(docStartLine(u), u.EndLine) {
			kept = append(kept, u)
		}
	}
	return kept
}

func docStartLine(u *extractor.FunctionUnit) int {
	if u.Doc == "" {
		return u.StartLine
	}
	lines := 1
	for _, r := range u.Doc {
		if r == '\n' {
			lines++
		}
	}
	return u.StartLine - lines
}
