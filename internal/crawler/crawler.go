package crawler

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"dbgdoc/internal/extractor"

	"golang.org/x/sync/errgroup"
)

// DefaultIgnored lists directory names skipped during a scan.
var DefaultIgnored = []string{".git", "vendor", "node_modules", "testdata"}

// Crawler scans a directory for source files.
type Crawler struct {
	extractor *extractor.Extractor
	ignored   []string
	workers   int
	logger    *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithIgnored replaces the ignored directory names.
func WithIgnored(names ...string) Option {
	return func(c *Crawler) {
		c.ignored = names
	}
}

// WithWorkers bounds how many files are parsed at once.
func WithWorkers(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.workers = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = l
	}
}

// NewCrawler creates a new crawler instance.
func NewCrawler(ext *extractor.Extractor, opts ...Option) *Crawler {
	c := &Crawler{
		extractor: ext,
		ignored:   DefaultIgnored,
		workers:   runtime.NumCPU(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ScanProject walks root and streams every extracted function unit to
// onUnit. Files are parsed concurrently but units are delivered in file
// path order, and in source order within a file. A file that fails to
// parse is logged and skipped.
func (c *Crawler) ScanProject(ctx context.Context, root string, onUnit func(*extractor.FunctionUnit)) error {
	paths, err := c.collect(root)
	if err != nil {
		return err
	}

	results := make([][]*extractor.FunctionUnit, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			units, err := c.extractor.ExtractFromFile(path)
			if err != nil {
				c.logger.Warn("skipping unparseable file", "path", path, "error", err)
				return nil
			}
			results[i] = units
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, units := range results {
		for _, unit := range units {
			onUnit(unit)
		}
	}
	c.logger.Debug("scan complete", "root", root, "files", len(paths))
	return nil
}

func (c *Crawler) collect(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root {
				// Same rule as the go tool: _ and . prefixed directories are not part of the build.
				if strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				for _, ign := range c.ignored {
					if d.Name() == ign {
						return filepath.SkipDir
					}
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}
