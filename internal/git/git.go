package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var chunkHeader = regexp.MustCompile(`^@@ \-\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

type ChangedFile struct {
	Path         string
	ChangedLines []int
}

// Overlaps reports whether any changed line falls in [start, end].
func (c ChangedFile) Overlaps(start, end int) bool {
	for _, l := range c.ChangedLines {
		if l >= start && l <= end {
			return true
		}
	}
	return false
}

// Changes is the result of a diff, keyed by repository-relative path.
type Changes []ChangedFile

// Lookup finds the entry for path. Paths are compared by slash-separated
// suffix so a crawler path like "./internal/x/y.go" matches "internal/x/y.go".
func (cs Changes) Lookup(path string) (ChangedFile, bool) {
	p := filepath.ToSlash(filepath.Clean(path))
	for _, c := range cs {
		if p == c.Path || strings.HasSuffix(p, "/"+c.Path) {
			return c, true
		}
	}
	return ChangedFile{}, false
}

// GetChangedFiles runs git diff in dir against baseRef and returns the
// changed files with the new-side line numbers of every hunk.
func GetChangedFiles(ctx context.Context, dir, baseRef string) (Changes, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "diff", "-U0", baseRef)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return parseDiff(output)
}

func parseDiff(output []byte) (Changes, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var changes Changes
	var currentFile *ChangedFile

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "diff --git") {
			parts := strings.Fields(line)
			if len(parts) >= 4 {
				path := strings.TrimPrefix(parts[3], "b/")
				if currentFile != nil {
					changes = append(changes, *currentFile)
				}
				currentFile = &ChangedFile{Path: path, ChangedLines: []int{}}
			}
			continue
		}

		if currentFile == nil {
			continue
		}

		if strings.HasPrefix(line, "@@") {
			matches := chunkHeader.FindStringSubmatch(line)
			if len(matches) > 1 {
				startLine, _ := strconv.Atoi(matches[1])
				count := 1 // omitted length means one line
				if len(matches) > 2 && matches[2] != "" {
					count, _ = strconv.Atoi(matches[2])
				}
				// A pure deletion (count 0) still marks the line it happened at.
				if count == 0 {
					count = 1
				}
				for i := 0; i < count; i++ {
					currentFile.ChangedLines = append(currentFile.ChangedLines, startLine+i)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if currentFile != nil {
		changes = append(changes, *currentFile)
	}

	return changes, nil
}
