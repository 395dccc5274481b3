// Package fs implements the workspace scanner over the local
// filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driven"
)

// Ensure Scanner implements the interface.
var _ driven.WorkspaceScanner = (*Scanner)(nil)

// Hidden files the scan keeps despite the dot prefix.
var hiddenAllowlist = map[string]struct{}{
	".gitignore":   {},
	".env.example": {},
}

// Scanner walks a workspace tree and produces candidate records.
// Traversal is lexicographic by path so repeated scans of an unchanged
// tree yield identical output. Symbolic links are not followed.
type Scanner struct {
	ignore map[string]struct{}
}

// NewScanner creates a scanner that skips the given directory and file
// names (version control, caches, OS metadata).
func NewScanner(ignoreNames []string) *Scanner {
	ignore := make(map[string]struct{}, len(ignoreNames))
	for _, name := range ignoreNames {
		ignore[name] = struct{}{}
	}
	return &Scanner{ignore: ignore}
}

// fileEntry is an intermediate record collected during the walk.
type fileEntry struct {
	rel  string // forward-slash path relative to root
	size int64
	info fs.FileInfo
}

// Scan traverses root recursively. Unreadable subtrees are recorded as
// skipped paths and do not abort the scan.
func (s *Scanner) Scan(ctx context.Context, root string) (*driven.ScanResult, error) {
	stat, err := os.Stat(root)
	if err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorkspaceNotFound, root)
	}

	var entries []fileEntry
	var skipped []string

	// Names of every regular file per directory, used afterwards for
	// documentation and test sibling detection.
	dirFiles := make(map[string][]string)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				skipped = append(skipped, rel)
				return nil
			}
			return err
		}

		if path == root {
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if s.skipName(name) {
				return filepath.SkipDir
			}
			return nil
		}

		// Never follow symlinks; prevents traversal cycles.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if s.skipName(name) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			if errors.Is(infoErr, fs.ErrPermission) {
				skipped = append(skipped, rel)
				return nil
			}
			return infoErr
		}

		entries = append(entries, fileEntry{rel: rel, size: info.Size(), info: info})
		dir := filepath.ToSlash(filepath.Dir(rel))
		dirFiles[dir] = append(dirFiles[dir], name)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	result := &driven.ScanResult{SkippedPaths: skipped}
	for _, e := range entries {
		dir := filepath.ToSlash(filepath.Dir(e.rel))
		result.Candidates = append(result.Candidates, domain.Candidate{
			Path:             e.rel,
			SizeBytes:        e.size,
			ModifiedAt:       e.info.ModTime(),
			HasDocumentation: hasDocumentation(e.rel, dirFiles[dir]),
			HasTests:         hasTests(e.rel, dirFiles[dir], dirFiles["tests"]),
			Category:         domain.Categorise(e.rel),
		})
	}

	sort.Slice(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].Path < result.Candidates[j].Path
	})
	sort.Strings(result.SkippedPaths)

	return result, nil
}

// skipName reports whether a directory or file name is excluded from
// the scan.
func (s *Scanner) skipName(name string) bool {
	if _, ok := s.ignore[name]; ok {
		return true
	}
	if strings.HasPrefix(name, ".") {
		_, allowed := hiddenAllowlist[name]
		return !allowed
	}
	return false
}

// hasDocumentation reports whether a description file sits next to the
// candidate: a README-like sibling or a same-stem markdown file.
func hasDocumentation(rel string, siblings []string) bool {
	base := filepath.Base(rel)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, sibling := range siblings {
		if strings.HasPrefix(strings.ToLower(sibling), "readme") {
			return true
		}
		if sibling != base && sibling == stem+".md" {
			return true
		}
	}
	return false
}

// hasTests reports whether a test-like file exists next to the
// candidate or in the workspace-level tests directory.
func hasTests(rel string, siblings, testDirFiles []string) bool {
	base := filepath.Base(rel)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		return false
	}

	patterns := []string{
		"test_" + stem,
		stem + "_test",
		stem + ".test",
	}

	match := func(names []string) bool {
		for _, name := range names {
			lower := strings.ToLower(name)
			if lower == strings.ToLower(base) {
				continue
			}
			for _, p := range patterns {
				if strings.Contains(lower, p) {
					return true
				}
			}
		}
		return false
	}

	return match(siblings) || match(testDirFiles)
}
