package analyze

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Extensions the engine knows how to analyze, mapped to the extractor family.
var sourceExts = map[string]string{
	".css":  "style",
	".scss": "style",
	".sass": "style",
	".less": "style",
	".js":   "script",
	".jsx":  "script",
	".ts":   "script",
	".tsx":  "script",
	".mjs":  "script",
	".cjs":  "script",
	".html": "document",
	".htm":  "document",
}

// Directory names never descended into, regardless of configuration.
var ignoredDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".hg":          true,
	".svn":         true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"vendor":       true,
	"coverage":     true,
	".next":        true,
	".nuxt":        true,
	".cache":       true,
}

// Walker discovers analyzable files under one or more roots. Discovery is
// filesystem-order independent: the returned list is always sorted.
type Walker struct {
	ignore []string
	log    *zap.Logger
}

// NewWalker creates a Walker with additional ignore globs from the
// configuration. Globs are matched against both the base name and the
// slash-separated path relative to the walked root.
func NewWalker(ignore []string, log *zap.Logger) *Walker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Walker{ignore: ignore, log: log.Named("walk")}
}

// Discover walks the roots and returns the analyzable files. A root that is
// itself a file is accepted regardless of ignore rules, naming a file
// explicitly beats any glob. Duplicate paths across overlapping roots are
// collapsed.
func (w *Walker) Discover(ctx context.Context, roots []string) ([]string, error) {
	found := make(map[string]bool)

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				w.log.Warn("Skipping unreadable path", zap.String("path", path), zap.Error(err))
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if path == root && !d.IsDir() {
				found[path] = true
				return nil
			}

			if d.IsDir() {
				if ignoredDirs[d.Name()] || w.ignored(rel, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			name := d.Name()
			if _, ok := sourceExts[strings.ToLower(filepath.Ext(name))]; !ok {
				return nil
			}
			if strings.Contains(name, ".min.") {
				return nil
			}
			if w.ignored(rel, name) {
				return nil
			}
			found[path] = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(found))
	for p := range found {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	w.log.Debug("Discovery finished", zap.Int("files", len(paths)), zap.Strings("roots", roots))
	return paths, nil
}

// ignored applies the configured globs. A pattern with a path separator is
// matched against the relative path, otherwise against the base name. Bad
// patterns were rejected at configuration time, Match errors are impossible
// here and treated as non-matches.
func (w *Walker) ignored(rel, base string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.ignore {
		if strings.ContainsRune(pattern, '/') {
			if ok, _ := filepath.Match(pattern, rel); ok {
				return true
			}
		} else if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
