package analyze

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bcheck/baseline"
	"bcheck/common"
)

// Analyzer ties discovery, extraction and aggregation together. One instance
// serves a whole run and is safe for concurrent file analysis.
type Analyzer struct {
	reg    *baseline.Registry
	opts   Options
	walker *Walker
	log    *zap.Logger

	css    Extractor
	script Extractor
	html   Extractor
}

// NewAnalyzer builds a run-scoped analyzer. The ignore globs extend the
// built-in directory skip list during discovery.
func NewAnalyzer(reg *baseline.Registry, opts Options, ignore []string, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Analyzer{
		reg:    reg,
		opts:   opts,
		walker: NewWalker(ignore, log),
		log:    log.Named("analyze"),
		css:    NewCSSExtractor(reg, opts, log),
		html:   NewHTMLExtractor(reg, opts, log),
	}
	if opts.Parser == common.ScriptParserLexer {
		a.script = NewScriptLexerExtractor(reg, opts, log)
	} else {
		a.script = NewScriptExtractor(reg, opts, log)
	}
	return a
}

// AnalyzeData runs the extractor matching the file's extension over content
// already in memory. Unknown extensions and binary content yield no usages.
func (a *Analyzer) AnalyzeData(file string, data []byte) []Usage {
	family, ok := sourceExts[strings.ToLower(filepath.Ext(file))]
	if !ok {
		return nil
	}
	if isBinary(data) {
		a.log.Debug("Skipping binary content", zap.String("file", file))
		return nil
	}

	switch family {
	case "style":
		return a.css.Extract(file, data)
	case "script":
		return a.script.Extract(file, data)
	default:
		return a.html.Extract(file, data)
	}
}

// AnalyzeFile reads and analyzes a single file.
func (a *Analyzer) AnalyzeFile(path string) ([]Usage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeData(path, data), nil
}

// AnalyzePaths analyzes a fixed file list with bounded concurrency. A file
// that cannot be read is logged and skipped, it never fails the run; only
// context cancellation aborts. Result order does not depend on completion
// order.
func (a *Analyzer) AnalyzePaths(ctx context.Context, paths []string) (*Result, error) {
	var mu sync.Mutex
	var usages []Usage
	analyzed := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found, err := a.AnalyzeFile(path)
			if err != nil {
				a.log.Warn("Unable to read file", zap.String("file", path), zap.Error(err))
				return nil
			}
			mu.Lock()
			analyzed++
			usages = append(usages, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.log.Info("Analysis finished",
		zap.Int("files", analyzed),
		zap.Int("usages", len(usages)))
	return Aggregate(analyzed, usages, a.opts), nil
}

// Run discovers files under the roots and analyzes them.
func (a *Analyzer) Run(ctx context.Context, roots []string) (*Result, error) {
	paths, err := a.walker.Discover(ctx, roots)
	if err != nil {
		return nil, err
	}
	return a.AnalyzePaths(ctx, paths)
}

// isBinary sniffs the content head for known binary signatures. Text never
// matches a signature, misnamed images and archives do.
func isBinary(data []byte) bool {
	head := data
	if len(head) > 262 {
		head = head[:262]
	}
	kind, err := filetype.Match(head)
	return err == nil && kind != filetype.Unknown
}
