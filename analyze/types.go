// Package analyze turns raw source text into classified feature usages and
// reduces them into a single analysis result. Extractors never share mutable
// state: the registry is read-only and every extraction works on its own
// file, so files can be processed concurrently in any order.
package analyze

import (
	"strings"
	"unicode/utf8"

	"bcheck/baseline"
	"bcheck/common"
)

// Extractor turns one file's content into feature usages. Implementations
// must be safe for concurrent use across files.
type Extractor interface {
	Extract(file string, data []byte) []Usage
}

// Usage kinds, by source language family.
const (
	KindCSS    = "css"
	KindScript = "script"
)

// Usage is one detected occurrence of a web-platform feature. Immutable once
// emitted.
type Usage struct {
	Token     string // source token that triggered the detection
	FeatureID string // canonical feature id it resolved to
	Feature   string // display name
	Kind      string // KindCSS or KindScript
	File      string
	Line      int    // 1-based
	Column    int    // 1-based, 0 when only line granularity is known
	Context   string // truncated source context
	Tier      common.Tier
	Support   map[string]string // browser -> minimum version snapshot
	Severity  common.Severity
	Advice    string
}

// Options carries the per-run knobs every extractor needs.
type Options struct {
	Target        common.Target
	Browsers      []string            // projection filter for support snapshots, empty means all
	Exceptions    map[string]struct{} // feature ids whose severity is never escalated
	Parser        common.ScriptParser
	GenerateFixes bool
}

// NewOptions normalizes raw configuration values into Options.
func NewOptions(target common.Target, browsers, exceptions []string, parser common.ScriptParser, fixes bool) Options {
	opts := Options{
		Target:        target,
		Browsers:      browsers,
		Parser:        parser,
		GenerateFixes: fixes,
	}
	if len(exceptions) > 0 {
		opts.Exceptions = make(map[string]struct{}, len(exceptions))
		for _, id := range exceptions {
			opts.Exceptions[strings.ToLower(strings.TrimSpace(id))] = struct{}{}
		}
	}
	return opts
}

func (o Options) excepted(featureID string) bool {
	_, ok := o.Exceptions[featureID]
	return ok
}

// severityFor applies the single classification rule shared by all
// extractors: satisfied target reports as info, otherwise limited features
// are errors and everything else is a warning. Excepted features are pinned
// to info so they stay visible but never escalate.
func severityFor(a baseline.Assessment, excepted bool) common.Severity {
	if a.MeetsTarget || excepted {
		return common.SeverityInfo
	}
	if a.Tier == common.TierLimited {
		return common.SeverityError
	}
	return common.SeverityWarning
}

const contextLimit = 100

// truncate shortens context strings to a renderable length, cutting on a rune
// boundary so the result stays valid UTF-8.
func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= contextLimit {
		return s
	}
	cut := contextLimit - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// collector accumulates usages for a single file. Unmatched tokens are
// silently dropped, only resolved features become usages.
type collector struct {
	reg    *baseline.Registry
	opts   Options
	file   string
	kind   string
	usages []Usage
}

// emit queries the registry for the token and records a usage when it
// resolves. Reports whether a usage was produced. Extraction uses the strict
// lookup: probing every source token through the fuzzy fallback would
// manufacture matches out of ordinary properties.
func (c *collector) emit(token, context string, line, col int) bool {
	a := c.reg.CheckFeatureStrict(token, c.opts.Target)
	if !a.Matched() {
		return false
	}

	support := a.Support
	if len(c.opts.Browsers) > 0 {
		support = make(map[string]string, len(c.opts.Browsers))
		for _, b := range c.opts.Browsers {
			if v, ok := a.Support[b]; ok {
				support[b] = v
			}
		}
	}

	c.usages = append(c.usages, Usage{
		Token:     token,
		FeatureID: a.FeatureID,
		Feature:   a.Name,
		Kind:      c.kind,
		File:      c.file,
		Line:      line,
		Column:    col,
		Context:   truncate(context),
		Tier:      a.Tier,
		Support:   support,
		Severity:  severityFor(a, c.opts.excepted(a.FeatureID)),
		Advice:    a.Advice,
	})
	return true
}

// lineIndex maps byte offsets to line/column positions. Built once per file.
type lineIndex []int

func newLineIndex(data []byte) lineIndex {
	ix := lineIndex{0}
	for i, b := range data {
		if b == '\n' {
			ix = append(ix, i+1)
		}
	}
	return ix
}

// locate returns the 1-based line and column for a byte offset.
func (ix lineIndex) locate(offset int) (line, col int) {
	lo, hi := 0, len(ix)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if ix[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - ix[lo] + 1
}

// lineAt returns the text of the 1-based line, for context strings.
func (ix lineIndex) lineAt(data []byte, line int) string {
	if line < 1 || line > len(ix) {
		return ""
	}
	start := ix[line-1]
	end := len(data)
	if line < len(ix) {
		end = ix[line] - 1
	}
	return string(data[start:end])
}
