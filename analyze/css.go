package analyze

import (
	"bytes"
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"bcheck/baseline"
)

// Value keywords worth resolving on their own. Anything outside this list is
// either a plain value ("auto", "none", colors) or covered by the property
// name already.
var cssValueKeywords = map[string]bool{
	"flex":          true,
	"grid":          true,
	"inline-flex":   true,
	"inline-grid":   true,
	"subgrid":       true,
	"sticky":        true,
	"fit-content":   true,
	"min-content":   true,
	"max-content":   true,
	"stretch":       true,
	"initial":       true,
	"balance":       true,
	"space-between": true,
	"space-around":  true,
	"space-evenly":  true,
}

// Dimension units that identify a feature by themselves. Mapped to
// "<unit>-unit" tokens for the registry.
var cssUnits = map[string]bool{
	"vh":   true,
	"vw":   true,
	"vmin": true,
	"vmax": true,
	"rem":  true,
	"ch":   true,
	"fr":   true,
	"cqw":  true,
	"cqh":  true,
	"cqi":  true,
	"cqb":  true,
}

// Media query features that carry compatibility weight of their own.
var mediaVocabulary = map[string]bool{
	"prefers-color-scheme":   true,
	"prefers-reduced-motion": true,
	"prefers-contrast":       true,
	"prefers-reduced-data":   true,
	"color-gamut":            true,
	"dynamic-range":          true,
	"aspect-ratio":           true,
	"display-mode":           true,
	"hover":                  true,
	"any-hover":              true,
	"pointer":                true,
	"any-pointer":            true,
	"update":                 true,
	"overflow-block":         true,
	"overflow-inline":        true,
	"scripting":              true,
	"forced-colors":          true,
	"inverted-colors":        true,
}

var (
	cssIdentRe     = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9-]*`)
	cssPseudoRe    = regexp.MustCompile(`::?([a-zA-Z][a-zA-Z0-9-]*)`)
	cssAttrRe      = regexp.MustCompile(`\[\s*([a-zA-Z][a-zA-Z0-9-]*)`)
	cssSupportsRe  = regexp.MustCompile(`\(\s*(--)?([a-zA-Z][a-zA-Z0-9-]*)\s*:`)
	cssFuncSkipSet = map[string]bool{"url": true, "rgb": true, "rgba": true, "hsl": true, "hsla": true, "var": true, "attr": true, "format": true, "local": true}
)

// CSSExtractor walks a stylesheet with the tdewolff grammar parser and turns
// declarations, selectors and at-rules into feature usages. A parse failure
// degrades the file to zero usages, it never aborts the run.
type CSSExtractor struct {
	reg  *baseline.Registry
	opts Options
	log  *zap.Logger
}

// NewCSSExtractor creates a stylesheet extractor bound to a registry.
func NewCSSExtractor(reg *baseline.Registry, opts Options, log *zap.Logger) *CSSExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &CSSExtractor{reg: reg, opts: opts, log: log.Named("css")}
}

// Extract analyzes one stylesheet. The file name is carried into every usage
// verbatim, positions are 1-based line and column of the construct start.
func (x *CSSExtractor) Extract(file string, data []byte) []Usage {
	c := &collector{reg: x.reg, opts: x.opts, file: file, kind: KindCSS}
	ix := newLineIndex(data)
	if !x.scan(c, file, data, ix, 0, len(data)) {
		return nil
	}
	return c.usages
}

// scan parses the byte range [from, to) of the stylesheet. The grammar parser
// does not descend into at-rules it has no dedicated handling for
// (@container, @scope and anything it does not recognize): their block
// arrives as a raw token run between BeginAtRule and EndAtRule. Such a
// block's byte range is scanned again as a stylesheet of its own, so nested
// declarations, selectors and units flow through the same walks with
// document-accurate positions.
func (x *CSSExtractor) scan(c *collector, file string, data []byte, ix lineIndex, from, to int) bool {
	input := parse.NewInput(bytes.NewReader(data[from:to]))
	parser := css.NewParser(input, false)

	// awaitingBlock is set right after a block at-rule opens; the first raw
	// token proves the parser treats the block as opaque and marks where its
	// content starts.
	awaitingBlock := false
	opaqueFrom := -1

	for {
		start := from + input.Offset()
		gt, _, tokdata := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				x.log.Debug("Stylesheet did not parse", zap.String("file", file), zap.Error(err))
				return false
			}
			return true

		case css.CommentGrammar:
			// settles nothing about the pending block

		case css.TokenGrammar:
			if awaitingBlock {
				opaqueFrom = start
			}
			awaitingBlock = false

		case css.DeclarationGrammar:
			awaitingBlock = false
			line, col := locateToken(data, ix, start)
			x.declaration(c, string(tokdata), parser.Values(), line, col)

		case css.CustomPropertyGrammar:
			awaitingBlock = false
			line, col := locateToken(data, ix, start)
			c.emit("css-variables", string(tokdata), line, col)

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			awaitingBlock = false
			line, col := locateToken(data, ix, start)
			x.selector(c, string(tokdata)+joinTokens(parser.Values()), line, col)

		case css.AtRuleGrammar, css.BeginAtRuleGrammar:
			line, col := locateToken(data, ix, start)
			x.atRule(c, string(tokdata), joinTokens(parser.Values()), line, col)
			awaitingBlock = gt == css.BeginAtRuleGrammar

		case css.EndAtRuleGrammar:
			awaitingBlock = false
			if opaqueFrom >= 0 {
				if !x.scan(c, file, data, ix, opaqueFrom, start) {
					return false
				}
				opaqueFrom = -1
			}

		default:
			awaitingBlock = false
		}
	}
}

// declaration resolves the property name (raw, then vendor-stripped when the
// raw form stays unmatched) plus value-level functions, keywords and units.
func (x *CSSExtractor) declaration(c *collector, prop string, values []css.Token, line, col int) {
	context := prop + ": " + strings.TrimSpace(joinTokens(values))

	prop = strings.ToLower(prop)
	if !c.emit(prop, context, line, col) {
		if stripped := stripVendor(prop); stripped != prop {
			c.emit(stripped, context, line, col)
		}
	}

	for _, t := range values {
		switch t.TokenType {
		case css.FunctionToken:
			name := strings.ToLower(strings.TrimSuffix(string(t.Data), "("))
			if !cssFuncSkipSet[name] {
				c.emit(name, context, line, col)
			}
		case css.IdentToken:
			word := strings.ToLower(string(t.Data))
			if cssValueKeywords[word] {
				c.emit(word, context, line, col)
			}
		case css.DimensionToken:
			if unit := dimensionUnit(string(t.Data)); cssUnits[unit] {
				c.emit(unit+"-unit", context, line, col)
			}
		}
	}
}

// selector resolves pseudo-classes and pseudo-elements, attribute selectors
// and the deprecated shadow-piercing combinators.
func (x *CSSExtractor) selector(c *collector, sel string, line, col int) {
	sel = strings.TrimSpace(sel)
	for _, m := range cssPseudoRe.FindAllStringSubmatch(sel, -1) {
		c.emit(strings.ToLower(m[1]), sel, line, col)
	}
	for _, m := range cssAttrRe.FindAllStringSubmatch(sel, -1) {
		c.emit("["+strings.ToLower(m[1])+"]", sel, line, col)
	}
	if strings.Contains(sel, ">>>") || strings.Contains(sel, "/deep/") {
		c.emit("deep-combinator", sel, line, col)
	}
}

// atRule resolves the rule name itself plus the condition vocabulary of
// @media and the probed properties of @supports. @container and @layer map to
// fixed features regardless of their parameters.
func (x *CSSExtractor) atRule(c *collector, name, params string, line, col int) {
	name = strings.ToLower(name)
	context := name
	if params = strings.TrimSpace(params); len(params) > 0 {
		context = name + " " + params
	}

	switch name {
	case "@container":
		c.emit("container-queries", context, line, col)
		return
	case "@layer":
		c.emit("cascade-layers", context, line, col)
		return
	}

	c.emit(name, context, line, col)

	switch name {
	case "@media":
		for _, word := range cssIdentRe.FindAllString(strings.ToLower(params), -1) {
			if mediaVocabulary[word] {
				c.emit(word, context, line, col)
			}
		}
	case "@supports":
		for _, m := range cssSupportsRe.FindAllStringSubmatch(params, -1) {
			if m[1] == "--" {
				c.emit("css-variables", context, line, col)
				continue
			}
			prop := strings.ToLower(m[2])
			if !c.emit(prop, context, line, col) {
				if stripped := stripVendor(prop); stripped != prop {
					c.emit(stripped, context, line, col)
				}
			}
		}
	}
}

// locateToken positions the construct that starts at or after offset,
// skipping the whitespace the parser attributes to it.
func locateToken(data []byte, ix lineIndex, offset int) (line, col int) {
	for offset < len(data) {
		switch data[offset] {
		case ' ', '\t', '\n', '\r', '\f':
			offset++
		default:
			return ix.locate(offset)
		}
	}
	return ix.locate(offset)
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return b.String()
}

func dimensionUnit(s string) string {
	i := len(s)
	for i > 0 {
		ch := s[i-1]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '%' {
			i--
			continue
		}
		break
	}
	return strings.ToLower(s[i:])
}

var vendorPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-"}

func stripVendor(s string) string {
	for _, p := range vendorPrefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return rest
		}
	}
	return s
}
