package analyze

import (
	"bytes"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
	"go.uber.org/zap"

	"bcheck/baseline"
)

// Promise combinators recognized as static calls.
var scriptPromiseStatics = map[string]bool{
	"all":        true,
	"allSettled": true,
	"any":        true,
	"race":       true,
	"resolve":    true,
	"reject":     true,
}

// ScriptLexerExtractor is the token-stream alternative to the line scanner.
// It reports exact columns, ignores string and comment content, and only
// counts method names when they are actually called. Shares the vocabulary
// tables with the line scanner so both modes resolve to the same features.
type ScriptLexerExtractor struct {
	reg  *baseline.Registry
	opts Options
	log  *zap.Logger
}

// NewScriptLexerExtractor creates a lexer-based script extractor.
func NewScriptLexerExtractor(reg *baseline.Registry, opts Options, log *zap.Logger) *ScriptLexerExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScriptLexerExtractor{reg: reg, opts: opts, log: log.Named("script-lexer")}
}

// sigToken is one significant token kept in the lookbehind window.
type sigToken struct {
	text  string
	start int
}

// Extract tokenizes one script. A lexing error stops the scan but keeps the
// usages collected so far, matching the degrade-no-abort rule of the other
// extractors. At most one usage per (line, feature) pair.
func (x *ScriptLexerExtractor) Extract(file string, data []byte) []Usage {
	c := &collector{reg: x.reg, opts: x.opts, file: file, kind: KindScript}
	ix := newLineIndex(data)

	input := parse.NewInput(bytes.NewReader(data))
	lexer := js.NewLexer(input)

	// prev[0] is the most recent significant token before the current one.
	var prev [3]sigToken
	seen := make(map[string]bool)

	record := func(token string, offset int) {
		line, col := ix.locate(offset)
		key := token + ":" + strconv.Itoa(line)
		if seen[key] {
			return
		}
		seen[key] = true
		c.emit(token, ix.lineAt(data, line), line, col)
	}

	for {
		tt, text := lexer.Next()
		if tt == js.ErrorToken {
			if err := lexer.Err(); err != nil && err.Error() != "EOF" {
				x.log.Debug("Script lexing stopped early", zap.String("file", file), zap.Error(err))
			}
			return c.usages
		}

		raw := string(text)
		start := input.Offset() - len(text)

		switch {
		case len(strings.TrimSpace(raw)) == 0:
			continue // whitespace and line terminators, keep the window
		case strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/*"):
			continue
		case raw[0] == '\'' || raw[0] == '"':
			// String content never produces tokens.
		case raw[0] == '`':
			if strings.Contains(raw, "${") {
				record("template-literals", start)
			}
		default:
			x.classify(record, raw, start, prev)
		}

		prev[2], prev[1], prev[0] = prev[1], prev[0], sigToken{text: raw, start: start}
	}
}

// classify inspects one significant token together with up to three tokens of
// lookbehind. Working from raw token text keeps the matching identical to the
// line scanner's vocabulary.
func (x *ScriptLexerExtractor) classify(record func(string, int), raw string, start int, prev [3]sigToken) {
	switch raw {
	case "=>":
		record("arrow-functions", start)
		return
	case "??", "??=":
		record("nullish-coalescing", start)
		return
	case "?.":
		record("optional-chaining", start)
		return
	case "...":
		record("spread", start)
		return
	case "**", "**=":
		record("exponentiation", start)
		return
	case "await", "async":
		record("async-await", start)
		return
	case "class":
		record("classes", start)
		return
	case "(":
		x.call(record, prev)
		return
	}

	if !isIdentStart(raw[0]) {
		return
	}

	switch {
	case prev[0].text == "new":
		if token, ok := scriptConstructors[raw]; ok {
			record(token, start)
		}
	case prev[0].text == "." && prev[1].text == "navigator":
		if token, ok := scriptNavigatorProps[raw]; ok {
			record(token, start)
		}
	case prev[0].text == "." && prev[1].text == "document" && raw == "startViewTransition":
		record("view-transitions", start)
	case prev[0].text != "." && (raw == "localStorage" || raw == "sessionStorage"):
		record("storage", start)
	}
}

// call resolves the expression ending in "(" from the lookbehind window:
// prev[0] is the callee, prev[1] and prev[2] its receiver path.
func (x *ScriptLexerExtractor) call(record func(string, int), prev [3]sigToken) {
	callee := prev[0]
	if len(callee.text) == 0 || !isIdentStart(callee.text[0]) {
		return
	}

	if prev[1].text == "." {
		switch prev[2].text {
		case "Object":
			if token, ok := scriptObjectStatics[callee.text]; ok {
				record(token, callee.start)
			}
		case "Promise":
			if scriptPromiseStatics[callee.text] {
				record("promise", callee.start)
			}
		case "Reflect":
			record("proxy-reflect", callee.start)
		case "navigator":
			// navigator.share(...) is already recorded at the property.
		default:
			if token, ok := scriptMethods[callee.text]; ok {
				record(token, callee.start)
			}
		}
		return
	}

	if token, ok := scriptGlobalCalls[callee.text]; ok {
		record(token, callee.start)
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
