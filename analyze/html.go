package analyze

import (
	"bytes"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"bcheck/baseline"
	"bcheck/common"
)

// HTMLExtractor splits a document into its inline <style> and <script>
// blocks and feeds them to the stylesheet and script extractors. Usages come
// back with document-relative line numbers. External references (script src,
// link href) are not followed: the files are discovered on their own.
type HTMLExtractor struct {
	css    Extractor
	script Extractor
	log    *zap.Logger
}

// NewHTMLExtractor creates a document extractor. The script extractor is
// chosen by the options, same as for standalone scripts.
func NewHTMLExtractor(reg *baseline.Registry, opts Options, log *zap.Logger) *HTMLExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	x := &HTMLExtractor{
		css: NewCSSExtractor(reg, opts, log),
		log: log.Named("html"),
	}
	if opts.Parser == common.ScriptParserLexer {
		x.script = NewScriptLexerExtractor(reg, opts, log)
	} else {
		x.script = NewScriptExtractor(reg, opts, log)
	}
	return x
}

// Extract tokenizes the document, tracking byte offsets through the raw
// token stream so every inline block knows its first line. Tokenizer errors
// terminate the scan with whatever was collected, malformed markup before an
// inline block never hides blocks after it was recovered.
func (x *HTMLExtractor) Extract(file string, data []byte) []Usage {
	ix := newLineIndex(data)
	z := html.NewTokenizer(bytes.NewReader(data))

	var usages []Usage
	var pending string // "style", "script" or empty
	offset := 0

	for {
		tt := z.Next()
		raw := z.Raw()

		switch tt {
		case html.ErrorToken:
			return usages

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "style":
				pending = "style"
			case "script":
				if inlineScript(z, hasAttr) {
					pending = "script"
				} else {
					pending = ""
				}
			default:
				pending = ""
			}

		case html.TextToken:
			if len(pending) > 0 {
				startLine, _ := ix.locate(offset)
				usages = append(usages, x.block(file, pending, raw, startLine)...)
			}

		case html.EndTagToken, html.SelfClosingTagToken:
			pending = ""
		}

		offset += len(raw)
	}
}

// block runs the matching extractor over one inline block and rebases its
// line numbers onto the document. Columns stay block-relative, which is only
// visible when code starts on the tag's own line.
func (x *HTMLExtractor) block(file, kind string, content []byte, startLine int) []Usage {
	var inner Extractor
	if kind == "style" {
		inner = x.css
	} else {
		inner = x.script
	}

	usages := inner.Extract(file, content)
	for i := range usages {
		usages[i].Line += startLine - 1
	}
	return usages
}

// inlineScript reports whether a <script> start tag opens an analyzable
// inline block: no src attribute and a JavaScript (or absent) type.
func inlineScript(z *html.Tokenizer, hasAttr bool) bool {
	inline := true
	for hasAttr {
		key, val, more := z.TagAttr()
		switch string(key) {
		case "src":
			inline = false
		case "type":
			t := strings.ToLower(strings.TrimSpace(string(val)))
			if len(t) > 0 && t != "module" && !strings.Contains(t, "javascript") {
				inline = false
			}
		}
		hasAttr = more
	}
	return inline
}
