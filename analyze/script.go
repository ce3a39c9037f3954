package analyze

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"bcheck/baseline"
)

// scriptRule pairs a detection pattern with the registry token it stands for.
// Table order is emission order within a line.
type scriptRule struct {
	re    *regexp.Regexp
	token string
}

// Constructors recognized after the "new" keyword, by identifier.
var scriptConstructors = map[string]string{
	"Promise":              "promise",
	"Map":                  "map-set",
	"Set":                  "map-set",
	"WeakMap":              "weak-collections",
	"WeakSet":              "weak-collections",
	"WeakRef":              "weak-collections",
	"Proxy":                "proxy-reflect",
	"IntersectionObserver": "intersection-observer",
	"ResizeObserver":       "resize-observer",
	"MutationObserver":     "mutation-observer",
	"AbortController":      "abort-controller",
	"URL":                  "url-api",
	"URLSearchParams":      "url-api",
	"XMLHttpRequest":       "xhr",
	"FormData":             "xhr",
	"Blob":                 "file-api",
	"FileReader":           "file-api",
	"Worker":               "web-workers",
	"WebSocket":            "websockets",
	"EventSource":          "server-sent-events",
}

// Global functions recognized as bare calls.
var scriptGlobalCalls = map[string]string{
	"fetch":                 "fetch",
	"requestAnimationFrame": "request-animation-frame",
	"structuredClone":       "structured-clone",
}

// Properties recognized on the navigator object.
var scriptNavigatorProps = map[string]string{
	"clipboard":     "async-clipboard",
	"geolocation":   "geolocation",
	"serviceWorker": "service-workers",
	"share":         "web-share",
	"canShare":      "web-share",
}

// Method names recognized as call expressions. The receiver is not resolved,
// so value.includes(x) counts as array-includes whatever value is. That
// imprecision is deliberate: it keeps detection to a single line of context.
var scriptMethods = map[string]string{
	"includes":      "array-includes",
	"flat":          "array-flat",
	"flatMap":       "array-flat",
	"at":            "relative-indexing",
	"findLast":      "array-findlast",
	"findLastIndex": "array-findlast",
	"toSorted":      "array-by-copy",
	"toReversed":    "array-by-copy",
	"toSpliced":     "array-by-copy",
	"replaceAll":    "string-replaceall",
	"padStart":      "string-padding",
	"padEnd":        "string-padding",
	"matchAll":      "string-matchall",
	"showModal":     "dialog",
	"showPopover":   "popover",
}

// Static methods recognized on the Object constructor only.
var scriptObjectStatics = map[string]string{
	"entries":     "object-entries",
	"values":      "object-entries",
	"fromEntries": "object-fromentries",
	"assign":      "object-assign",
	"hasOwn":      "object-hasown",
}

// scriptRules is the full ordered rule table: syntax forms first, then
// constructors, globals and member lookups. Built once at package init.
var scriptRules = buildScriptRules()

func buildScriptRules() []scriptRule {
	rules := []scriptRule{
		{regexp.MustCompile(`=>`), "arrow-functions"},
		{regexp.MustCompile("`[^`]*\\$\\{"), "template-literals"},
		{regexp.MustCompile(`\.\.\.`), "spread"},
		{regexp.MustCompile(`\basync\s+function\b|\basync\s*\(|\basync\s+[A-Za-z_$][\w$]*\s*\(|\bawait\b`), "async-await"},
		{regexp.MustCompile(`\?\?`), "nullish-coalescing"},
		{regexp.MustCompile(`\?\.`), "optional-chaining"},
		{regexp.MustCompile(`\bclass\s+[A-Za-z_$][\w$]*`), "classes"},
		{regexp.MustCompile(`\*\*`), "exponentiation"},
		{regexp.MustCompile(`\bPromise\.(?:all|allSettled|any|race|resolve|reject)\b`), "promise"},
		{regexp.MustCompile(`\bReflect\.[A-Za-z]`), "proxy-reflect"},
		{regexp.MustCompile(`\b(?:localStorage|sessionStorage)\b`), "storage"},
		{regexp.MustCompile(`\bdocument\.startViewTransition\b`), "view-transitions"},
	}
	for _, name := range sortedNames(scriptConstructors) {
		rules = append(rules, scriptRule{regexp.MustCompile(`\bnew\s+` + name + `\b`), scriptConstructors[name]})
	}
	for _, name := range sortedNames(scriptGlobalCalls) {
		rules = append(rules, scriptRule{regexp.MustCompile(`(?:^|[^.\w$])` + name + `\s*\(`), scriptGlobalCalls[name]})
	}
	for _, name := range sortedNames(scriptNavigatorProps) {
		rules = append(rules, scriptRule{regexp.MustCompile(`\bnavigator\.` + name + `\b`), scriptNavigatorProps[name]})
	}
	for _, name := range sortedNames(scriptMethods) {
		rules = append(rules, scriptRule{regexp.MustCompile(`\.\s*` + name + `\s*\(`), scriptMethods[name]})
	}
	for _, name := range sortedNames(scriptObjectStatics) {
		rules = append(rules, scriptRule{regexp.MustCompile(`\bObject\.` + name + `\s*\(`), scriptObjectStatics[name]})
	}
	return rules
}

// sortedNames keeps the rule table order independent of map iteration.
func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ScriptExtractor scans scripts line by line against the rule table. It never
// fails: any text input produces a (possibly empty) usage list. Columns are
// always 0, the rules only know which line fired.
type ScriptExtractor struct {
	reg  *baseline.Registry
	opts Options
	log  *zap.Logger
}

// NewScriptExtractor creates a line-based script extractor.
func NewScriptExtractor(reg *baseline.Registry, opts Options, log *zap.Logger) *ScriptExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScriptExtractor{reg: reg, opts: opts, log: log.Named("script")}
}

// Extract analyzes one script. At most one usage per (line, feature) pair is
// emitted. Comment-only lines are skipped, inline comments are not: trading
// the odd false positive inside a trailing comment for a one-pass scan.
func (x *ScriptExtractor) Extract(file string, data []byte) []Usage {
	c := &collector{reg: x.reg, opts: x.opts, file: file, kind: KindScript}

	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 || isCommentLine(trimmed) {
			continue
		}
		var seen map[string]bool
		for _, rule := range scriptRules {
			if seen[rule.token] || !rule.re.MatchString(line) {
				continue
			}
			if seen == nil {
				seen = make(map[string]bool)
			}
			seen[rule.token] = true
			c.emit(rule.token, trimmed, i+1, 0)
		}
	}
	return c.usages
}

func isCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}
