package analyze

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"bcheck/common"
)

func TestScriptExtractor_SyntaxForms(t *testing.T) {
	x := NewScriptExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	js := `const greet = (name) => name ?? 'anon';
const copy = [...items];
const area = r => Math.PI * r ** 2;
const label = ` + "`hello ${name}`" + `;
async function load() {
  const res = await fetch('/api');
  return res?.json();
}
class Widget {}
`
	usages := x.Extract("app.js", []byte(js))

	wants := map[string]int{
		"arrow-functions":    2, // lines 1 and 3
		"nullish-coalescing": 1,
		"spread":             1,
		"exponentiation":     1,
		"template-literals":  1,
		"async-await":        2, // declaration and await
		"fetch":              1,
		"optional-chaining":  1,
		"classes":            1,
	}
	for id, want := range wants {
		if got := countFeature(usages, id); got != want {
			t.Errorf("%s count = %d, want %d", id, got, want)
		}
	}

	for _, u := range usages {
		if u.Kind != KindScript {
			t.Errorf("usage %s kind = %s, want %s", u.FeatureID, u.Kind, KindScript)
		}
		if u.Column != 0 {
			t.Errorf("usage %s column = %d, line scanner reports no columns", u.FeatureID, u.Column)
		}
	}

	arrow, _ := findFeature(usages, "arrow-functions")
	if arrow.Line != 1 {
		t.Errorf("first arrow-functions line = %d, want 1", arrow.Line)
	}
}

func TestScriptExtractor_Constructors(t *testing.T) {
	x := NewScriptExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	js := `const ws = new WebSocket(url);
const seen = new Set();
const obs = new IntersectionObserver(onSee);
const xhr = new XMLHttpRequest();
`
	usages := x.Extract("net.js", []byte(js))

	for _, id := range []string{"websockets", "map-set", "intersection-observer", "xhr"} {
		if got := countFeature(usages, id); got != 1 {
			t.Errorf("%s count = %d, want 1", id, got)
		}
	}
}

func TestScriptExtractor_MethodsAndGlobals(t *testing.T) {
	x := NewScriptExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	js := `if (list.includes(x)) {}
const sorted = values.toSorted();
const s = text.replaceAll('a', 'b');
const pairs = Object.entries(cfg);
localStorage.setItem('k', 'v');
navigator.clipboard.writeText(s);
requestAnimationFrame(step);
`
	usages := x.Extract("m.js", []byte(js))

	wants := []string{
		"array-includes", "array-by-copy", "string-replaceall",
		"object-entries", "storage", "async-clipboard", "request-animation-frame",
	}
	for _, id := range wants {
		if got := countFeature(usages, id); got != 1 {
			t.Errorf("%s count = %d, want 1", id, got)
		}
	}
}

func TestScriptExtractor_OneUsagePerLineAndFeature(t *testing.T) {
	x := NewScriptExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	// Two arrows and two awaits on one line still count once each.
	js := `const f = async () => { await a(); await b(); }; const g = () => 1;`
	usages := x.Extract("dup.js", []byte(js))

	if got := countFeature(usages, "arrow-functions"); got != 1 {
		t.Errorf("arrow-functions count = %d, want 1", got)
	}
	if got := countFeature(usages, "async-await"); got != 1 {
		t.Errorf("async-await count = %d, want 1", got)
	}
}

func TestScriptExtractor_CommentLinesSkipped(t *testing.T) {
	x := NewScriptExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	js := `// const legacy = new XMLHttpRequest();
/* fetch('/api') */
 * continuation of a block comment => not code
const real = fetch('/data');
`
	usages := x.Extract("c.js", []byte(js))

	if got := countFeature(usages, "xhr"); got != 0 {
		t.Errorf("xhr count = %d, comment-only lines must be skipped", got)
	}
	if got := countFeature(usages, "fetch"); got != 1 {
		t.Errorf("fetch count = %d, want 1", got)
	}
	u, _ := findFeature(usages, "fetch")
	if u.Line != 4 {
		t.Errorf("fetch line = %d, want 4", u.Line)
	}
}

func TestScriptExtractor_ReceiverNotResolved(t *testing.T) {
	x := NewScriptExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	// Known limitation of line scanning: any receiver counts.
	js := `const found = myCustomList.includes(item);`
	usages := x.Extract("r.js", []byte(js))

	if got := countFeature(usages, "array-includes"); got != 1 {
		t.Errorf("array-includes count = %d, want 1 (receivers are not resolved)", got)
	}
}

func TestScriptExtractor_Severities(t *testing.T) {
	x := NewScriptExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	js := `document.startViewTransition(update);
const latest = items.findLast(isReady);
`
	usages := x.Extract("sev.js", []byte(js))

	vt, ok := findFeature(usages, "view-transitions")
	if !ok {
		t.Fatal("expected view-transitions usage")
	}
	if vt.Severity != common.SeverityError {
		t.Errorf("view-transitions severity = %v, want error (limited tier)", vt.Severity)
	}

	fl, ok := findFeature(usages, "array-findlast")
	if !ok {
		t.Fatal("expected array-findlast usage")
	}
	if fl.Severity != common.SeverityInfo && fl.Severity != common.SeverityWarning {
		t.Errorf("array-findlast severity = %v, want info or warning by tier", fl.Severity)
	}
}
