package analyze

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"bcheck/common"
)

func TestScriptLexerExtractor_MatchesLineScannerVocabulary(t *testing.T) {
	reg := testRegistry(t)
	lex := NewScriptLexerExtractor(reg, testOptions(), zaptest.NewLogger(t))

	js := `const greet = (name) => name ?? 'anon';
const ws = new WebSocket(url);
async function load() {
  const res = await fetch('/api');
  return res?.json();
}
`
	usages := lex.Extract("app.js", []byte(js))

	for _, id := range []string{"arrow-functions", "nullish-coalescing", "websockets", "async-await", "fetch", "optional-chaining"} {
		if got := countFeature(usages, id); got == 0 {
			t.Errorf("%s not detected by lexer mode", id)
		}
	}
}

func TestScriptLexerExtractor_ExactColumns(t *testing.T) {
	lex := NewScriptLexerExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	js := "const f = () => 1;\n"
	usages := lex.Extract("col.js", []byte(js))

	u, ok := findFeature(usages, "arrow-functions")
	if !ok {
		t.Fatal("expected arrow-functions usage")
	}
	if u.Line != 1 {
		t.Errorf("line = %d, want 1", u.Line)
	}
	if u.Column != 14 {
		t.Errorf("column = %d, want 14 (position of the arrow)", u.Column)
	}
}

func TestScriptLexerExtractor_IgnoresStringsAndComments(t *testing.T) {
	lex := NewScriptLexerExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	js := `const a = "new XMLHttpRequest() => fetch(x)";
// const b = new WebSocket(url);
/* list.includes(x) */
const c = 'nothing ?? here';
`
	usages := lex.Extract("quiet.js", []byte(js))

	if len(usages) != 0 {
		for _, u := range usages {
			t.Errorf("unexpected usage %s from string or comment content (token %q)", u.FeatureID, u.Token)
		}
	}
}

func TestScriptLexerExtractor_CallExpressionOnly(t *testing.T) {
	lex := NewScriptLexerExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	// The lexer mode only counts method vocabulary when it is called:
	// a bare property access is not enough.
	js := `const fn = list.includes;
const ok = list.includes(x);
`
	usages := lex.Extract("call.js", []byte(js))

	if got := countFeature(usages, "array-includes"); got != 1 {
		t.Errorf("array-includes count = %d, want 1 (only the call on line 2)", got)
	}
	u, _ := findFeature(usages, "array-includes")
	if u.Line != 2 {
		t.Errorf("array-includes line = %d, want 2", u.Line)
	}
}

func TestScriptLexerExtractor_ReceiverPaths(t *testing.T) {
	lex := NewScriptLexerExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	js := `const pairs = Object.entries(cfg);
const all = Promise.all(jobs);
navigator.clipboard.writeText(s);
localStorage.setItem('k', 'v');
document.startViewTransition(update);
`
	usages := lex.Extract("recv.js", []byte(js))

	for _, id := range []string{"object-entries", "promise", "async-clipboard", "storage", "view-transitions"} {
		if got := countFeature(usages, id); got != 1 {
			t.Errorf("%s count = %d, want 1", id, got)
		}
	}

	// entries() on an arbitrary receiver is not Object.entries
	other := lex.Extract("other.js", []byte("const e = myMap.entries();\n"))
	if got := countFeature(other, "object-entries"); got != 0 {
		t.Errorf("object-entries count = %d on non-Object receiver, want 0", got)
	}
}

func TestScriptLexerExtractor_Templates(t *testing.T) {
	lex := NewScriptLexerExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	js := "const plain = `no interpolation`;\nconst label = `hello ${name}`;\n"
	usages := lex.Extract("tmpl.js", []byte(js))

	if got := countFeature(usages, "template-literals"); got != 1 {
		t.Errorf("template-literals count = %d, want 1 (only interpolated templates)", got)
	}
	u, _ := findFeature(usages, "template-literals")
	if u.Line != 2 {
		t.Errorf("template-literals line = %d, want 2", u.Line)
	}
}

func TestScriptLexerExtractor_SharedSeverityRule(t *testing.T) {
	lex := NewScriptLexerExtractor(testRegistry(t), testOptions(), zaptest.NewLogger(t))

	usages := lex.Extract("sev.js", []byte("document.startViewTransition(update);\n"))
	u, ok := findFeature(usages, "view-transitions")
	if !ok {
		t.Fatal("expected view-transitions usage")
	}
	if u.Severity != common.SeverityError {
		t.Errorf("severity = %v, want error", u.Severity)
	}
}
