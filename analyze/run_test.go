package analyze

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"bcheck/common"
)

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return NewAnalyzer(testRegistry(t), testOptions(), nil, zaptest.NewLogger(t))
}

func TestAnalyzer_AnalyzeDataDispatch(t *testing.T) {
	a := testAnalyzer(t)

	cases := []struct {
		file    string
		data    string
		feature string
	}{
		{"a.css", ".x { display: flex; }", "flexbox"},
		{"a.scss", ".x { display: grid; }", "grid"},
		{"a.js", "const r = await fetch(u);", "fetch"},
		{"a.ts", "const r = items.toSorted();", "array-by-copy"},
		{"a.html", "<style>.x { display: flex; }</style>", "flexbox"},
	}
	for _, tc := range cases {
		usages := a.AnalyzeData(tc.file, []byte(tc.data))
		if got := countFeature(usages, tc.feature); got != 1 {
			t.Errorf("%s: %s count = %d, want 1", tc.file, tc.feature, got)
		}
	}

	if usages := a.AnalyzeData("readme.txt", []byte("display: flex")); len(usages) != 0 {
		t.Errorf("unknown extension produced %d usages", len(usages))
	}
}

func TestAnalyzer_BinaryContentSkipped(t *testing.T) {
	a := testAnalyzer(t)

	// PNG signature under a stylesheet extension.
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	if usages := a.AnalyzeData("sneaky.css", png); len(usages) != 0 {
		t.Errorf("binary content produced %d usages", len(usages))
	}
}

func TestAnalyzer_Run(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"src/app.js":     "const ws = new WebSocket(url);\n",
		"src/styles.css": ".card { display: flex; }\n.old { float: left; }\n",
		"src/skip.txt":   "not analyzed\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	a := testAnalyzer(t)
	res, err := a.Run(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", res.TotalFiles)
	}
	if got := countFeature(res.Usages, "websockets"); got != 1 {
		t.Errorf("websockets count = %d, want 1", got)
	}
	if got := countFeature(res.Usages, "flexbox"); got != 1 {
		t.Errorf("flexbox count = %d, want 1", got)
	}
	if len(res.Usages) > 1 && res.Usages[0].File > res.Usages[len(res.Usages)-1].File {
		t.Error("usages are not sorted by file")
	}
}

func TestAnalyzer_AnalyzePathsUnreadableFile(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "ok.css")
	if err := os.WriteFile(good, []byte(".x { display: flex; }"), 0o600); err != nil {
		t.Fatal(err)
	}

	a := testAnalyzer(t)
	res, err := a.AnalyzePaths(context.Background(), []string{good, filepath.Join(root, "gone.css")})
	if err != nil {
		t.Fatalf("AnalyzePaths() error = %v", err)
	}
	if res.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1 (unreadable files are skipped)", res.TotalFiles)
	}
	if got := countFeature(res.Usages, "flexbox"); got != 1 {
		t.Errorf("flexbox count = %d, want 1", got)
	}
}

func TestAnalyzer_LexerParserSelection(t *testing.T) {
	opts := NewOptions(common.TargetWidelyAvailable, nil, nil, common.ScriptParserLexer, false)
	a := NewAnalyzer(testRegistry(t), opts, nil, zaptest.NewLogger(t))

	usages := a.AnalyzeData("x.js", []byte("const f = () => 1;\n"))
	u, ok := findFeature(usages, "arrow-functions")
	if !ok {
		t.Fatal("expected arrow-functions usage")
	}
	if u.Column == 0 {
		t.Error("lexer mode reports exact columns, got 0")
	}
}
