package report

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"bcheck/analyze"
	"bcheck/common"
	"bcheck/misc"
)

// JUnit writes the result as a JUnit XML document for CI systems: one
// testsuite per analyzed file that produced usages, errors become failures
// and warnings become skipped tests with a message.
func JUnit(w io.Writer, res *analyze.Result) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	suites := doc.CreateElement("testsuites")
	suites.CreateAttr("name", misc.GetAppName())
	suites.CreateAttr("tests", fmt.Sprintf("%d", len(res.Usages)))
	suites.CreateAttr("failures", fmt.Sprintf("%d", len(res.Violations)))

	// Usages are sorted by file, one pass builds the per-file suites.
	var suite *etree.Element
	last := ""
	counts := struct{ tests, failures int }{}

	flush := func() {
		if suite == nil {
			return
		}
		suite.CreateAttr("tests", fmt.Sprintf("%d", counts.tests))
		suite.CreateAttr("failures", fmt.Sprintf("%d", counts.failures))
	}

	for _, u := range res.Usages {
		if u.File != last {
			flush()
			suite = suites.CreateElement("testsuite")
			suite.CreateAttr("name", u.File)
			counts.tests, counts.failures = 0, 0
			last = u.File
		}

		tc := suite.CreateElement("testcase")
		tc.CreateAttr("name", fmt.Sprintf("%s at line %d", u.FeatureID, u.Line))
		tc.CreateAttr("classname", u.File)
		counts.tests++

		switch u.Severity {
		case common.SeverityError:
			counts.failures++
			failure := tc.CreateElement("failure")
			failure.CreateAttr("message", fmt.Sprintf("%s is %s, below the %s target", u.Feature, u.Tier, res.Target))
			failure.CreateAttr("type", "compatibility")
			failure.SetText(u.Advice)
		case common.SeverityWarning:
			skipped := tc.CreateElement("skipped")
			skipped.CreateAttr("message", fmt.Sprintf("%s is %s", u.Feature, u.Tier))
		}
	}
	flush()

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
