package analyze

import (
	"math"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"bcheck/common"
)

// Opportunity is a modernization suggestion derived from the usage set as a
// whole rather than from a single line.
type Opportunity struct {
	Category    string // layout, networking, css
	From        string
	To          string
	Impact      string // high, medium, low
	Effort      string
	Description string
	Example     string // populated only when fix generation is on
	Count       int    // usages backing the suggestion
}

// Result is the aggregated outcome of one run. Usages is the full sorted
// list, the severity slices are views partitioned out of it.
type Result struct {
	Target     common.Target
	TotalFiles int
	Usages     []Usage
	Violations []Usage // errors
	Warnings   []Usage
	Passed     []Usage // info
	Score      int     // 0-100 compatibility score
	Risk       int     // 0-100 risk score

	Opportunities []Opportunity
}

// Aggregate merges per-file usages into a Result. Input order carries no
// meaning: files are analyzed concurrently, so everything is re-sorted here
// by natural path order, then line, column and token.
func Aggregate(totalFiles int, usages []Usage, opts Options) *Result {
	sort.SliceStable(usages, func(i, j int) bool {
		a, b := usages[i], usages[j]
		if a.File != b.File {
			return natural.Less(a.File, b.File)
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Token < b.Token
	})

	res := &Result{
		Target:     opts.Target,
		TotalFiles: totalFiles,
		Usages:     usages,
	}
	for _, u := range usages {
		switch u.Severity {
		case common.SeverityError:
			res.Violations = append(res.Violations, u)
		case common.SeverityWarning:
			res.Warnings = append(res.Warnings, u)
		default:
			res.Passed = append(res.Passed, u)
		}
	}

	res.Score = compatibilityScore(usages)
	res.Risk = riskScore(len(usages), len(res.Violations), len(res.Warnings))
	res.Opportunities = opportunities(usages, opts)
	return res
}

// compatibilityScore averages per-usage tier points. No usages means nothing
// to object to, which scores a clean 100.
func compatibilityScore(usages []Usage) int {
	if len(usages) == 0 {
		return 100
	}
	total := 0
	for _, u := range usages {
		total += u.Tier.Points()
	}
	return int(math.Round(float64(total) / float64(len(usages))))
}

// riskScore weighs errors three times as heavy as warnings, normalized to
// the worst case of every usage being an error.
func riskScore(total, errors, warnings int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(3*errors+warnings) / float64(3*total)))
}

// Feature ids whose newly-available usage signals a progressive-enhancement
// opportunity worth calling out.
var modernCSSFeatures = map[string]bool{
	"container-queries": true,
	"cascade-layers":    true,
	"grid":              true,
	"flexbox":           true,
}

// opportunities derives modernization suggestions from the full usage set.
// Each rule fires at most once, backed by the count of matching usages.
func opportunities(usages []Usage, opts Options) []Opportunity {
	floats, xhr := 0, 0
	modern := make(map[string]int)

	for _, u := range usages {
		switch {
		case u.Kind == KindCSS && strings.Contains(u.Token, "float"):
			floats++
		case u.Kind == KindScript && u.FeatureID == "xhr":
			xhr++
		case u.Tier == common.TierNewlyAvailable && modernCSSFeatures[u.FeatureID]:
			modern[u.FeatureID]++
		}
	}

	var out []Opportunity
	if floats > 0 {
		o := Opportunity{
			Category:    "layout",
			From:        "float-based layout",
			To:          "flexbox or grid",
			Impact:      "high",
			Effort:      "medium",
			Description: "Float-based layout detected. Flexbox and grid are widely available and remove clearfix workarounds.",
			Count:       floats,
		}
		if opts.GenerateFixes {
			o.Example = "/* before */ .col { float: left; width: 50%; }\n/* after  */ .row { display: flex; } .col { flex: 1; }"
		}
		out = append(out, o)
	}
	if xhr > 0 {
		o := Opportunity{
			Category:    "networking",
			From:        "XMLHttpRequest",
			To:          "fetch",
			Impact:      "medium",
			Effort:      "low",
			Description: "XMLHttpRequest detected. The fetch API is widely available and promise-based.",
			Count:       xhr,
		}
		if opts.GenerateFixes {
			o.Example = "// before\nconst xhr = new XMLHttpRequest(); xhr.open('GET', url);\n// after\nconst res = await fetch(url);"
		}
		out = append(out, o)
	}

	ids := make([]string, 0, len(modern))
	for id := range modern {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		out = append(out, Opportunity{
			Category:    "css",
			From:        id + " without a fallback path",
			To:          id + " behind @supports",
			Impact:      "low",
			Effort:      "low",
			Description: "Newly available feature in use. Keep a fallback until it reaches the widely available tier.",
			Count:       modern[id],
		})
	}
	return out
}
