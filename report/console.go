// Package report renders analysis results. Every renderer takes an
// io.Writer, choosing between stdout and a destination file is the caller's
// business.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"bcheck/analyze"
	"bcheck/baseline"
	"bcheck/config"
)

// ANSI fragments used by the console renderer.
const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
)

type console struct {
	w     io.Writer
	color bool
}

// Console writes a human-readable report. Color is used only when the writer
// is a terminal that supports it.
func Console(w io.Writer, res *analyze.Result) error {
	c := &console{w: w}
	if f, ok := w.(*os.File); ok {
		c.color = config.EnableColorOutput(f)
	}

	c.headline(res)

	if len(res.Violations) > 0 {
		c.section("Errors", ansiRed, res.Violations)
	}
	if len(res.Warnings) > 0 {
		c.section("Warnings", ansiYellow, res.Warnings)
	}
	c.opportunities(res.Opportunities)
	c.summary(res)
	return nil
}

// Feature writes the single-token lookup answer for the check command.
func Feature(w io.Writer, a baseline.Assessment) {
	if !a.Matched() {
		fmt.Fprintf(w, "%s: no matching feature\n", a.Token)
		return
	}
	fmt.Fprintf(w, "%s: %s (%s)\n", a.Token, a.Name, a.FeatureID)
	fmt.Fprintf(w, "  tier:         %s\n", a.Tier)
	fmt.Fprintf(w, "  meets target: %t\n", a.MeetsTarget)
	if len(a.Support) > 0 {
		browsers := make([]string, 0, len(a.Support))
		for b := range a.Support {
			browsers = append(browsers, b)
		}
		sort.Strings(browsers)
		parts := make([]string, 0, len(browsers))
		for _, b := range browsers {
			parts = append(parts, b+" "+a.Support[b])
		}
		fmt.Fprintf(w, "  support:      %s\n", strings.Join(parts, ", "))
	}
	if len(a.Advice) > 0 {
		fmt.Fprintf(w, "  advice:       %s\n", a.Advice)
	}
}

func (c *console) paint(color, s string) string {
	if !c.color {
		return s
	}
	return color + s + ansiReset
}

func (c *console) headline(res *analyze.Result) {
	fmt.Fprintf(c.w, "%s (target: %s)\n\n",
		c.paint(ansiBold, "Baseline compatibility report"), res.Target)
}

// section prints one severity bucket grouped by file. Usages arrive sorted,
// grouping is a single pass.
func (c *console) section(title, color string, usages []analyze.Usage) {
	fmt.Fprintf(c.w, "%s\n", c.paint(ansiBold, fmt.Sprintf("%s (%d)", title, len(usages))))

	last := ""
	for _, u := range usages {
		if u.File != last {
			fmt.Fprintf(c.w, "  %s\n", u.File)
			last = u.File
		}
		pos := fmt.Sprintf("%d", u.Line)
		if u.Column > 0 {
			pos = fmt.Sprintf("%d:%d", u.Line, u.Column)
		}
		fmt.Fprintf(c.w, "    %s  %s %s (%s)\n",
			c.paint(ansiDim, pos), c.paint(color, u.Token), u.Feature, u.Tier)
		if len(u.Advice) > 0 {
			fmt.Fprintf(c.w, "        %s\n", c.paint(ansiDim, u.Advice))
		}
	}
	fmt.Fprintln(c.w)
}

func (c *console) opportunities(opps []analyze.Opportunity) {
	if len(opps) == 0 {
		return
	}
	fmt.Fprintf(c.w, "%s\n", c.paint(ansiBold, fmt.Sprintf("Modernization opportunities (%d)", len(opps))))
	for _, o := range opps {
		fmt.Fprintf(c.w, "  [%s] %s -> %s (%d usages, impact %s, effort %s)\n",
			o.Category, o.From, o.To, o.Count, o.Impact, o.Effort)
		fmt.Fprintf(c.w, "      %s\n", o.Description)
		if len(o.Example) > 0 {
			for _, line := range strings.Split(o.Example, "\n") {
				fmt.Fprintf(c.w, "      %s\n", c.paint(ansiDim, line))
			}
		}
	}
	fmt.Fprintln(c.w)
}

func (c *console) summary(res *analyze.Result) {
	scoreColor := ansiGreen
	switch {
	case res.Score < 50:
		scoreColor = ansiRed
	case res.Score < 80:
		scoreColor = ansiYellow
	}
	fmt.Fprintf(c.w, "%s\n", c.paint(ansiBold, "Summary"))
	fmt.Fprintf(c.w, "  files analyzed:      %d\n", res.TotalFiles)
	fmt.Fprintf(c.w, "  features detected:   %d\n", len(res.Usages))
	fmt.Fprintf(c.w, "  errors:              %d\n", len(res.Violations))
	fmt.Fprintf(c.w, "  warnings:            %d\n", len(res.Warnings))
	fmt.Fprintf(c.w, "  compatibility score: %s\n", c.paint(scoreColor, fmt.Sprintf("%d/100", res.Score)))
	fmt.Fprintf(c.w, "  risk score:          %d/100\n", res.Risk)
}
