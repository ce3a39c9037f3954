package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"bcheck/analyze"
	"bcheck/misc"
)

// The JSON document is a stable machine interface: field names here are a
// contract with downstream tooling and never follow internal renames.

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonUsage struct {
	Token          string            `json:"token"`
	Feature        string            `json:"feature"`
	FeatureID      string            `json:"featureId"`
	Kind           string            `json:"kind"`
	Baseline       string            `json:"baseline"`
	Location       jsonLocation      `json:"location"`
	Context        string            `json:"context,omitempty"`
	BrowserSupport map[string]string `json:"browserSupport,omitempty"`
	Advice         string            `json:"advice,omitempty"`
}

type jsonOpportunity struct {
	Category    string `json:"category"`
	From        string `json:"from"`
	To          string `json:"to"`
	Impact      string `json:"impact"`
	Effort      string `json:"effort"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
	Count       int    `json:"count"`
}

type jsonSummary struct {
	TotalFiles         int `json:"totalFiles"`
	TotalFeatures      int `json:"totalFeatures"`
	Errors             int `json:"errors"`
	Warnings           int `json:"warnings"`
	Suggestions        int `json:"suggestions"`
	CompatibilityScore int `json:"compatibilityScore"`
	RiskScore          int `json:"riskScore"`
}

type jsonTool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type jsonReport struct {
	ID          string      `json:"id"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Tool        jsonTool    `json:"tool"`
	Target      string      `json:"target"`
	Summary     jsonSummary `json:"summary"`

	Violations                 []jsonUsage       `json:"violations"`
	Warnings                   []jsonUsage       `json:"warnings"`
	Suggestions                []jsonUsage       `json:"suggestions"`
	ModernizationOpportunities []jsonOpportunity `json:"modernizationOpportunities"`
}

// JSON writes the machine-readable report. Every run gets a fresh id so
// archived reports stay distinguishable.
func JSON(w io.Writer, res *analyze.Result) error {
	doc := jsonReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Tool:        jsonTool{Name: misc.GetAppName(), Version: misc.GetVersion()},
		Target:      res.Target.String(),
		Summary: jsonSummary{
			TotalFiles:         res.TotalFiles,
			TotalFeatures:      len(res.Usages),
			Errors:             len(res.Violations),
			Warnings:           len(res.Warnings),
			Suggestions:        len(res.Passed),
			CompatibilityScore: res.Score,
			RiskScore:          res.Risk,
		},
		Violations:                 usagesJSON(res.Violations),
		Warnings:                   usagesJSON(res.Warnings),
		Suggestions:                usagesJSON(res.Passed),
		ModernizationOpportunities: opportunitiesJSON(res.Opportunities),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func usagesJSON(usages []analyze.Usage) []jsonUsage {
	out := make([]jsonUsage, 0, len(usages))
	for _, u := range usages {
		out = append(out, jsonUsage{
			Token:     u.Token,
			Feature:   u.Feature,
			FeatureID: u.FeatureID,
			Kind:      u.Kind,
			Baseline:  u.Tier.String(),
			Location: jsonLocation{
				File:   u.File,
				Line:   u.Line,
				Column: u.Column,
			},
			Context:        u.Context,
			BrowserSupport: u.Support,
			Advice:         u.Advice,
		})
	}
	return out
}

func opportunitiesJSON(opps []analyze.Opportunity) []jsonOpportunity {
	out := make([]jsonOpportunity, 0, len(opps))
	for _, o := range opps {
		out = append(out, jsonOpportunity{
			Category:    o.Category,
			From:        o.From,
			To:          o.To,
			Impact:      o.Impact,
			Effort:      o.Effort,
			Description: o.Description,
			Example:     o.Example,
			Count:       o.Count,
		})
	}
	return out
}
