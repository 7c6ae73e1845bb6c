package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Finding is one flagged problem with a question (or a whole set, in which
// case QuestionIndex is 0).
type Finding struct {
	Set           string `json:"set"`
	Grade         string `json:"grade"`
	QuestionIndex int    `json:"questionIndex,omitempty"`
	Question      string `json:"question,omitempty"`
	Issue         string `json:"issue"`
	Severity      string `json:"severity"`
}

// Severity tiers. HIGH findings land in Report.Issues; MEDIUM and LOW are
// advisory and land in Report.Warnings.
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"
)

// Summary carries the headline counts of an audit run.
type Summary struct {
	TotalSets     int `json:"totalSets"`
	TotalIssues   int `json:"totalIssues"`
	TotalWarnings int `json:"totalWarnings"`
}

// Report is the full structured output of the rule auditor.
type Report struct {
	Summary           Summary        `json:"summary"`
	Issues            []Finding      `json:"issues"`
	Warnings          []Finding      `json:"warnings"`
	GradeDistribution map[string]int `json:"gradeDistribution"`
}

// WriteJSON serializes the report. Map keys are sorted by encoding/json, so
// output is byte-identical across runs for the same input.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Render writes the human-readable console report.
func (r *Report) Render(w io.Writer) {
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "CURRICULUM AGE-APPROPRIATENESS AUDIT REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\nTotal Curriculum Sets Analyzed: %d\n", r.Summary.TotalSets)
	fmt.Fprintf(w, "Total Issues Found: %d\n", r.Summary.TotalIssues)
	fmt.Fprintf(w, "Total Warnings: %d\n", r.Summary.TotalWarnings)

	if len(r.Issues) > 0 {
		fmt.Fprintln(w, "\nHIGH PRIORITY ISSUES (Must Fix):")
		fmt.Fprintln(w, thin)
		for i, f := range r.Issues {
			fmt.Fprintf(w, "%d. %s (%s)\n", i+1, f.Set, f.Grade)
			if f.QuestionIndex > 0 {
				fmt.Fprintf(w, "   Question #%d: %q\n", f.QuestionIndex, f.Question)
			}
			fmt.Fprintf(w, "   %s\n", f.Issue)
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\nWARNINGS (Review Recommended):")
		fmt.Fprintln(w, thin)
		shown := r.Warnings
		if len(shown) > 10 {
			shown = shown[:10]
		}
		for i, f := range shown {
			fmt.Fprintf(w, "%d. %s (%s)\n", i+1, f.Set, f.Grade)
			if f.QuestionIndex > 0 {
				fmt.Fprintf(w, "   Question #%d\n", f.QuestionIndex)
			}
			fmt.Fprintf(w, "   %s\n", f.Issue)
		}
		if len(r.Warnings) > 10 {
			fmt.Fprintf(w, "   ... and %d more warnings\n", len(r.Warnings)-10)
		}
	}

	fmt.Fprintln(w, "\nGRADE DISTRIBUTION:")
	fmt.Fprintln(w, thin)
	labels := make([]string, 0, len(r.GradeDistribution))
	for label := range r.GradeDistribution {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(w, "%s: %d sets\n", label, r.GradeDistribution[label])
	}
	fmt.Fprintln(w, rule)
}
