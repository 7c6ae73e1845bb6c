// Package audit evaluates curriculum questions against per-grade policy:
// numeric magnitude ceilings, permitted operations, forbidden topics and
// reading-length limits. Checks are substring and regexp based rather than a
// real parser; the output is advisory and a human reviews the report, so
// false positives are acceptable.
package audit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mathtrail/currikit/internal/curriculum"
)

var digitRun = regexp.MustCompile(`\d+`)

// complexWords are terms considered too advanced below grade 6.
var complexWords = []string{
	"coefficient", "polynomial", "quadratic", "exponent", "logarithm",
	"derivative", "integral", "theorem", "proof", "congruent",
}

// Run audits every question of every set against the policy table. The input
// is never mutated. Findings are emitted in dataset order with a fixed check
// order per question, so output is deterministic for identical input.
//
// A set without questions or a question without text is a precondition
// violation: the dataset comes from a trusted generation step, so malformed
// input indicates an upstream bug and fails the whole run.
func Run(sets []*curriculum.Set, policies Policies) (*Report, error) {
	report := &Report{
		Issues:            []Finding{},
		Warnings:          []Finding{},
		GradeDistribution: map[string]int{},
	}

	for si, set := range sets {
		if len(set.Questions) == 0 {
			return nil, fmt.Errorf("set %d (%s): no questions", si, set.ID)
		}
		label := curriculum.GradeLabel(set.GradeLevel)
		report.GradeDistribution[label]++

		policy, ok := policies.Lookup(set.GradeLevel)
		if !ok {
			report.Issues = append(report.Issues, Finding{
				Set:      set.Title,
				Grade:    label,
				Issue:    fmt.Sprintf("Invalid grade level: %d", set.GradeLevel),
				Severity: SeverityHigh,
			})
			continue
		}

		if w := checkTopic(set, policy); w != nil {
			report.Warnings = append(report.Warnings, *w)
		}

		for qi := range set.Questions {
			q := &set.Questions[qi]
			if strings.TrimSpace(q.Question) == "" {
				return nil, fmt.Errorf("set %s question %d: empty question text", set.ID, qi+1)
			}
			findings := checkQuestion(set, policy, qi, q)
			for _, f := range findings {
				if f.Severity == SeverityHigh {
					report.Issues = append(report.Issues, f)
				} else {
					report.Warnings = append(report.Warnings, f)
				}
			}
		}
	}

	report.Summary = Summary{
		TotalSets:     len(sets),
		TotalIssues:   len(report.Issues),
		TotalWarnings: len(report.Warnings),
	}
	return report, nil
}

// checkQuestion applies every per-question rule in fixed order. An early
// violation does not suppress later checks; one question can yield several
// findings.
func checkQuestion(set *curriculum.Set, policy Policy, qi int, q *curriculum.Question) []Finding {
	var out []Finding
	text := strings.ToLower(q.Question)
	label := curriculum.GradeLabel(set.GradeLevel)

	emit := func(severity, issue string) {
		out = append(out, Finding{
			Set:           set.Title,
			Grade:         label,
			QuestionIndex: qi + 1,
			Question:      truncate(q.Question, 80),
			Issue:         issue,
			Severity:      severity,
		})
	}

	// 1. Numeric magnitude: every digit run counts as a base-10 literal,
	// context ignored. Simple-substring semantics are intentional.
	if policy.MaxNumber > 0 {
		if max := maxNumber(text); max > policy.MaxNumber {
			emit(SeverityHigh, fmt.Sprintf("Number %d exceeds %s expectation (max: %d)", max, label, policy.MaxNumber))
		}
	}

	// 2. Arithmetic symbols, kindergarten.
	if policy.NoOperations && strings.ContainsAny(q.Question, "+-*÷×") {
		emit(SeverityHigh, "Arithmetic operations not appropriate for "+label)
	}

	// 3. Multiplication/division, early grades.
	if policy.NoMultDiv && containsMultDiv(text) {
		emit(SeverityHigh, fmt.Sprintf("%s should not have multiplication/division", label))
	}

	// 4. Fractions and decimals too early.
	if set.GradeLevel <= 2 && containsFractionDecimal(text) {
		emit(SeverityHigh, fmt.Sprintf("%s should not have fractions/decimals", label))
	}

	// 5. Advanced vocabulary below grade 6.
	if set.GradeLevel < 6 {
		for _, word := range complexWords {
			if strings.Contains(text, word) {
				emit(SeverityMedium, fmt.Sprintf("Word %q is too advanced for %s", word, label))
			}
		}
	}

	// 6. Reading length, soft ceiling.
	words := len(strings.Fields(q.Question))
	if max := MaxWords(set.GradeLevel); words > max {
		emit(SeverityLow, fmt.Sprintf("Question too long (%d words) for %s (max recommended: %d)", words, label, max))
	}

	return out
}

func checkTopic(set *curriculum.Set, policy Policy) *Finding {
	if set.Topic == "" || set.Topic == "Word Problems" || len(policy.AllowedTopics) == 0 {
		return nil
	}
	topic := strings.ToLower(set.Topic)
	for _, allowed := range policy.AllowedTopics {
		a := strings.ToLower(allowed)
		if strings.Contains(topic, a) || strings.Contains(a, topic) {
			return nil
		}
	}
	label := curriculum.GradeLabel(set.GradeLevel)
	return &Finding{
		Set:      set.Title,
		Grade:    label,
		Issue:    fmt.Sprintf("Topic %q may not be standard for %s (expected: %s)", set.Topic, label, strings.Join(policy.AllowedTopics, ", ")),
		Severity: SeverityMedium,
	}
}

// maxNumber returns the largest integer literal in text, 0 when none. Digit
// runs too long for an int still count against any ceiling.
func maxNumber(text string) int {
	max := 0
	for _, run := range digitRun.FindAllString(text, -1) {
		n, err := strconv.Atoi(run)
		if err != nil {
			n = int(^uint(0) >> 1)
		}
		if n > max {
			max = n
		}
	}
	return max
}

func containsMultDiv(lower string) bool {
	if strings.ContainsAny(lower, "*÷×") {
		return true
	}
	for _, kw := range []string{"multipl", "divid", "times"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func containsFractionDecimal(lower string) bool {
	for _, kw := range []string{"fraction", "decimal", ".5", "½", "¼", "percent"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
