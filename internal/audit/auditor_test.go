package audit

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mathtrail/currikit/internal/curriculum"
)

func makeSet(id, title string, grade int, topic string, questions ...string) *curriculum.Set {
	set := &curriculum.Set{ID: id, Title: title, GradeLevel: grade, Topic: topic}
	for _, q := range questions {
		set.Questions = append(set.Questions, curriculum.Question{
			Question: q,
			Options:  []string{"1", "2", "3", "4"},
			Answer:   "1",
		})
	}
	return set
}

func runOne(t *testing.T, set *curriculum.Set) *Report {
	t.Helper()
	report, err := Run([]*curriculum.Set{set}, DefaultPolicies())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return report
}

func TestNumericCeiling(t *testing.T) {
	report := runOne(t, makeSet("k-counting-1", "Counting Fun", 0, "Counting",
		"Count the 25 apples"))
	if len(report.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d: %+v", len(report.Issues), report.Issues)
	}
	if !strings.Contains(report.Issues[0].Issue, "25") || !strings.Contains(report.Issues[0].Issue, "20") {
		t.Fatalf("issue should name offending number and ceiling: %s", report.Issues[0].Issue)
	}

	report = runOne(t, makeSet("k-counting-2", "Counting Fun", 0, "Counting",
		"Count the 15 apples"))
	if len(report.Issues) != 0 {
		t.Fatalf("15 is within the kindergarten ceiling, got issues: %+v", report.Issues)
	}
}

func TestOperatorBanKindergarten(t *testing.T) {
	report := runOne(t, makeSet("k-counting-1", "Counting Fun", 0, "Counting",
		"2 + 3 apples"))
	if len(report.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %+v", report.Issues)
	}
	if !strings.Contains(report.Issues[0].Issue, "operations not appropriate") {
		t.Fatalf("unexpected issue text: %s", report.Issues[0].Issue)
	}
	if report.Issues[0].Severity != SeverityHigh {
		t.Fatalf("operator ban should be HIGH, got %s", report.Issues[0].Severity)
	}

	report = runOne(t, makeSet("k-counting-2", "Counting Fun", 0, "Counting",
		"how many apples"))
	if len(report.Issues) != 0 {
		t.Fatalf("no operators present, got issues: %+v", report.Issues)
	}
}

func TestMultDivBan(t *testing.T) {
	report := runOne(t, makeSet("g1-add-1", "Addition Facts", 1, "Addition",
		"What is 3 Times 2?"))
	if len(report.Issues) != 1 {
		t.Fatalf("expected 1 issue for grade 1 'times', got %+v", report.Issues)
	}
	if !strings.Contains(report.Issues[0].Issue, "multiplication/division") {
		t.Fatalf("unexpected issue text: %s", report.Issues[0].Issue)
	}

	report = runOne(t, makeSet("g3-mult-1", "Times Tables", 3, "Multiplication",
		"What is 3 Times 2?"))
	if len(report.Issues) != 0 {
		t.Fatalf("grade 3 may use 'times', got issues: %+v", report.Issues)
	}
}

func TestFractionsTooEarly(t *testing.T) {
	report := runOne(t, makeSet("g2-add-1", "Adding Up", 2, "Addition",
		"Write one half as a fraction"))
	if len(report.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %+v", report.Issues)
	}
	if !strings.Contains(report.Issues[0].Issue, "fractions/decimals") {
		t.Fatalf("unexpected issue text: %s", report.Issues[0].Issue)
	}
}

func TestLengthWarningNotIssue(t *testing.T) {
	// Grade 1 soft ceiling is 8 words.
	nineWords := "Sam has some apples and gives them all away"
	report := runOne(t, makeSet("g1-add-1", "Addition Facts", 1, "Addition", nineWords))
	if len(report.Issues) != 0 {
		t.Fatalf("length overflow must not be a hard issue: %+v", report.Issues)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %+v", report.Warnings)
	}
	if report.Warnings[0].Severity != SeverityLow {
		t.Fatalf("length warning should be LOW, got %s", report.Warnings[0].Severity)
	}

	sevenWords := "Sam has some apples to share today"
	report = runOne(t, makeSet("g1-add-2", "Addition Facts", 1, "Addition", sevenWords))
	if len(report.Issues)+len(report.Warnings) != 0 {
		t.Fatalf("7-word question is fine, got issues=%+v warnings=%+v", report.Issues, report.Warnings)
	}
}

func TestMultipleFindingsPerQuestion(t *testing.T) {
	// Exceeds the ceiling AND contains an operator: both findings emitted.
	report := runOne(t, makeSet("k-counting-1", "Counting Fun", 0, "Counting",
		"25 + 30 apples"))
	if len(report.Issues) != 2 {
		t.Fatalf("expected both checks to fire, got %+v", report.Issues)
	}
}

func TestVocabularyWarning(t *testing.T) {
	report := runOne(t, makeSet("g2-add-1", "Adding Up", 2, "Addition",
		"Find the congruent shapes"))
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w.Issue, "congruent") && w.Severity == SeverityMedium {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected advanced-vocabulary warning, got %+v", report.Warnings)
	}
}

func TestTopicWarning(t *testing.T) {
	report := runOne(t, makeSet("g1-alg-1", "Intro Algebra", 1, "Algebra",
		"Solve for the missing number"))
	if len(report.Warnings) != 1 {
		t.Fatalf("expected off-list topic warning, got %+v", report.Warnings)
	}

	report = runOne(t, makeSet("g1-wp-1", "Story Problems", 1, "Word Problems",
		"Sam shares four apples with friends"))
	if len(report.Warnings) != 0 {
		t.Fatalf("Word Problems is exempt, got %+v", report.Warnings)
	}
}

func TestUpperGradesUnbounded(t *testing.T) {
	report := runOne(t, makeSet("g8-alg-1", "Linear Equations", 8, "Equations",
		"Solve 4500000 divided by 1500"))
	for _, issue := range report.Issues {
		if strings.Contains(issue.Issue, "exceeds") {
			t.Fatalf("grade 8 has no numeric ceiling: %+v", issue)
		}
	}
}

func TestInvalidGradeLevel(t *testing.T) {
	report := runOne(t, makeSet("bad-1", "Broken Set", -3, "Counting",
		"how many apples"))
	if len(report.Issues) != 1 || !strings.Contains(report.Issues[0].Issue, "Invalid grade level") {
		t.Fatalf("expected invalid grade issue, got %+v", report.Issues)
	}
}

func TestGradeDistributionLabels(t *testing.T) {
	sets := []*curriculum.Set{
		makeSet("k-1", "Counting Fun", 0, "Counting", "how many apples"),
		makeSet("g2-1", "Adding Up", 2, "Addition", "add the two groups"),
		makeSet("g2-2", "Adding More", 2, "Addition", "add the three groups"),
	}
	report, err := Run(sets, DefaultPolicies())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.GradeDistribution["Kindergarten"] != 1 {
		t.Fatalf("kindergarten label missing: %+v", report.GradeDistribution)
	}
	if report.GradeDistribution["Grade 2"] != 2 {
		t.Fatalf("grade 2 tally wrong: %+v", report.GradeDistribution)
	}
	if report.Summary.TotalSets != 3 {
		t.Fatalf("summary total sets: %d", report.Summary.TotalSets)
	}
}

func TestDeterministicOutput(t *testing.T) {
	sets := []*curriculum.Set{
		makeSet("k-1", "Counting Fun", 0, "Counting", "Count the 25 apples", "2 + 3 apples"),
		makeSet("g1-1", "Addition Facts", 1, "Addition", "What is 3 times 2?"),
		makeSet("g2-1", "Adding Up", 2, "Fractions", "Write one half as a fraction"),
	}
	first, err := Run(sets, DefaultPolicies())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := Run(sets, DefaultPolicies())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("reports differ across runs:\n%s\n%s", a, b)
	}
}

func TestNoInputMutation(t *testing.T) {
	set := makeSet("k-1", "Counting Fun", 0, "Counting", "Count the 25 apples")
	before, _ := json.Marshal(set)
	if _, err := Run([]*curriculum.Set{set}, DefaultPolicies()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	after, _ := json.Marshal(set)
	if string(before) != string(after) {
		t.Fatalf("auditor mutated its input:\n%s\n%s", before, after)
	}
}

func TestFailFastOnMalformedInput(t *testing.T) {
	empty := &curriculum.Set{ID: "empty-1", Title: "Empty", GradeLevel: 1}
	if _, err := Run([]*curriculum.Set{empty}, DefaultPolicies()); err == nil {
		t.Fatal("expected error for set without questions")
	}

	blank := makeSet("g1-1", "Addition Facts", 1, "Addition", "   ")
	if _, err := Run([]*curriculum.Set{blank}, DefaultPolicies()); err == nil {
		t.Fatal("expected error for question without text")
	}
}

func TestPolicyLookup(t *testing.T) {
	policies := DefaultPolicies()
	if _, ok := policies.Lookup(9); !ok {
		t.Fatal("grades above the table should inherit the top policy")
	}
	if pol, _ := policies.Lookup(9); pol.MaxNumber > 0 {
		t.Fatalf("top policy has no ceiling, got %d", pol.MaxNumber)
	}
	if _, ok := policies.Lookup(-1); ok {
		t.Fatal("negative grades are invalid")
	}
}
