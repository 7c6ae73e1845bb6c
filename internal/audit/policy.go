package audit

// Policy bounds what a question may contain at a given grade level.
// MaxNumber <= 0 means no ceiling. AllowedTopics is advisory: an off-list
// topic produces a warning, never a hard issue.
type Policy struct {
	MaxNumber     int
	AllowedTopics []string
	NoOperations  bool
	NoMultDiv     bool
}

// MaxWords returns the soft reading-length ceiling for a grade.
func MaxWords(grade int) int {
	if grade == 0 {
		return 10
	}
	return grade * 8
}

// Policies maps grade level to its Policy. The table is passed explicitly into
// Run so tests and callers can substitute alternate rules; there is no package
// level mutable state.
type Policies map[int]Policy

// DefaultPolicies returns the standard K-6 table. Grades above the highest key
// inherit the top entry via Lookup.
func DefaultPolicies() Policies {
	return Policies{
		0: {
			MaxNumber:     20,
			AllowedTopics: []string{"Counting", "Shapes", "Patterns", "Comparing"},
			NoOperations:  true,
		},
		1: {
			MaxNumber:     100,
			AllowedTopics: []string{"Addition", "Subtraction", "Counting", "Time", "Money", "Measurement"},
			NoMultDiv:     true,
		},
		2: {
			MaxNumber:     1000,
			AllowedTopics: []string{"Addition", "Subtraction", "Place Value", "Measurement", "Time", "Money", "Data"},
			NoMultDiv:     true,
		},
		3: {
			MaxNumber:     10000,
			AllowedTopics: []string{"Multiplication", "Division", "Fractions", "Area", "Perimeter"},
		},
		4: {
			MaxNumber:     1000000,
			AllowedTopics: []string{"Multi-digit Multiplication", "Division", "Fractions", "Decimals", "Geometry"},
		},
		5: {
			MaxNumber:     1000000,
			AllowedTopics: []string{"Decimals", "Fractions", "Volume", "Coordinate Plane", "Division"},
		},
		6: {
			AllowedTopics: []string{"Ratios", "Percentages", "Negative Numbers", "Expressions", "Equations"},
		},
	}
}

// Lookup resolves the policy for a grade. Grades beyond the top of the table
// reuse the highest entry (upper grades are open-ended); negative or otherwise
// unknown grades report ok=false.
func (p Policies) Lookup(grade int) (Policy, bool) {
	if pol, ok := p[grade]; ok {
		return pol, true
	}
	top := -1
	for g := range p {
		if g > top {
			top = g
		}
	}
	if top >= 0 && grade > top {
		return p[top], true
	}
	return Policy{}, false
}
