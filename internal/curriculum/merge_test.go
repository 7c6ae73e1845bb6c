package curriculum

import (
	"encoding/json"
	"testing"
)

func q(text string) Question {
	return Question{Question: text, Options: []string{"1", "2", "3", "4"}, Answer: "1"}
}

func TestMergeCollapsesDuplicates(t *testing.T) {
	sets := []*Set{
		{ID: "a", Title: "Addition Facts", GradeLevel: 1, Topic: "Addition",
			Questions: []Question{q("What is 1 + 1?"), q("What is 2 + 2?")}},
		{ID: "b", Title: "addition facts", GradeLevel: 1, Topic: "Addition",
			Questions: []Question{q("What is 2 + 2?"), q("What is 3 + 3?")}},
		{ID: "c", Title: "Counting Coins", GradeLevel: 2, Topic: "Money",
			Questions: []Question{q("How many cents in a dime?")}},
	}

	merged, stats := Merge(sets)
	if len(merged) != 2 {
		t.Fatalf("expected 2 sets after merge, got %d", len(merged))
	}
	if stats.DuplicateGroups != 1 {
		t.Fatalf("duplicate groups: %+v", stats)
	}
	if stats.QuestionsBefore != 5 || stats.QuestionsAfter != 4 {
		t.Fatalf("question counts: %+v", stats)
	}

	// Merged group keeps first set's identity and question order.
	first := merged[0]
	if first.ID != "a" || first.Title != "Addition Facts" {
		t.Fatalf("merged set identity: %+v", first)
	}
	want := []string{"What is 1 + 1?", "What is 2 + 2?", "What is 3 + 3?"}
	for i, w := range want {
		if first.Questions[i].Question != w {
			t.Fatalf("question order: got %q at %d", first.Questions[i].Question, i)
		}
	}
}

func TestMergeDedupeIsCaseAndSpaceInsensitive(t *testing.T) {
	sets := []*Set{
		{ID: "a", Title: "T", GradeLevel: 1, Topic: "Addition",
			Questions: []Question{q("What is 1 + 1?")}},
		{ID: "b", Title: "T", GradeLevel: 1, Topic: "Addition",
			Questions: []Question{q("what is 1+1?")}},
	}
	merged, _ := Merge(sets)
	if len(merged[0].Questions) != 1 {
		t.Fatalf("normalized duplicates should collapse: %+v", merged[0].Questions)
	}
}

func TestMergeDistinctGradesStaySeparate(t *testing.T) {
	sets := []*Set{
		{ID: "a", Title: "Shapes", GradeLevel: 1, Topic: "Geometry", Questions: []Question{q("x")}},
		{ID: "b", Title: "Shapes", GradeLevel: 2, Topic: "Geometry", Questions: []Question{q("x")}},
	}
	merged, stats := Merge(sets)
	if len(merged) != 2 || stats.DuplicateGroups != 0 {
		t.Fatalf("grade must be part of the merge key: %+v", stats)
	}
}

func TestMergeDeterministic(t *testing.T) {
	sets := func() []*Set {
		return []*Set{
			{ID: "a", Title: "T", GradeLevel: 1, Topic: "Addition", Questions: []Question{q("one"), q("two")}},
			{ID: "b", Title: "T", GradeLevel: 1, Topic: "Addition", Questions: []Question{q("two"), q("three")}},
			{ID: "c", Title: "U", GradeLevel: 3, Topic: "Fractions", Questions: []Question{q("four")}},
		}
	}
	first, _ := Merge(sets())
	second, _ := Merge(sets())
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("merge output differs across runs:\n%s\n%s", a, b)
	}
}

func TestMergeEmptyTopicDefaults(t *testing.T) {
	sets := []*Set{
		{ID: "a", Title: "T", GradeLevel: 1, Questions: []Question{q("one")}},
		{ID: "b", Title: "T", GradeLevel: 1, Questions: []Question{q("two")}},
	}
	merged, _ := Merge(sets)
	if merged[0].Topic != "General" {
		t.Fatalf("blank topic should default on merge, got %q", merged[0].Topic)
	}
}
