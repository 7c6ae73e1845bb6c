package curriculum

import (
	"fmt"
	"strings"
)

// MergeStats summarizes a dedupe pass over a dataset.
type MergeStats struct {
	InputSets       int
	OutputSets      int
	DuplicateGroups int
	QuestionsBefore int
	QuestionsAfter  int
}

func mergeKey(s *Set) string {
	topic := strings.ToLower(strings.TrimSpace(s.Topic))
	if topic == "" {
		topic = "general"
	}
	title := strings.ToLower(strings.TrimSpace(s.Title))
	return fmt.Sprintf("%d|%s|%s", s.GradeLevel, topic, title)
}

// Merge collapses sets that share grade, topic and title into one set each,
// deduplicating questions by normalized text. Order of first appearance is
// preserved so repeated runs produce identical output.
func Merge(sets []*Set) ([]*Set, MergeStats) {
	stats := MergeStats{InputSets: len(sets)}

	groups := make(map[string][]*Set)
	var order []string
	for _, s := range sets {
		stats.QuestionsBefore += len(s.Questions)
		key := mergeKey(s)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s)
	}

	merged := make([]*Set, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			merged = append(merged, group[0])
			stats.QuestionsAfter += len(group[0].Questions)
			continue
		}
		stats.DuplicateGroups++

		first := group[0]
		out := &Set{
			ID:          first.ID,
			Title:       first.Title,
			Description: first.Description,
			GradeLevel:  first.GradeLevel,
			Topic:       first.Topic,
			Difficulty:  first.Difficulty,
		}
		if out.Topic == "" {
			out.Topic = "General"
		}
		seen := make(map[string]struct{})
		for _, s := range group {
			if out.Description == "" {
				out.Description = s.Description
			}
			for i := range s.Questions {
				q := s.Questions[i]
				k := Normalize(q.Question)
				if _, ok := seen[k]; ok {
					continue
				}
				seen[k] = struct{}{}
				out.Questions = append(out.Questions, q)
			}
		}
		merged = append(merged, out)
		stats.QuestionsAfter += len(out.Questions)
	}

	stats.OutputSets = len(merged)
	return merged, stats
}
