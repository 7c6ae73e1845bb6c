// Package repair reconciles an external judge's findings against the
// curriculum dataset. For each finding it decides between skipping, patching
// the answer key or an option, and deleting the question outright, and keeps
// an ordered change log as the authoritative audit trail.
package repair

import (
	"fmt"
	"log"
	"strings"

	"github.com/mathtrail/currikit/internal/curriculum"
)

// Finding is one judge verdict about a question. CorrectAnswer may be a
// sentinel ("This question contains an error.", or JSON null which decodes to
// the empty string) meaning the question itself is beyond fixing.
type Finding struct {
	SetID         string `json:"set_id"`
	SetTitle      string `json:"set_title"`
	QuestionText  string `json:"question_text"`
	CurrentAnswer string `json:"current_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Reason        string `json:"reason"`
}

// Summary counts the terminal outcome of every finding in a run.
type Summary struct {
	Processed  int
	Fixed      int
	Deleted    int
	Skipped    int
	Unresolved int
}

// Reconciler applies corrective edits to a dataset in memory. It only ever
// touches questions named by findings, and never leaves a touched question
// with an answer absent from its options.
type Reconciler struct {
	sets   []*curriculum.Set
	byID   map[string][]*curriculum.Set
	logger *log.Logger

	entries []LogEntry
	summary Summary
}

// NewReconciler indexes the dataset by set id. Duplicate ids are kept as
// candidate lists and disambiguated per finding.
func NewReconciler(sets []*curriculum.Set, logger *log.Logger) *Reconciler {
	byID := make(map[string][]*curriculum.Set)
	for _, s := range sets {
		byID[s.ID] = append(byID[s.ID], s)
	}
	return &Reconciler{sets: sets, byID: byID, logger: logger}
}

// Apply processes every finding in order. A malformed or unresolvable finding
// is skipped and logged, never fatal; the rest of the report is still
// processed. Replaying a report against the patched dataset never changes it
// again: fixes land on the already-correct key and a report regenerated from
// the patched dataset skips outright.
func (r *Reconciler) Apply(findings []Finding) Summary {
	for i := range findings {
		r.applyOne(&findings[i])
	}
	r.summary.Processed = len(findings)
	return r.summary
}

func (r *Reconciler) applyOne(f *Finding) {
	reason := strings.ToLower(f.Reason)

	// Judge confirmed the question is fine, or the key already matches.
	if strings.Contains(f.Reason, "No error") || strings.Contains(reason, "answer provided is correct") {
		r.summary.Skipped++
		return
	}
	if curriculum.Normalize(f.CorrectAnswer) == curriculum.Normalize(f.CurrentAnswer) {
		r.summary.Skipped++
		return
	}

	set := r.resolveSet(f)
	if set == nil {
		r.unresolved(f, "set not found")
		return
	}
	q := resolveQuestion(set, f.QuestionText)
	if q == nil {
		r.unresolved(f, "question not found in set")
		return
	}

	if isDeleteSentinel(f) {
		r.deleteQuestion(set, q, f)
		return
	}
	r.fixQuestion(set, q, f)
}

// resolveSet walks the disambiguation cascade: id lookup, exact title match
// among duplicates, then a question-text content search across candidates.
// Every fallback is logged so the resolution is auditable.
func (r *Reconciler) resolveSet(f *Finding) *curriculum.Set {
	candidates := r.byID[f.SetID]
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}

	for _, c := range candidates {
		if c.Title == f.SetTitle {
			return c
		}
	}
	// Title mismatch between report and dataset; fall back to searching each
	// candidate's questions for the cited text.
	r.logf("set %s: title %q did not disambiguate, searching candidate questions", f.SetID, f.SetTitle)
	for _, c := range candidates {
		for i := range c.Questions {
			if textMatches(c.Questions[i].Question, f.QuestionText) {
				return c
			}
		}
	}
	return nil
}

func resolveQuestion(set *curriculum.Set, text string) *curriculum.Question {
	for i := range set.Questions {
		if set.Questions[i].Question == text {
			return &set.Questions[i]
		}
	}
	for i := range set.Questions {
		if textMatches(set.Questions[i].Question, text) {
			return &set.Questions[i]
		}
	}
	return nil
}

func textMatches(a, b string) bool {
	return a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a))
}

func isDeleteSentinel(f *Finding) bool {
	if f.CorrectAnswer == "" || f.CorrectAnswer == "null" || f.CorrectAnswer == "This question contains an error." {
		return true
	}
	reason := strings.ToLower(f.Reason)
	return strings.Contains(reason, "nonsensical") || strings.Contains(reason, "question is flawed")
}

func (r *Reconciler) deleteQuestion(set *curriculum.Set, q *curriculum.Question, f *Finding) {
	for i := range set.Questions {
		if &set.Questions[i] == q {
			set.Questions = append(set.Questions[:i], set.Questions[i+1:]...)
			break
		}
	}
	r.entries = append(r.entries, LogEntry{
		Action:       ActionDelete,
		SetID:        set.ID,
		QuestionText: f.QuestionText,
		Reason:       f.Reason,
	})
	r.summary.Deleted++
}

// fixQuestion applies the minimal edit that makes the judge's answer the key:
// key-only when the answer is already an option, option rewrite when the old
// answer is, and as a last resort an overwrite of the final option. The last
// path destroys a distractor and is flagged for manual review rather than
// treated as a normal fix.
func (r *Reconciler) fixQuestion(set *curriculum.Set, q *curriculum.Question, f *Finding) {
	oldAnswer := q.Answer
	newAnswer := f.CorrectAnswer
	manualReview := false

	if i := optionIndex(q.Options, newAnswer); i >= 0 {
		// Key was wrong, option text already correct. Keep the option's
		// exact spelling as the key so the answer stays an exact member.
		q.Answer = q.Options[i]
	} else if i := optionIndex(q.Options, oldAnswer); i >= 0 {
		q.Options[i] = newAnswer
		q.Answer = newAnswer
	} else if len(q.Options) == 0 {
		q.Options = append(q.Options, newAnswer)
		q.Answer = newAnswer
		manualReview = true
	} else {
		q.Options[len(q.Options)-1] = newAnswer
		q.Answer = newAnswer
		manualReview = true
		r.logf("set %s: neither old nor new answer found in options, overwrote last option (manual review)", set.ID)
	}

	r.entries = append(r.entries, LogEntry{
		Action:       ActionFix,
		SetID:        set.ID,
		QuestionText: f.QuestionText,
		OldAnswer:    oldAnswer,
		NewAnswer:    q.Answer,
		Reason:       f.Reason,
		ManualReview: manualReview,
	})
	r.summary.Fixed++
}

func optionIndex(options []string, answer string) int {
	for i, opt := range options {
		if opt == answer || curriculum.Normalize(opt) == curriculum.Normalize(answer) {
			return i
		}
	}
	return -1
}

func (r *Reconciler) unresolved(f *Finding, why string) {
	r.logf("finding for set %s (%q): %s, skipping", f.SetID, truncateText(f.QuestionText), why)
	r.entries = append(r.entries, LogEntry{
		Action:       ActionUnresolved,
		SetID:        f.SetID,
		QuestionText: f.QuestionText,
		Reason:       why,
	})
	r.summary.Unresolved++
}

func (r *Reconciler) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

func truncateText(s string) string {
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}

// Entries returns the ordered change log accumulated so far.
func (r *Reconciler) Entries() []LogEntry { return r.entries }

// Verify re-checks the invariant over the whole dataset and returns the number
// of questions whose answer is still absent from their options.
func (r *Reconciler) Verify() int {
	broken := 0
	for _, set := range r.sets {
		for i := range set.Questions {
			q := &set.Questions[i]
			if len(q.Options) > 0 && q.Answer != "" && !curriculum.AnswerInOptions(q) {
				broken++
			}
		}
	}
	return broken
}

// String renders the summary the way the fix log header reports it.
func (s Summary) String() string {
	return fmt.Sprintf("Fixed %d questions. Deleted %d questions. Skipped %d false positives. Unresolved %d.",
		s.Fixed, s.Deleted, s.Skipped, s.Unresolved)
}
