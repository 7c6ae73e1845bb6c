package repair

import (
	"fmt"
	"io"
	"os"
)

// Action is the terminal outcome recorded for a finding that changed the
// dataset or could not be resolved.
type Action string

const (
	ActionFix        Action = "FIX"
	ActionDelete     Action = "DELETE"
	ActionUnresolved Action = "UNRESOLVED"
)

// LogEntry records one applied edit (or resolution failure) for the
// human-readable fix log.
type LogEntry struct {
	Action       Action
	SetID        string
	QuestionText string
	OldAnswer    string
	NewAnswer    string
	Reason       string
	ManualReview bool
}

// WriteLog renders the change log: summary header first, then one block per
// entry in application order.
func WriteLog(w io.Writer, runID string, summary Summary, entries []LogEntry) error {
	if runID != "" {
		if _, err := fmt.Fprintf(w, "Run: %s\n", runID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", summary); err != nil {
		return err
	}
	for _, e := range entries {
		switch e.Action {
		case ActionFix:
			flag := ""
			if e.ManualReview {
				flag = " [MANUAL REVIEW: distractor overwritten]"
			}
			fmt.Fprintf(w, "[FIX]%s Set: %s\nQ: %s\nOld Answer: %s -> New Answer: %s\nReason: %s\n\n",
				flag, e.SetID, e.QuestionText, e.OldAnswer, e.NewAnswer, e.Reason)
		case ActionDelete:
			fmt.Fprintf(w, "[DELETE] Set: %s | Q: %s\nReason: %s\n\n", e.SetID, e.QuestionText, e.Reason)
		case ActionUnresolved:
			fmt.Fprintf(w, "[UNRESOLVED] Set: %s | Q: %s\nReason: %s\n\n", e.SetID, e.QuestionText, e.Reason)
		}
	}
	return nil
}

// WriteLogFile writes the change log to path.
func WriteLogFile(path, runID string, summary Summary, entries []LogEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fix log: %w", err)
	}
	defer f.Close()
	if err := WriteLog(f, runID, summary, entries); err != nil {
		return fmt.Errorf("write fix log: %w", err)
	}
	return nil
}
