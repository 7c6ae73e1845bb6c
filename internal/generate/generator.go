// Package generate drives bulk question-set generation through an LLM
// provider. It is plumbing around an opaque generator: build a prompt, parse
// the response tolerantly, sanity-check it, and append to the dataset. The
// dataset is saved after every set so an interrupted run loses nothing and a
// restart resumes where it left off.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mathtrail/currikit/internal/curriculum"
	"github.com/mathtrail/currikit/internal/httpx"
	"github.com/mathtrail/currikit/internal/jsonx"
	"github.com/mathtrail/currikit/provider"
)

const systemPrompt = "You are a math curriculum author for a K-6 homeschool product. Respond only with valid JSON."

const promptTemplate = `Create a math curriculum set for %s.
Topic: %s
Subtopic: %s

Generate %d multiple-choice questions.
Requirements:
1. Questions must be age-appropriate for %s.
2. Include 4 options per question.
3. Include 3 progressive hints.
4. The "answer" must match one option exactly.
5. Format as valid JSON.

JSON Structure:
{
  "title": "%s Practice",
  "description": "Mastering %s concepts",
  "grade_level": %d,
  "topic": "%s",
  "questions": [
    {
      "question": "string",
      "options": ["string", "string", "string", "string"],
      "answer": "string (must match one option exactly)",
      "hints": ["string", "string", "string"],
      "explanation": "string"
    }
  ]
}`

// Topic is one unit of the generation plan.
type Topic struct {
	Grade     int
	Topic     string
	Subtopics []string
}

// Options tunes pacing and retry behavior.
type Options struct {
	QuestionsPerSet int
	// Delay between calls, sized for free-tier rate limits.
	Delay      time.Duration
	MaxRetries int
	RetryWait  time.Duration
}

func (o Options) withDefaults() Options {
	if o.QuestionsPerSet == 0 {
		o.QuestionsPerSet = 10
	}
	if o.Delay == 0 {
		o.Delay = 4 * time.Second
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = 5
	}
	if o.RetryWait == 0 {
		o.RetryWait = 60 * time.Second
	}
	return o
}

// Stats summarizes a generation run.
type Stats struct {
	Generated int
	Skipped   int
	Failed    int
	Dropped   int // questions discarded because the answer was not an option
}

// Generator appends generated sets to a dataset file.
type Generator struct {
	provider provider.Provider
	logger   *log.Logger
	opts     Options
}

func NewGenerator(p provider.Provider, logger *log.Logger, opts Options) *Generator {
	return &Generator{provider: p, logger: logger, opts: opts.withDefaults()}
}

// Run works through the plan, skipping subtopics that already exist in the
// dataset. Each successful set is persisted immediately.
func (g *Generator) Run(ctx context.Context, datasetPath string, plan []Topic) (Stats, error) {
	var stats Stats

	sets, err := curriculum.Load(datasetPath)
	if err != nil {
		// A missing dataset is a fresh start, anything else is fatal.
		if !errors.Is(err, os.ErrNotExist) {
			return stats, err
		}
		sets = nil
	}

	existingTitles := make(map[string]struct{}, len(sets))
	existingIDs := make(map[string]struct{}, len(sets))
	for _, s := range sets {
		existingTitles[titleKey(s.GradeLevel, s.Title)] = struct{}{}
		existingIDs[s.ID] = struct{}{}
	}

	for _, t := range plan {
		for _, sub := range t.Subtopics {
			title := sub + " Practice"
			if _, ok := existingTitles[titleKey(t.Grade, title)]; ok {
				stats.Skipped++
				continue
			}
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			g.logger.Printf("generating %s / %s / %s", curriculum.GradeLabel(t.Grade), t.Topic, sub)
			set, dropped, err := g.generateSet(ctx, t.Grade, t.Topic, sub)
			if err != nil {
				if ctx.Err() != nil {
					return stats, ctx.Err()
				}
				g.logger.Printf("generation failed for %q: %v", sub, err)
				stats.Failed++
				continue
			}
			stats.Dropped += dropped

			set.ID = uniqueID(existingIDs, t.Grade, t.Topic)
			existingIDs[set.ID] = struct{}{}
			existingTitles[titleKey(set.GradeLevel, set.Title)] = struct{}{}

			sets = append(sets, set)
			if err := curriculum.Save(datasetPath, sets); err != nil {
				return stats, err
			}
			stats.Generated++

			select {
			case <-time.After(g.opts.Delay):
			case <-ctx.Done():
				return stats, ctx.Err()
			}
		}
	}
	return stats, nil
}

func (g *Generator) generateSet(ctx context.Context, grade int, topic, sub string) (*curriculum.Set, int, error) {
	label := curriculum.GradeLabel(grade)
	user := fmt.Sprintf(promptTemplate, label, topic, sub, g.opts.QuestionsPerSet, label, sub, sub, grade, topic)

	text, err := g.completeWithRetry(ctx, user)
	if err != nil {
		return nil, 0, err
	}

	var set curriculum.Set
	if err := jsonx.UnmarshalObject(text, &set); err != nil {
		return nil, 0, fmt.Errorf("parse generated set: %w", err)
	}
	if set.Title == "" {
		set.Title = sub + " Practice"
	}
	set.GradeLevel = grade
	set.Topic = topic

	// Drop questions whose answer key does not match any option; they would
	// only feed the repair pipeline later.
	dropped := 0
	kept := set.Questions[:0]
	for i := range set.Questions {
		q := set.Questions[i]
		if strings.TrimSpace(q.Question) == "" || len(q.Options) == 0 || !curriculum.AnswerInOptions(&q) {
			dropped++
			continue
		}
		kept = append(kept, q)
	}
	set.Questions = kept
	if len(set.Questions) == 0 {
		return nil, dropped, fmt.Errorf("generated set %q has no usable questions", set.Title)
	}
	return &set, dropped, nil
}

func (g *Generator) completeWithRetry(ctx context.Context, user string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.opts.MaxRetries; attempt++ {
		text, err := g.provider.Completion(ctx, systemPrompt, user)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !httpx.IsRateLimit(err) && !strings.Contains(strings.ToLower(err.Error()), "quota") {
			return "", err
		}
		g.logger.Printf("rate limited, sleeping %s (attempt %d/%d)", g.opts.RetryWait, attempt+1, g.opts.MaxRetries)
		select {
		case <-time.After(g.opts.RetryWait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

func titleKey(grade int, title string) string {
	return fmt.Sprintf("%d|%s", grade, curriculum.Normalize(title))
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// uniqueID produces ids in the dataset's established "g1-addition-2" shape,
// bumping the counter past any existing collision.
func uniqueID(existing map[string]struct{}, grade int, topic string) string {
	base := fmt.Sprintf("g%d-%s", grade, slugify(topic))
	for n := 1; ; n++ {
		id := fmt.Sprintf("%s-%d", base, n)
		if _, ok := existing[id]; !ok {
			return id
		}
	}
}
