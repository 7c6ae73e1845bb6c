// Package judge runs the external math-expert verification pass: each
// curriculum set is sent to an LLM which reports questions whose answer key
// is wrong. The judge's output is free text, so parsing is tolerant — a batch
// that cannot be parsed contributes zero findings rather than failing the run.
package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mathtrail/currikit/internal/curriculum"
	"github.com/mathtrail/currikit/internal/httpx"
	"github.com/mathtrail/currikit/internal/jsonx"
	"github.com/mathtrail/currikit/internal/repair"
	"github.com/mathtrail/currikit/provider"
)

const systemPrompt = "You are a math expert auditing a curriculum. Verify answers carefully and respond only with JSON."

const promptTemplate = `Context: %s

Here is a list of questions (JSON format).
Verify if the "answer" provided is correct for the "question" and "options" given.

Questions:
%s

Output ONLY a JSON array of objects for ANY questions that have errors.
If a question is correct, do NOT include it in the output.

Format for error entry:
{
  "question_text": "The question text",
  "current_answer": "The wrong answer",
  "correct_answer": "The actual correct answer",
  "reason": "Brief explanation of error"
}

If all are correct, output empty array: []`

// Options tunes pacing and rate-limit handling.
type Options struct {
	// BatchDelay is the pause between sets, sized for free-tier RPM limits.
	BatchDelay time.Duration
	// MaxRetries bounds retries after a rate-limit error.
	MaxRetries int
	// RetryWait is how long to sleep before retrying after a rate limit.
	RetryWait time.Duration
}

func (o Options) withDefaults() Options {
	if o.BatchDelay == 0 {
		o.BatchDelay = 7 * time.Second
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = 3
	}
	if o.RetryWait == 0 {
		o.RetryWait = 60 * time.Second
	}
	return o
}

// Runner drives the judge over a dataset one set at a time.
type Runner struct {
	provider provider.Provider
	cache    Cache
	logger   *log.Logger
	opts     Options
}

// NewRunner creates a judge runner. cache may be nil to disable verdict
// caching.
func NewRunner(p provider.Provider, cache Cache, logger *log.Logger, opts Options) *Runner {
	return &Runner{provider: p, cache: cache, logger: logger, opts: opts.withDefaults()}
}

// Run judges every set and returns the accumulated findings with set id and
// title attached. Per-set failures are logged and skipped; only context
// cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, sets []*curriculum.Set) ([]repair.Finding, error) {
	findings := []repair.Finding{}

	for i, set := range sets {
		r.logger.Printf("checking set %d/%d: %s", i+1, len(sets), set.Title)

		batch, cached, err := r.judgeSet(ctx, set)
		if err != nil {
			if ctx.Err() != nil {
				return findings, ctx.Err()
			}
			r.logger.Printf("set %s: judge failed, treating as zero findings: %v", set.ID, err)
			continue
		}
		if len(batch) > 0 {
			r.logger.Printf("found %d errors in %s", len(batch), set.Title)
		}
		for j := range batch {
			batch[j].SetID = set.ID
			batch[j].SetTitle = set.Title
			findings = append(findings, batch[j])
		}

		// Pace requests unless the verdict came from cache.
		if !cached && i < len(sets)-1 {
			select {
			case <-time.After(r.opts.BatchDelay):
			case <-ctx.Done():
				return findings, ctx.Err()
			}
		}
	}
	return findings, nil
}

func (r *Runner) judgeSet(ctx context.Context, set *curriculum.Set) ([]repair.Finding, bool, error) {
	payload, err := json.MarshalIndent(set.Questions, "", "  ")
	if err != nil {
		return nil, false, fmt.Errorf("marshal questions: %w", err)
	}

	key := cacheKey(set.GradeLevel, payload)
	if r.cache != nil {
		if raw, ok := r.cache.Get(ctx, key); ok {
			var batch []repair.Finding
			if err := json.Unmarshal(raw, &batch); err == nil {
				return batch, true, nil
			}
		}
	}

	contextLine := fmt.Sprintf("%s - %s", curriculum.GradeLabel(set.GradeLevel), set.Title)
	user := fmt.Sprintf(promptTemplate, contextLine, payload)

	text, err := r.completeWithRetry(ctx, user)
	if err != nil {
		return nil, false, err
	}

	var batch []repair.Finding
	if err := jsonx.UnmarshalArray(text, &batch); err != nil {
		// Free-text judge emitted something unparseable: zero findings.
		r.logger.Printf("set %s: unparseable judge response: %v", set.ID, err)
		batch = []repair.Finding{}
	}

	if r.cache != nil {
		if raw, err := json.Marshal(batch); err == nil {
			r.cache.Set(ctx, key, raw)
		}
	}
	return batch, false, nil
}

// completeWithRetry retries only rate-limit-class errors, with a long fixed
// wait matching provider quota windows. Everything else surfaces immediately
// so the caller can move on to the next batch.
func (r *Runner) completeWithRetry(ctx context.Context, user string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.opts.MaxRetries; attempt++ {
		text, err := r.provider.Completion(ctx, systemPrompt, user)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !isQuotaError(err) {
			return "", err
		}
		r.logger.Printf("quota exceeded, sleeping %s (attempt %d/%d)", r.opts.RetryWait, attempt+1, r.opts.MaxRetries)
		select {
		case <-time.After(r.opts.RetryWait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

func isQuotaError(err error) bool {
	if httpx.IsRateLimit(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota")
}

// WriteReport saves findings as the JSON report the repair reconciler reads.
func WriteReport(path string, findings []repair.Finding) error {
	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}
