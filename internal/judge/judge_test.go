package judge

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/mathtrail/currikit/internal/curriculum"
	"github.com/mathtrail/currikit/internal/httpx"
)

type fakeProvider struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
}

func (f *fakeProvider) Completion(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "[]", nil
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memCache) Set(ctx context.Context, key string, val []byte) {
	m.data[key] = val
}

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func fastOpts() Options {
	return Options{BatchDelay: time.Millisecond, MaxRetries: 2, RetryWait: time.Millisecond}
}

func sampleSets() []*curriculum.Set {
	return []*curriculum.Set{{
		ID: "g1-add-1", Title: "Addition Facts", GradeLevel: 1, Topic: "Addition",
		Questions: []curriculum.Question{
			{Question: "What is 2 + 2?", Options: []string{"3", "4", "5", "6"}, Answer: "3"},
		},
	}}
}

func TestRunParsesFencedResponse(t *testing.T) {
	p := &fakeProvider{responses: []string{
		"```json\n[{\"question_text\": \"What is 2 + 2?\", \"current_answer\": \"3\", \"correct_answer\": \"4\", \"reason\": \"arithmetic error\"}]\n```",
	}}
	r := NewRunner(p, nil, testLogger(), fastOpts())

	findings, err := r.Run(context.Background(), sampleSets())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", findings)
	}
	f := findings[0]
	if f.SetID != "g1-add-1" || f.SetTitle != "Addition Facts" {
		t.Fatalf("set identity not attached: %+v", f)
	}
	if f.CorrectAnswer != "4" {
		t.Fatalf("finding body: %+v", f)
	}
}

func TestRunGarbageResponseMeansZeroFindings(t *testing.T) {
	p := &fakeProvider{responses: []string{"I could not process this request, sorry."}}
	r := NewRunner(p, nil, testLogger(), fastOpts())

	findings, err := r.Run(context.Background(), sampleSets())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("unparseable response must yield zero findings, got %+v", findings)
	}
}

func TestRunRetriesRateLimit(t *testing.T) {
	p := &fakeProvider{
		errs:      []error{&httpx.HTTPError{Status: 429, Body: "quota"}, nil},
		responses: []string{"", "[]"},
	}
	r := NewRunner(p, nil, testLogger(), fastOpts())

	if _, err := r.Run(context.Background(), sampleSets()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.calls != 2 {
		t.Fatalf("expected a retry after 429, got %d calls", p.calls)
	}
}

func TestRunDoesNotRetryOtherErrors(t *testing.T) {
	p := &fakeProvider{errs: []error{errors.New("model not found")}}
	r := NewRunner(p, nil, testLogger(), fastOpts())

	findings, err := r.Run(context.Background(), sampleSets())
	if err != nil {
		t.Fatalf("per-set failures must not abort the run: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("failed set contributes zero findings, got %+v", findings)
	}
	if p.calls != 1 {
		t.Fatalf("non-quota errors must not retry, got %d calls", p.calls)
	}
}

func TestRunUsesCache(t *testing.T) {
	cache := newMemCache()
	p := &fakeProvider{responses: []string{
		"[{\"question_text\": \"What is 2 + 2?\", \"current_answer\": \"3\", \"correct_answer\": \"4\", \"reason\": \"arithmetic error\"}]",
	}}
	r := NewRunner(p, cache, testLogger(), fastOpts())

	first, err := r.Run(context.Background(), sampleSets())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if p.calls != 1 || len(first) != 1 {
		t.Fatalf("first run calls=%d findings=%d", p.calls, len(first))
	}

	second, err := r.Run(context.Background(), sampleSets())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("cached verdict must skip the provider, got %d calls", p.calls)
	}
	if len(second) != 1 || second[0].CorrectAnswer != "4" {
		t.Fatalf("cached findings: %+v", second)
	}
}

func TestRunContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &fakeProvider{errs: []error{ctx.Err()}}
	r := NewRunner(p, nil, testLogger(), fastOpts())

	if _, err := r.Run(ctx, sampleSets()); err == nil {
		t.Fatal("cancelled context must abort the run")
	}
}

func TestCacheKeyVariesByGradeAndPayload(t *testing.T) {
	a := cacheKey(1, []byte("payload"))
	b := cacheKey(2, []byte("payload"))
	c := cacheKey(1, []byte("other"))
	if a == b || a == c {
		t.Fatalf("keys must differ: %s %s %s", a, b, c)
	}
	if a != cacheKey(1, []byte("payload")) {
		t.Fatal("key must be stable for identical input")
	}
}
