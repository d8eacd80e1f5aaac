package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ubmlab/kgenrich/internal/model"
)

// countingEnricher returns one canned result per call and counts invocations
type countingEnricher struct {
	calls atomic.Int32
	fail  map[string]bool
}

func (e *countingEnricher) Enrich(ctx context.Context, text string) ([]model.Result, error) {
	e.calls.Add(1)
	if e.fail[text] {
		return nil, errors.New("enrich failed")
	}
	return []model.Result{&model.ErrorResult{Error: model.ErrorNoMatch}}, nil
}

func TestPool_RunsAllJobs(t *testing.T) {
	enricher := &countingEnricher{}
	pool := NewPool(3)
	pool.Start()

	names := []string{"Mannheim", "Heidelberg", "Ludwigshafen", "Worms", "Speyer"}
	for _, name := range names {
		pool.Submit(Job{Name: name, Enricher: enricher})
	}

	results := pool.Wait()
	if len(results) != len(names) {
		t.Fatalf("Expected %d results, got %d", len(names), len(results))
	}
	if int(enricher.calls.Load()) != len(names) {
		t.Errorf("Expected %d enrich calls, got %d", len(names), enricher.calls.Load())
	}

	seen := make(map[string]bool)
	for _, result := range results {
		if result.Err != nil {
			t.Errorf("Unexpected error for %s: %v", result.Name, result.Err)
		}
		seen[result.Name] = true
	}
	for _, name := range names {
		if !seen[name] {
			t.Errorf("Missing result for %s", name)
		}
	}
}

func TestPool_FailuresAreIsolated(t *testing.T) {
	enricher := &countingEnricher{fail: map[string]bool{"Heidelberg": true}}
	pool := NewPool(2)
	pool.Start()

	for _, name := range []string{"Mannheim", "Heidelberg", "Worms"} {
		pool.Submit(Job{Name: name, Enricher: enricher})
	}

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	failures := 0
	for _, result := range results {
		if result.Err != nil {
			failures++
			if result.Name != "Heidelberg" {
				t.Errorf("Unexpected failure for %s", result.Name)
			}
		}
	}
	if failures != 1 {
		t.Errorf("Expected exactly 1 failure, got %d", failures)
	}
}

func TestPool_ZeroWorkersClampedToOne(t *testing.T) {
	enricher := &countingEnricher{}
	pool := NewPool(0)
	pool.Start()

	pool.Submit(Job{Name: "Mannheim", Enricher: enricher})
	results := pool.Wait()

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
}

func TestPool_WaitWithoutJobs(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	if results := pool.Wait(); len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}
