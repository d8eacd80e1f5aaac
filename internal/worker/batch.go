package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// BatchProcessor enriches multiple input names concurrently
type BatchProcessor struct {
	enricher    Enricher
	concurrency int
}

// NewBatchProcessor creates a batch processor over the given enricher
func NewBatchProcessor(enricher Enricher, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		enricher:    enricher,
		concurrency: concurrency,
	}
}

// ProcessNames enriches the given names concurrently, one job per name
func (b *BatchProcessor) ProcessNames(ctx context.Context, names []string) []JobResult {
	if len(names) == 0 {
		return []JobResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, name := range names {
		pool.Submit(Job{Name: name, Enricher: b.enricher})
	}

	return pool.Wait()
}

// ProcessFile reads input names from a file and enriches them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]JobResult, error) {
	names, err := ReadNamesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}

	return b.ProcessNames(ctx, names), nil
}

// ReadNamesFromFile reads input names from a file, one per line.
// Blank lines and # comments are skipped; duplicates are dropped.
func ReadNamesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var names []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			names = append(names, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return names, nil
}
