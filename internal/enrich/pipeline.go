package enrich

import (
	"context"
	"fmt"

	"github.com/ubmlab/kgenrich/internal/model"
	"github.com/ubmlab/kgenrich/internal/schema"
)

// Searcher resolves a free-text string to candidate entity identifiers
type Searcher interface {
	Search(ctx context.Context, text string, limit int, language string) ([]string, error)
}

// EntityFetcher retrieves the full claim record for one identifier
type EntityFetcher interface {
	FetchEntity(ctx context.Context, id string) (*model.EntityRecord, error)
}

// Client is the knowledge-base surface the pipeline depends on
type Client interface {
	Searcher
	EntityFetcher
}

// Options tune one enrichment call
type Options struct {
	Limit    int             // Maximum candidates to process (min 1)
	Language string          // Language for labels, descriptions and aliases
	Hint     schema.TypeHint // Optional category constraint
}

// Enricher orchestrates search, fetch, classification and extraction
type Enricher struct {
	client    Client
	extractor *Extractor
}

// New creates an enricher over the given knowledge-base client and extractor
func New(client Client, extractor *Extractor) *Enricher {
	return &Enricher{
		client:    client,
		extractor: extractor,
	}
}

// Enrich resolves text to up to Limit candidates and processes each one to
// completion, preserving the search ranking. Every candidate yields exactly
// one entry: an enriched record, or an error record when its fetch failed or
// its category did not match the hint. A failed candidate never aborts the
// others. When search finds nothing the output is a single no_match entry,
// so callers always receive at least one element.
//
// The returned error covers only the search call itself; per-candidate
// failures are in-band.
func (e *Enricher) Enrich(ctx context.Context, text string, opts Options) ([]model.Result, error) {
	limit := opts.Limit
	if limit < 1 {
		limit = 1
	}
	language := opts.Language
	if language == "" {
		language = "en"
	}

	ids, err := e.client.Search(ctx, text, limit, language)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if len(ids) == 0 {
		return []model.Result{&model.ErrorResult{Error: model.ErrorNoMatch}}, nil
	}

	results := make([]model.Result, 0, len(ids))
	for _, id := range ids {
		results = append(results, e.enrichOne(ctx, id, language, opts.Hint))
	}
	return results, nil
}

// enrichOne runs the fetch -> classify -> extract pipeline for one candidate
func (e *Enricher) enrichOne(ctx context.Context, id string, language string, hint schema.TypeHint) model.Result {
	record, err := e.client.FetchEntity(ctx, id)
	if err != nil {
		return &model.ErrorResult{Error: model.ErrorEntityDataUnavailable, ID: id}
	}

	sch := schema.Classify(record, hint)
	if sch == nil {
		return &model.ErrorResult{Error: model.ErrorTypeMismatch, ID: id}
	}

	return e.extractor.Extract(record, sch, language)
}
