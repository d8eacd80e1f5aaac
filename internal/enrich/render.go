package enrich

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ubmlab/kgenrich/internal/model"
)

// Renderer writes enrichment results as JSON or YAML
type Renderer struct {
	asYAML bool
}

// NewRenderer creates a renderer; asYAML selects YAML over JSON output
func NewRenderer(asYAML bool) *Renderer {
	return &Renderer{asYAML: asYAML}
}

// Render writes the result list to w
func (r *Renderer) Render(results []model.Result, w io.Writer) error {
	if r.asYAML {
		encoder := yaml.NewEncoder(w)
		if err := encoder.Encode(flatten(results)); err != nil {
			return err
		}
		return encoder.Close()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// RenderFile writes the result list to a file
func (r *Renderer) RenderFile(results []model.Result, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	return r.Render(results, f)
}

// RenderSummary prints a one-line digest per result to w
func (r *Renderer) RenderSummary(results []model.Result, w io.Writer) {
	for i, result := range results {
		switch entry := result.(type) {
		case *model.EnrichedResult:
			label := "(no label)"
			if entry.Label != nil {
				label = *entry.Label
			}
			fmt.Fprintf(w, "  %d. %s  %s\n", i+1, entry.ID, label)
		case *model.ErrorResult:
			if entry.ID != "" {
				fmt.Fprintf(w, "  %d. %s  error: %s\n", i+1, entry.ID, entry.Error)
			} else {
				fmt.Fprintf(w, "  %d. error: %s\n", i+1, entry.Error)
			}
		}
	}
}

// flatten converts results into plain maps for the YAML encoder,
// matching the flat JSON shape.
func flatten(results []model.Result) []map[string]interface{} {
	flat := make([]map[string]interface{}, 0, len(results))
	for _, result := range results {
		switch entry := result.(type) {
		case *model.EnrichedResult:
			flat = append(flat, entry.Flat())
		case *model.ErrorResult:
			m := map[string]interface{}{"error": string(entry.Error)}
			if entry.ID != "" {
				m["id"] = entry.ID
			}
			flat = append(flat, m)
		}
	}
	return flat
}
