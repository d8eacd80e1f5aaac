package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ubmlab/kgenrich/internal/enrich"
	"github.com/ubmlab/kgenrich/internal/model"
	"github.com/ubmlab/kgenrich/internal/schema"
	"github.com/ubmlab/kgenrich/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Enrich multiple names from a file in parallel",
	Long: `Batch enriches multiple input names concurrently:
- Read names from the input file (one per line, # comments skipped)
- Run one independent enrichment per name with a configurable worker count
- Write one JSON result file per name into the output directory

Example:
  kgenrich batch names.txt
  kgenrich batch names.txt --concurrency 8 --output-dir ./results
  kgenrich batch names.txt --type geo --boundaries ./boundaries`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./kgenrich-results", "output directory for result files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Pipeline flags shared with the enrich command
	batchCmd.Flags().IntVar(&limit, "limit", 1, "maximum number of candidate entities per name")
	batchCmd.Flags().StringVar(&language, "language", "en", "language for labels, descriptions and aliases")
	batchCmd.Flags().StringVar(&typeHint, "type", "", "entity type constraint (person, organization, geographic)")
	batchCmd.Flags().StringVar(&boundariesDir, "boundaries", "", "directory of boundary GeoJSON files (enables geofencing)")
	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	batchCmd.Flags().BoolVar(&respectRobots, "robots", false, "check robots.txt before knowledge-base requests")
	batchCmd.Flags().BoolVar(&outYAML, "yaml", false, "render YAML instead of JSON")
}

// batchEnricher binds fixed options to an enricher for pool jobs
type batchEnricher struct {
	enricher *enrich.Enricher
	opts     enrich.Options
}

func (b *batchEnricher) Enrich(ctx context.Context, text string) ([]model.Result, error) {
	return b.enricher.Enrich(ctx, text, b.opts)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	hint, ok := schema.ParseHint(typeHint)
	if !ok {
		return fmt.Errorf("unknown type %q (want person, organization or geographic)", typeHint)
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\nkgenrich batch\n")
	fmt.Fprintf(os.Stderr, "  Input file:  %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:  %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:     %v\n\n", batchTimeout)

	cfg := buildConfig()
	enricher, err := buildEnricher(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(&batchEnricher{
		enricher: enricher,
		opts: enrich.Options{
			Limit:    limit,
			Language: language,
			Hint:     hint,
		},
	}, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	renderer := enrich.NewRenderer(outYAML)
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", result.Name, result.Err)
			continue
		}

		path := filepath.Join(outputDir, resultFileName(result.Name, outYAML))
		if err := renderer.RenderFile(result.Results, path); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", result.Name, err)
			continue
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "  ✓ %s -> %s\n", result.Name, path)
		}
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d names (%d failed)\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d names failed", failed, len(results))
	}
	return nil
}

// resultFileName slugifies an input name into a safe file name
func resultFileName(name string, asYAML bool) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "result"
	}
	if asYAML {
		return slug + ".yaml"
	}
	return slug + ".json"
}
