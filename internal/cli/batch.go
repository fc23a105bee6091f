package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/bartier/internal/catalog"
	"github.com/ppiankov/bartier/internal/model"
	"github.com/ppiankov/bartier/internal/pipeline"
	"github.com/ppiankov/bartier/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	fromFile     string
	batchTier    string
	batchFormats []string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [catalog...]",
	Short: "Build layouts for every bar of one or more catalogs",
	Long: `Batch loads catalogs concurrently, builds the layout of every bar with a
worker pool and writes one file per bar and format.

Catalog sources can be listed in a file (one per line, # comments allowed).

Example:
  bartier batch bars.yaml
  bartier batch bars.yaml https://cms.example.com/more.json --output-dir ./layouts
  bartier batch --from-file sources.txt --concurrency 8 --format json,html`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./bartier-layouts", "output directory for layouts")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&fromFile, "from-file", "", "read catalog sources from file")
	batchCmd.Flags().StringVar(&batchTier, "tier", "", "manual tier applied to every bar")
	batchCmd.Flags().StringSliceVar(&batchFormats, "format", []string{"json", "md"}, "output formats (json, md, html)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown and HTML output")
}

func runBatch(cmd *cobra.Command, args []string) error {
	sources := append([]string(nil), args...)
	if fromFile != "" {
		listed, err := worker.ReadSourcesFromFile(fromFile)
		if err != nil {
			return err
		}
		sources = append(sources, listed...)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no catalog sources: pass catalogs as arguments or use --from-file")
	}

	manual, err := model.ParseTier(batchTier)
	if err != nil {
		return err
	}

	workers := concurrency
	if workers <= 0 {
		workers = cfg.Concurrency.Workers
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Catalogs:     %d\n", len(sources))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	catalogs, err := loadCatalogs(ctx, newLoader(cfg, logger), sources, workers)
	if err != nil {
		return err
	}
	bars := mergeBars(catalogs, logger)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(pipeline.NewPipeline(logger), workers)
	results := processor.ProcessBars(ctx, bars, manual)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter && !noFooter)
	failures := 0
	slugs := newSlugSet()
	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.BarID, result.Error)
			continue
		}
		slug := slugs.claim(result.BarID)
		for _, format := range batchFormats {
			path := filepath.Join(outputDir, slug+"."+extension(format))
			if err := renderer.Render(result.Layout, format, path); err != nil {
				failures++
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.BarID, err)
			}
		}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTIER\tSECTIONS")
	for _, s := range worker.Summarize(results) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.BarID, s.Name, s.Tier, s.Sections)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n  Total: %d bars, failures: %d\n\n", len(results), failures)
	if failures > 0 {
		return fmt.Errorf("batch finished with %d failures", failures)
	}
	return nil
}

// loadCatalogs loads every source concurrently and returns them in source order.
// The first failure cancels the remaining loads.
func loadCatalogs(ctx context.Context, loader *catalog.Loader, sources []string, limit int) ([]*catalog.Catalog, error) {
	catalogs := make([]*catalog.Catalog, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, src := range sources {
		g.Go(func() error {
			c, err := loader.Load(gctx, src)
			if err != nil {
				return err
			}
			catalogs[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalogs, nil
}

// mergeBars flattens catalogs. A bar id seen in an earlier catalog wins.
func mergeBars(catalogs []*catalog.Catalog, log *zap.Logger) []model.BarContent {
	seen := make(map[string]string)
	var bars []model.BarContent
	for _, c := range catalogs {
		for _, bar := range c.Bars() {
			if first, ok := seen[bar.ID]; ok {
				log.Warn("duplicate bar id skipped",
					zap.String("bar", bar.ID),
					zap.String("kept", first),
					zap.String("skipped", c.Source))
				continue
			}
			seen[bar.ID] = c.Source
			bars = append(bars, bar)
		}
	}
	return bars
}

func extension(format string) string {
	switch strings.ToLower(format) {
	case "markdown":
		return "md"
	default:
		return strings.ToLower(format)
	}
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

const maxFilenameBytes = 100

// sanitizeFilename sanitizes a bar id for use as a filename
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(strings.TrimSpace(s))
	s = strings.Trim(s, ".")
	if s == "" {
		s = "bar"
	}
	return truncateRunes(s, maxFilenameBytes)
}

// truncateRunes cuts s to at most n bytes without splitting a rune
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}

// slugSet hands out one filename per bar id. Ids that sanitize to the same
// name (or differ only in case) get -2, -3, ... suffixes in claim order.
type slugSet struct {
	used map[string]bool
}

func newSlugSet() *slugSet {
	return &slugSet{used: make(map[string]bool)}
}

func (s *slugSet) claim(id string) string {
	base := sanitizeFilename(id)
	slug := base
	for n := 2; s.used[strings.ToLower(slug)]; n++ {
		suffix := fmt.Sprintf("-%d", n)
		slug = truncateRunes(base, maxFilenameBytes-len(suffix)) + suffix
	}
	s.used[strings.ToLower(slug)] = true
	return slug
}
