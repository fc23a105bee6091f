package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/bartier/internal/model"
)

// Builder assembles the layout for one bar
type Builder interface {
	Build(content model.BarContent, manual model.Tier) *model.Layout
}

// LayoutJob builds the layout of a single bar
type LayoutJob struct {
	Index   int
	Bar     model.BarContent
	Manual  model.Tier
	Builder Builder
}

// Execute builds the layout unless ctx is already done
func (j *LayoutJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &LayoutResult{Index: j.Index, BarID: j.Bar.ID, Error: err}
	}
	return &LayoutResult{
		Index:  j.Index,
		BarID:  j.Bar.ID,
		Layout: j.Builder.Build(j.Bar, j.Manual),
	}
}

// LayoutResult is the outcome of a LayoutJob
type LayoutResult struct {
	Index  int
	BarID  string
	Layout *model.Layout
	Error  error
}

func (r *LayoutResult) GetError() error {
	return r.Error
}

// BatchProcessor builds layouts for many bars concurrently
type BatchProcessor struct {
	builder     Builder
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(builder Builder, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		builder:     builder,
		concurrency: concurrency,
	}
}

// ProcessBars builds a layout per bar and returns results in input order.
// Bars never reached because ctx was cancelled come back with ctx's error.
func (b *BatchProcessor) ProcessBars(ctx context.Context, bars []model.BarContent, manual model.Tier) []*LayoutResult {
	if len(bars) == 0 {
		return []*LayoutResult{}
	}

	jobs := make([]Job, len(bars))
	for i, bar := range bars {
		jobs[i] = &LayoutJob{Index: i, Bar: bar, Manual: manual, Builder: b.builder}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	results := pool.Run(jobs)

	out := make([]*LayoutResult, len(bars))
	for _, r := range results {
		lr := r.(*LayoutResult)
		out[lr.Index] = lr
	}
	for i, r := range out {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("bar %s was not processed", bars[i].ID)
			}
			out[i] = &LayoutResult{Index: i, BarID: bars[i].ID, Error: err}
		}
	}

	return out
}

// Summarize reduces successful results to one line per bar, sorted by tier
// (gold first) then id
func Summarize(results []*LayoutResult) []model.TierSummary {
	var out []model.TierSummary
	for _, r := range results {
		if r.Error != nil || r.Layout == nil {
			continue
		}
		out = append(out, model.TierSummary{
			BarID:    r.Layout.BarID,
			Name:     r.Layout.Name,
			Tier:     r.Layout.Tier,
			Sections: len(r.Layout.Sections),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tier.Rank() != out[j].Tier.Rank() {
			return out[i].Tier.Rank() > out[j].Tier.Rank()
		}
		return out[i].BarID < out[j].BarID
	})
	return out
}

// ReadSourcesFromFile reads catalog sources (paths or URLs), one per line.
// Blank lines and # comments are skipped, duplicates dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
