package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bartier/internal/model"
	"github.com/ppiankov/bartier/internal/pipeline"
)

var (
	layoutTier string
	outJSON    string
	outMD      string
	outHTML    string
	noFooter   bool
)

// layoutCmd represents the layout command
var layoutCmd = &cobra.Command{
	Use:   "layout <catalog> <id>",
	Short: "Build the detail layout of one bar",
	Long: `Layout resolves the tier of one bar, looks up its display config and
assembles the ordered sections of its detail view.

A manual --tier replaces the inferred one. Without any output path the
layout is written to stdout in the configured format.

Example:
  bartier layout bars.yaml velvet
  bartier layout bars.yaml velvet --tier gold --md velvet.md --html velvet.html`,
	Args: cobra.ExactArgs(2),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().StringVar(&layoutTier, "tier", "", "manual tier override (bronze, silver, gold)")
	layoutCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	layoutCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	layoutCmd.Flags().StringVar(&outHTML, "html", "", "output HTML path")
	layoutCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown and HTML output")
}

func runLayout(cmd *cobra.Command, args []string) error {
	manual, err := model.ParseTier(layoutTier)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout())
	defer cancel()

	cat, err := loadCatalog(ctx, args[0])
	if err != nil {
		return err
	}

	layout, err := pipeline.NewPipeline(logger).BuildByID(cat, args[1], manual)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter && !noFooter)

	outputs := []struct{ format, path string }{
		{"json", outJSON},
		{"md", outMD},
		{"html", outHTML},
	}
	wrote := false
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := renderer.Render(layout, o.format, o.path); err != nil {
			return fmt.Errorf("write %s: %w", o.format, err)
		}
		fmt.Fprintf(os.Stderr, "✓ %s written to %s\n", o.format, o.path)
		wrote = true
	}
	if wrote {
		return nil
	}

	return renderer.Write(cmd.OutOrStdout(), layout, cfg.Output.Format)
}
