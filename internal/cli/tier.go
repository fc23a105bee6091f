package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bartier/internal/catalog"
	"github.com/ppiankov/bartier/internal/model"
	"github.com/ppiankov/bartier/internal/tier"
)

var (
	tierBarID   string
	tierExplain bool
)

// tierCmd represents the tier command
var tierCmd = &cobra.Command{
	Use:   "tier <catalog>",
	Short: "Print the inferred tier of each bar",
	Long: `Tier classifies every bar in a catalog (or a single bar with --id)
and prints its inferred tier. With --explain the rules that decided the
tier are listed under each bar.

Example:
  bartier tier bars.yaml
  bartier tier https://cms.example.com/bars.json --id velvet --explain`,
	Args: cobra.ExactArgs(1),
	RunE: runTier,
}

func init() {
	rootCmd.AddCommand(tierCmd)

	tierCmd.Flags().StringVar(&tierBarID, "id", "", "only classify the bar with this id")
	tierCmd.Flags().BoolVar(&tierExplain, "explain", false, "list the rules behind each tier")
}

func runTier(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout())
	defer cancel()

	cat, err := loadCatalog(ctx, args[0])
	if err != nil {
		return err
	}

	bars := cat.Bars()
	if tierBarID != "" {
		bar, err := cat.Get(tierBarID)
		if err != nil {
			return err
		}
		bars = []model.BarContent{bar}
	}

	return writeTiers(cmd.OutOrStdout(), bars, tierExplain)
}

func writeTiers(w io.Writer, bars []model.BarContent, explain bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTIER")
	for _, bar := range bars {
		c := tier.Classify(bar)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", bar.ID, bar.Name, c.Tier)
		if !explain {
			continue
		}
		for _, r := range c.Reasons {
			fmt.Fprintf(tw, "\t  %s\t%s\n", r.Rule, r.Description)
		}
	}
	return tw.Flush()
}

// loadCatalog is shared by commands that take a single catalog argument
func loadCatalog(ctx context.Context, src string) (*catalog.Catalog, error) {
	return newLoader(cfg, logger).Load(ctx, src)
}

// loadTimeout covers a fetch with its retries and backoff
func loadTimeout() time.Duration {
	return 4*cfg.HTTP.Timeout + 10*time.Second
}
