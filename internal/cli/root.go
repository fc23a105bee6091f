package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/bartier/internal/cache"
	"github.com/ppiankov/bartier/internal/catalog"
	"github.com/ppiankov/bartier/internal/fetch"
	"github.com/ppiankov/bartier/internal/logging"
	"github.com/ppiankov/bartier/internal/model"
	"github.com/ppiankov/bartier/internal/worker"
)

const version = "0.1.0"

var (
	cfgFile string
	verbose bool
	noCache bool

	// cfg and logger are populated before any subcommand runs
	cfg    = model.DefaultConfig()
	logger = logging.Nop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bartier",
	Short: "Bartier - tiered bar detail layouts",
	Long: `Bartier decides how much of a bar's content its detail view shows.

Each bar in a catalog is classified as bronze, silver or gold from how
rich its content is. The tier selects a display config, and the config
selects and trims the sections of the detail view.

Catalogs are YAML or JSON files, local or served over http(s).`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose || cfg.Output.Verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bartier v%s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.bartier/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".bartier"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// BARTIER_HTTP_TIMEOUT etc.
	viper.SetEnvPrefix("BARTIER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	loaded, err := loadConfig(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		return
	}
	cfg = loaded
}

// loadConfig layers v over the built-in defaults
func loadConfig(v *viper.Viper) (*model.Config, error) {
	c := model.DefaultConfig()
	setDefaults(v, c)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it
func setDefaults(v *viper.Viper, c *model.Config) {
	v.SetDefault("http.timeout", c.HTTP.Timeout)
	v.SetDefault("http.user_agent", c.HTTP.UserAgent)
	v.SetDefault("http.max_body_bytes", c.HTTP.MaxBodyBytes)
	v.SetDefault("http.http_proxy", c.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", c.HTTP.HTTPSProxy)
	v.SetDefault("http.no_proxy", c.HTTP.NoProxy)
	v.SetDefault("http.respect_robots", c.HTTP.RespectRobots)
	v.SetDefault("cache.enabled", c.Cache.Enabled)
	v.SetDefault("cache.memory_ttl", c.Cache.MemoryTTL)
	v.SetDefault("cache.disk_dir", c.Cache.DiskDir)
	v.SetDefault("cache.disk_ttl", c.Cache.DiskTTL)
	v.SetDefault("concurrency.workers", c.Concurrency.Workers)
	v.SetDefault("rate_limiting.requests_per_second", c.RateLimiting.RequestsPerSecond)
	v.SetDefault("rate_limiting.burst_size", c.RateLimiting.BurstSize)
	v.SetDefault("output.verbose", c.Output.Verbose)
	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.include_footer", c.Output.IncludeFooter)
}

// newLoader wires the catalog loader: per-host rate limiting, robots.txt,
// retrying fetcher and the payload cache.
func newLoader(c *model.Config, log *zap.Logger) *catalog.Loader {
	opts := []fetch.Option{
		fetch.WithRateLimiter(worker.NewLimiter(c.RateLimiting.RequestsPerSecond, c.RateLimiting.BurstSize)),
		fetch.WithLogger(log),
	}
	if c.HTTP.RespectRobots {
		opts = append(opts, fetch.WithRobots(fetch.NewRobotsChecker(c.HTTP.UserAgent, c.HTTP.Timeout)))
	}

	var store cache.Cache
	if c.Cache.Enabled && !noCache {
		store = cache.New(c.Cache)
	}

	return catalog.NewLoader(fetch.NewFetcher(c.HTTP, opts...), store, log)
}
