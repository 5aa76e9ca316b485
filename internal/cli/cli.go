// Package cli implements the citygraph command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/citygraph/pkg/buildinfo"
	"github.com/matzehuels/citygraph/pkg/cache"
	"github.com/matzehuels/citygraph/pkg/config"
	"github.com/matzehuels/citygraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "citygraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags globalFlags
}

// globalFlags are the persistent flags shared by every command. Zero values
// leave the config file (or the defaults) untouched.
type globalFlags struct {
	configPath string
	datasetDir string
	outputDir  string
	engine     string
	dpi        int
	noCache    bool
	refresh    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Run without a subcommand, it renders every configured job: by default the
// full city graph and its minimum spanning tree from ../dataset/.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Citygraph renders city road networks as force-directed graph images",
		Long: `Citygraph loads a city graph (cities plus an adjacency list of road
distances) from JSON and renders it as an image: nodes placed by a
force-directed layout, sized and coloured by degree, edges weighted by
distance and labelled.

Without a subcommand it renders the configured jobs, by default:

  ../dataset/graph.json      → ../dataset/city_graph_visualization.png
  ../dataset/mst_graph.json  → ../dataset/mlt_city_graph_visualization.png`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runJobs(cmd.Context(), cfg.ResolvedJobs(), c.pipelineOptions(cfg))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "TOML config file (default: built-in settings)")
	pf.StringVar(&c.flags.datasetDir, "dataset", "", "directory holding the input datasets (default ../dataset/)")
	pf.StringVar(&c.flags.outputDir, "output-dir", "", "directory for rendered images (default: the dataset directory)")
	pf.StringVar(&c.flags.engine, "engine", "", "render engine: graphviz (default), native")
	pf.IntVar(&c.flags.dpi, "dpi", 0, "output resolution (default 300)")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "disable the render cache")
	pf.BoolVar(&c.flags.refresh, "refresh", false, "re-render even when a cached image exists")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads --config (or the defaults), applies flag overrides and
// validates the result.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if c.flags.configPath != "" {
		loaded, err := config.Load(c.flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.flags.datasetDir != "" {
		cfg.DatasetDir = c.flags.datasetDir
	}
	if c.flags.outputDir != "" {
		cfg.OutputDir = c.flags.outputDir
	}
	if c.flags.engine != "" {
		cfg.Engine = c.flags.engine
	}
	if c.flags.dpi != 0 {
		cfg.Render.DPI = c.flags.dpi
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CLI) pipelineOptions(cfg *config.Config) pipeline.Options {
	opts := cfg.PipelineOptions()
	opts.Refresh = c.flags.refresh
	opts.Logger = c.Logger
	return opts
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys carry the
// build version so an upgrade never serves images from an older renderer.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	store, err := newCache(c.flags.noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir(appName)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Running Jobs
// =============================================================================

// runJobs renders jobs in order and reports each written file.
func (c *CLI) runJobs(ctx context.Context, jobs []pipeline.Job, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger.Debug("running jobs", "count", len(jobs), "engine", opts.Engine)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d graph(s) with %s...", len(jobs), engineName(opts.Engine)))
	spinner.Start()

	results, err := runner.RunAll(ctx, jobs, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		printResults(results)
		return err
	}
	spinner.Stop()

	printResults(results)
	prog.done(fmt.Sprintf("Rendered %d graph(s)", len(results)))
	return nil
}

func printResults(results []*pipeline.Result) {
	for _, res := range results {
		printSuccess("Rendered %s", res.Job)
		printFile(res.Job.Output)
		printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Format, res.CacheHit)
	}
}

func engineName(engine string) string {
	if engine == "" {
		return pipeline.DefaultEngine
	}
	return engine
}
