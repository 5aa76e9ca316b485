package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citygraph/pkg/pipeline"
)

// renderFlags holds the flags of the render command.
type renderFlags struct {
	output string
	format string
	title  string
	seed   int64
}

// renderCommand creates the render command for a single dataset.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [input.json]",
		Short: "Render one city graph dataset",
		Long: `Render one city graph dataset to PNG, SVG or positioned DOT.

The output defaults to the input name with the format's extension, written
to the output directory (--output-dir or output_dir) or, without one, next
to the input. The format is taken from --format, else from the output
extension, else PNG. A --format that contradicts the output extension is
rejected. The native engine only produces PNG.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			opts := c.pipelineOptions(cfg)
			opts.Format = flags.format
			if cmd.Flags().Changed("title") {
				opts.Render.Title = flags.title
			}
			if cmd.Flags().Changed("seed") {
				opts.Render.Seed = flags.seed
			}

			job := pipeline.Job{
				Input:  args[0],
				Output: renderOutput(args[0], flags.output, flags.format, cfg.OutputDir),
			}
			return c.runJobs(cmd.Context(), []pipeline.Job{job}, opts)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: png (default), svg, dot")
	cmd.Flags().StringVar(&flags.title, "title", "", "figure title (empty for none)")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "layout seed")

	return cmd
}

// renderOutput picks the output path for input. An explicit output is used
// as given; otherwise the input's base name gets the format's extension and
// lands in outputDir, or beside the input when outputDir is empty.
func renderOutput(input, output, format, outputDir string) string {
	if output != "" {
		return output
	}
	if format == "" {
		format = pipeline.FormatPNG
	}
	if outputDir == "" {
		outputDir = filepath.Dir(input)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outputDir, base+"."+format)
}
