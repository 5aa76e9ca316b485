// Package config loads citygraph settings from TOML.
//
// A config file overlays the defaults; every key is optional:
//
//	dataset_dir = "../dataset/"
//	output_dir  = ""            # empty: write next to the datasets
//	engine      = "graphviz"
//
//	[render]
//	dpi       = 300
//	width_in  = 14.0
//	height_in = 10.0
//	title     = "City Graph with Distances"
//	seed      = 42
//
//	[[jobs]]
//	name   = "graph"
//	input  = "graph.json"
//	output = "city_graph_visualization.png"
//
// Relative job inputs resolve against dataset_dir and relative outputs
// against output_dir, or against dataset_dir when output_dir is empty.
// Listing [[jobs]] replaces the default jobs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	cgerrors "github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/pipeline"
	"github.com/matzehuels/citygraph/pkg/render"
)

// DefaultDatasetDir holds the input datasets and, unless output_dir is set,
// the rendered images.
const DefaultDatasetDir = "../dataset/"

// Config holds everything needed to run the default pipeline.
type Config struct {
	DatasetDir string         `toml:"dataset_dir"`
	OutputDir  string         `toml:"output_dir"`
	Engine     string         `toml:"engine"`
	Render     render.Options `toml:"render"`
	Jobs       []pipeline.Job `toml:"jobs"`
}

// Default returns the built-in configuration: the full graph and the MST
// read from ../dataset/, rendered by Graphviz at 300 DPI and written back
// into ../dataset/.
func Default() *Config {
	return &Config{
		DatasetDir: DefaultDatasetDir,
		Engine:     pipeline.DefaultEngine,
		Render:     render.DefaultOptions(),
		Jobs:       pipeline.DefaultJobs(""),
	}
}

// Load reads path over the defaults and validates the result. Unknown keys
// are rejected so typos do not pass silently.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.Jobs = nil

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cgerrors.Wrap(cgerrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, cgerrors.New(cgerrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !md.IsDefined("jobs") {
		cfg.Jobs = Default().Jobs
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks engine, canvas and jobs.
func (c *Config) Validate() error {
	if err := pipeline.ValidateEngine(c.Engine); err != nil {
		return err
	}
	if err := c.Render.Validate(); err != nil {
		return err
	}
	if len(c.Jobs) == 0 {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "no jobs configured")
	}

	seen := make(map[string]bool, len(c.Jobs))
	for i, j := range c.Jobs {
		if j.Input == "" {
			return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "job %d: input is required", i+1)
		}
		if err := cgerrors.ValidateOutputPath(j.Output, pipeline.FormatPNG, pipeline.FormatSVG, pipeline.FormatDOT); err != nil {
			return fmt.Errorf("job %d: %w", i+1, err)
		}
		out := filepath.Clean(c.resolve(c.OutputBase(), j.Output))
		if seen[out] {
			return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "job %d: output %s is written by an earlier job", i+1, j.Output)
		}
		seen[out] = true
	}
	return nil
}

// ResolvedJobs returns the jobs with paths resolved against the dataset and
// output directories.
func (c *Config) ResolvedJobs() []pipeline.Job {
	jobs := make([]pipeline.Job, len(c.Jobs))
	for i, j := range c.Jobs {
		jobs[i] = pipeline.Job{
			Name:   j.Name,
			Input:  c.resolve(c.DatasetDir, j.Input),
			Output: c.resolve(c.OutputBase(), j.Output),
		}
	}
	return jobs
}

// OutputBase is the directory relative outputs resolve against: OutputDir,
// or DatasetDir when OutputDir is empty.
func (c *Config) OutputBase() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.DatasetDir
}

// PipelineOptions converts the config to pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Engine: c.Engine,
		Render: c.Render,
	}
}

func (c *Config) resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
