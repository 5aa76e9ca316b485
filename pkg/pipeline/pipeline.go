// Package pipeline runs the load → build → render → save pipeline for city
// graph datasets.
//
// # Architecture
//
// A [Job] names one input dataset and one output image. [Runner.Run]
// processes a job in four stages:
//
//  1. Load: read the dataset JSON and build the deduplicated city graph
//  2. Key: hash the input bytes together with the render options
//  3. Render: lay out and draw with the selected engine (skipped on a
//     cache hit)
//  4. Save: write the image, creating the output directory if needed
//
// Each job writes its own rendering; nothing is shared between jobs except
// the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	opts := pipeline.Options{Engine: pipeline.EngineGraphviz}
//	results, err := runner.RunAll(ctx, pipeline.DefaultJobs("../dataset"), opts)
//
// # Engines
//
// "graphviz" (default) uses neato's Kamada-Kawai layout and renders PNG,
// SVG or positioned DOT. "native" uses gonum's Eades layout and draws PNG
// with gg.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/citygraph/pkg/cache"
	"github.com/matzehuels/citygraph/pkg/citygraph"
	cgerrors "github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/render"
)

// Engine names.
const (
	EngineGraphviz = "graphviz"
	EngineNative   = "native"

	DefaultEngine = EngineGraphviz
)

// Format constants for output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatDOT = "dot"
)

// ValidEngines is the set of supported engines.
var ValidEngines = map[string]bool{
	EngineGraphviz: true,
	EngineNative:   true,
}

// engineFormats lists the formats each engine can produce.
var engineFormats = map[string]map[string]bool{
	EngineGraphviz: {FormatPNG: true, FormatSVG: true, FormatDOT: true},
	EngineNative:   {FormatPNG: true},
}

// Default job file names, relative to the dataset directory. Images are
// written next to the datasets they show.
const (
	GraphInput  = "graph.json"
	GraphOutput = "city_graph_visualization.png"
	MSTInput    = "mst_graph.json"
	MSTOutput   = "mlt_city_graph_visualization.png"
)

// Job is one input dataset rendered to one output file.
type Job struct {
	Name   string `toml:"name"`
	Input  string `toml:"input"`
	Output string `toml:"output"`
}

// DefaultJobs returns the full graph and MST jobs reading from and writing
// to datasetDir.
func DefaultJobs(datasetDir string) []Job {
	return []Job{
		{Name: "graph", Input: filepath.Join(datasetDir, GraphInput), Output: filepath.Join(datasetDir, GraphOutput)},
		{Name: "mst", Input: filepath.Join(datasetDir, MSTInput), Output: filepath.Join(datasetDir, MSTOutput)},
	}
}

// Options configures a pipeline run.
type Options struct {
	// Engine selects the renderer: "graphviz" or "native".
	Engine string

	// Format forces the output format. When empty it is taken from each
	// job's output extension.
	Format string

	// Render controls the canvas. A zero value means render.DefaultOptions.
	Render render.Options

	// Refresh ignores cached renderings (they are still rewritten).
	Refresh bool

	Logger *log.Logger
}

// Result describes one completed job.
type Result struct {
	Job      Job
	Graph    *citygraph.Graph
	Format   string
	Size     int
	CacheHit bool
	Stats    Stats
}

// Stats contains timing information for one job.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// ValidateEngine checks that an engine name is known.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return cgerrors.New(cgerrors.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: graphviz, native)", engine)
	}
	return nil
}

// ValidateFormat checks that engine can produce format.
func ValidateFormat(engine, format string) error {
	if !engineFormats[engine][format] {
		return cgerrors.New(cgerrors.ErrCodeInvalidFormat, "engine %s cannot produce %q", engine, format)
	}
	return nil
}

// FormatFor derives an output format from a file name's extension.
func FormatFor(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Render == (render.Options{}) {
		o.Render = render.DefaultOptions()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks engine and canvas. Formats are
// checked per job in [Options.FormatFor].
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.Format != "" {
		if err := ValidateFormat(o.Engine, o.Format); err != nil {
			return err
		}
	}
	return o.Render.Validate()
}

// FormatFor resolves and validates the format for writing to output. A
// forced format must agree with the output's extension when that extension
// names another format; other extensions (".gv", ".txt") are accepted.
func (o *Options) FormatFor(output string) (string, error) {
	if err := cgerrors.ValidateOutputPath(output); err != nil {
		return "", err
	}
	ext := FormatFor(output)
	format := o.Format
	if format == "" {
		format = ext
	} else if ext != format && isFormat(ext) {
		return "", cgerrors.New(cgerrors.ErrCodeInvalidFormat, "output %s has a .%s extension but the format is %s", output, ext, format)
	}
	if err := ValidateFormat(o.Engine, format); err != nil {
		return "", err
	}
	return format, nil
}

func isFormat(s string) bool {
	return s == FormatPNG || s == FormatSVG || s == FormatDOT
}

// keyOpts returns cache key options for rendering in format.
func (o *Options) keyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Engine:   o.Engine,
		Format:   format,
		DPI:      o.Render.DPI,
		WidthIn:  o.Render.WidthIn,
		HeightIn: o.Render.HeightIn,
		Title:    o.Render.Title,
		Seed:     o.Render.Seed,
	}
}

func (j Job) String() string {
	if j.Name != "" {
		return j.Name
	}
	return fmt.Sprintf("%s → %s", j.Input, j.Output)
}
