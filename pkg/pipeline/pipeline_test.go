package pipeline

import (
	"path/filepath"
	"testing"

	cgerrors "github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/render"
)

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{"graphviz", false},
		{"native", false},
		{"cairo", true},
		{"Graphviz", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateEngine(tt.engine)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
		}
		if err != nil && !cgerrors.Is(err, cgerrors.ErrCodeInvalidEngine) {
			t.Errorf("ValidateEngine(%q) code = %v", tt.engine, cgerrors.GetCode(err))
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		engine  string
		format  string
		wantErr bool
	}{
		{"graphviz", "png", false},
		{"graphviz", "svg", false},
		{"graphviz", "dot", false},
		{"graphviz", "pdf", true},
		{"native", "png", false},
		{"native", "svg", true},
		{"native", "dot", true},
		{"unknown", "png", true},
		{"graphviz", "", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.engine, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q, %q) error = %v, wantErr %v", tt.engine, tt.format, err, tt.wantErr)
		}
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		"out.png":         "png",
		"dir/OUT.SVG":     "svg",
		"graph.dot":       "dot",
		"noext":           "",
		"a.b/c.png":       "png",
		"archive.tar.png": "png",
	}
	for in, want := range tests {
		if got := FormatFor(in); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultJobs(t *testing.T) {
	jobs := DefaultJobs("../dataset/")
	if len(jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(jobs))
	}

	want := []Job{
		{Name: "graph", Input: filepath.Join("../dataset", "graph.json"), Output: filepath.Join("../dataset", "city_graph_visualization.png")},
		{Name: "mst", Input: filepath.Join("../dataset", "mst_graph.json"), Output: filepath.Join("../dataset", "mlt_city_graph_visualization.png")},
	}
	for i := range want {
		if jobs[i] != want[i] {
			t.Errorf("jobs[%d] = %+v, want %+v", i, jobs[i], want[i])
		}
	}
	if jobs[0].Output == jobs[1].Output {
		t.Error("jobs must write distinct outputs")
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if opts.Engine != DefaultEngine {
		t.Errorf("Engine = %q, want %q", opts.Engine, DefaultEngine)
	}
	if opts.Render != render.DefaultOptions() {
		t.Errorf("Render = %+v, want defaults", opts.Render)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode cgerrors.Code
	}{
		{name: "Zero", opts: Options{}},
		{name: "Native", opts: Options{Engine: EngineNative}},
		{name: "BadEngine", opts: Options{Engine: "dot"}, wantCode: cgerrors.ErrCodeInvalidEngine},
		{name: "NativeSVG", opts: Options{Engine: EngineNative, Format: FormatSVG}, wantCode: cgerrors.ErrCodeInvalidFormat},
		{
			name:     "BadCanvas",
			opts:     Options{Render: render.Options{DPI: -1, WidthIn: 14, HeightIn: 10}},
			wantCode: cgerrors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !cgerrors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestOptionsFormatFor(t *testing.T) {
	opts := Options{}
	opts.SetDefaults()

	if f, err := opts.FormatFor("out/graph.svg"); err != nil || f != FormatSVG {
		t.Errorf("FormatFor(svg) = %q, %v", f, err)
	}
	if _, err := opts.FormatFor("graph.gif"); !cgerrors.Is(err, cgerrors.ErrCodeInvalidFormat) {
		t.Errorf("FormatFor(gif) error = %v, want INVALID_FORMAT", err)
	}
	if _, err := opts.FormatFor(""); !cgerrors.Is(err, cgerrors.ErrCodeInvalidPath) {
		t.Errorf("FormatFor(\"\") error = %v, want INVALID_PATH", err)
	}

	opts.Format = FormatDOT
	if f, err := opts.FormatFor("graph.txt"); err != nil || f != FormatDOT {
		t.Errorf("forced format = %q, %v", f, err)
	}
	if f, err := opts.FormatFor("graph.dot"); err != nil || f != FormatDOT {
		t.Errorf("forced format matching extension = %q, %v", f, err)
	}

	mismatched := []struct {
		format string
		output string
	}{
		{FormatSVG, "out.png"},
		{FormatDOT, "out.svg"},
		{FormatPNG, "OUT.SVG"},
	}
	for _, tt := range mismatched {
		opts.Format = tt.format
		if _, err := opts.FormatFor(tt.output); !cgerrors.Is(err, cgerrors.ErrCodeInvalidFormat) {
			t.Errorf("FormatFor(%q) with format %s error = %v, want INVALID_FORMAT", tt.output, tt.format, err)
		}
	}
}

func TestJobString(t *testing.T) {
	if got := (Job{Name: "mst"}).String(); got != "mst" {
		t.Errorf("String() = %q", got)
	}
	if got := (Job{Input: "a.json", Output: "a.png"}).String(); got != "a.json → a.png" {
		t.Errorf("String() = %q", got)
	}
}
