package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/citygraph/pkg/config"
	cgerrors "github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/pipeline"
)

const sampleGraph = `{
	"cities": {
		"Paris": {"country": "France"},
		"Lyon": {"country": "France"},
		"Zurich": {"country": "Switzerland"}
	},
	"adjacency_list": {
		"Paris": {"Lyon": 465},
		"Lyon": {"Paris": 465, "Zurich": 408},
		"Zurich": {"Lyon": 408}
	}
}`

const sampleMST = `{
	"cities": {"Paris": {"country": "France"}, "Lyon": {"country": "France"}},
	"adjacency_list": {"Paris": {"Lyon": 465}, "Lyon": {"Paris": 465}}
}`

// execute runs a fresh root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("%s is not a PNG: %v", path, err)
	}
}

func TestRootRendersDefaultJobs(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "dataset")
	out := filepath.Join(dir, "out")
	writeFile(t, filepath.Join(dataset, pipeline.GraphInput), sampleGraph)
	writeFile(t, filepath.Join(dataset, pipeline.MSTInput), sampleMST)

	_, err := execute(t, "--dataset", dataset, "--output-dir", out, "--engine", "native", "--dpi", "20", "--no-cache")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	assertPNG(t, filepath.Join(out, pipeline.GraphOutput))
	assertPNG(t, filepath.Join(out, pipeline.MSTOutput))
}

func TestRootWritesBesideDatasets(t *testing.T) {
	dataset := t.TempDir()
	writeFile(t, filepath.Join(dataset, pipeline.GraphInput), sampleGraph)
	writeFile(t, filepath.Join(dataset, pipeline.MSTInput), sampleMST)

	if _, err := execute(t, "--dataset", dataset, "--engine", "native", "--dpi", "20", "--no-cache"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	assertPNG(t, filepath.Join(dataset, pipeline.GraphOutput))
	assertPNG(t, filepath.Join(dataset, pipeline.MSTOutput))
}

func TestRootMissingDataset(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--dataset", dir, "--output-dir", dir, "--engine", "native", "--no-cache")
	if err == nil {
		t.Fatal("Execute() expected error for missing dataset")
	}
	if !cgerrors.Is(err, cgerrors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want %q", cgerrors.GetCode(err), cgerrors.ErrCodeFileNotFound)
	}
}

func TestRootRejectsArgs(t *testing.T) {
	if _, err := execute(t, "graph.json"); err == nil {
		t.Error("root command should reject positional arguments")
	}
}

func TestRootInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code cgerrors.Code
	}{
		{"engine", []string{"--engine", "cairo"}, cgerrors.ErrCodeInvalidEngine},
		{"dpi", []string{"--dpi=-5"}, cgerrors.ErrCodeInvalidConfig},
		{"config", []string{"--config", "/nonexistent/citygraph.toml"}, cgerrors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append(tt.args, "--no-cache")...)
			if !cgerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %q", err, tt.code)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cities.json")
	writeFile(t, input, sampleGraph)

	t.Run("default output", func(t *testing.T) {
		out := filepath.Join(dir, "out")
		if _, err := execute(t, "render", input, "--output-dir", out, "--engine", "native", "--dpi", "20", "--no-cache"); err != nil {
			t.Fatalf("render error: %v", err)
		}
		assertPNG(t, filepath.Join(out, "cities.png"))
	})

	t.Run("beside the input", func(t *testing.T) {
		if _, err := execute(t, "render", input, "--engine", "native", "--dpi", "20", "--no-cache"); err != nil {
			t.Fatalf("render error: %v", err)
		}
		assertPNG(t, filepath.Join(dir, "cities.png"))
	})

	t.Run("explicit output", func(t *testing.T) {
		output := filepath.Join(dir, "nested", "graph.png")
		if _, err := execute(t, "render", input, "-o", output, "--engine", "native", "--dpi", "20", "--no-cache"); err != nil {
			t.Fatalf("render error: %v", err)
		}
		assertPNG(t, output)
	})

	t.Run("native cannot write svg", func(t *testing.T) {
		_, err := execute(t, "render", input, "-f", "svg", "--output-dir", dir, "--engine", "native", "--no-cache")
		if !cgerrors.Is(err, cgerrors.ErrCodeInvalidFormat) {
			t.Errorf("error = %v, want INVALID_FORMAT", err)
		}
	})

	t.Run("format disagrees with output extension", func(t *testing.T) {
		output := filepath.Join(dir, "mismatch.png")
		_, err := execute(t, "render", input, "-f", "svg", "-o", output, "--no-cache")
		if !cgerrors.Is(err, cgerrors.ErrCodeInvalidFormat) {
			t.Errorf("error = %v, want INVALID_FORMAT", err)
		}
		if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
			t.Errorf("%s was written despite the mismatch", output)
		}
	})

	t.Run("requires input", func(t *testing.T) {
		if _, err := execute(t, "render"); err == nil {
			t.Error("render without input should fail")
		}
	})
}

func TestRenderCommandCaches(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	dir := t.TempDir()
	input := filepath.Join(dir, "cities.json")
	writeFile(t, input, sampleGraph)

	if _, err := execute(t, "render", input, "--output-dir", dir, "--engine", "native", "--dpi", "20"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	entries, _ := filepath.Glob(filepath.Join(cacheHome, appName, "*", "*.json"))
	if len(entries) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(entries))
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	entries, _ = filepath.Glob(filepath.Join(cacheHome, appName, "*", "*.json"))
	if len(entries) != 0 {
		t.Errorf("cache entries after clear = %d, want 0", len(entries))
	}
}

func TestCachePathCommand(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(cacheHome, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearEmpty(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear on a missing directory: %v", err)
	}
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "citygraph.toml")
	writeFile(t, path, `
engine = "native"

[render]
title = "Europe"
`)

	out, err := execute(t, "config", "--config", path, "--dpi", "150")
	if err != nil {
		t.Fatalf("config error: %v", err)
	}

	var got config.Config
	if _, err := toml.Decode(out, &got); err != nil {
		t.Fatalf("config output is not TOML: %v\n%s", err, out)
	}
	if got.Engine != pipeline.EngineNative {
		t.Errorf("engine = %q, want native", got.Engine)
	}
	if got.Render.DPI != 150 {
		t.Errorf("dpi = %d, want 150 (flag override)", got.Render.DPI)
	}
	if got.Render.Title != "Europe" {
		t.Errorf("title = %q, want Europe", got.Render.Title)
	}
	if len(got.Jobs) != 2 {
		t.Errorf("jobs = %d, want the 2 defaults", len(got.Jobs))
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("completion %s output does not mention %s", shell, appName)
			}
		})
	}

	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion should reject unknown shells")
	}
}

func TestRenderOutput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		format string
		outDir string
		want   string
	}{
		{"explicit output wins", "data/graph.json", "x/y.svg", "png", "out", "x/y.svg"},
		{"png by default", "data/graph.json", "", "", "out", filepath.Join("out", "graph.png")},
		{"format extension", "data/graph.json", "", "svg", ".", "graph.svg"},
		{"no input extension", "graph", "", "dot", "out", filepath.Join("out", "graph.dot")},
		{"beside the input", filepath.Join("data", "graph.json"), "", "svg", "", filepath.Join("data", "graph.svg")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderOutput(tt.input, tt.output, tt.format, tt.outDir); got != tt.want {
				t.Errorf("renderOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		nodes, edges int
		format       string
		cached       bool
		want         []string
	}{
		{3, 2, "png", false, []string{"3 cities", "2 roads", "png", iconFresh}},
		{1, 0, "svg", true, []string{"1 city", "0 roads", "svg", iconCached}},
		{2, 1, "", false, []string{"2 cities", "1 road", iconFresh}},
	}

	for _, tt := range tests {
		got := statsLine(tt.nodes, tt.edges, tt.format, tt.cached)
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("statsLine(%d, %d, %q, %v) = %q, missing %q", tt.nodes, tt.edges, tt.format, tt.cached, got, w)
			}
		}
	}
}
