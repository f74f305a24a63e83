package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vestools/pkg/errors"
	"github.com/matzehuels/vestools/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[render]
view = "nodelink"
formats = ["svg", "png"]
width = 1024
labels = false
azimuth = 0

[cache]
url = "redis://localhost:6379/1"
`)
	cfg, got, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got != path {
		t.Errorf("path = %q", got)
	}
	if cfg.Render.View != "nodelink" || len(cfg.Render.Formats) != 2 || cfg.Render.Width != 1024 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Render.Labels == nil || *cfg.Render.Labels {
		t.Error("labels = false should decode to a false pointer")
	}
	if cfg.Render.Azimuth == nil || *cfg.Render.Azimuth != 0 {
		t.Error("explicit zero azimuth should be kept")
	}
	if cfg.Cache.URL != "redis://localhost:6379/1" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "[render\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[render]\ncolour = \"red\"\n", errors.ErrCodeInvalidConfig},
		{"bad view", "[render]\nview = \"4d\"\n", errors.ErrCodeInvalidView},
		{"bad format", "[render]\nformats = [\"gif\"]\n", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadConfig(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfigSearch(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, path, err := loadConfig("")
	if err != nil || path != "" {
		t.Fatalf("no config: path %q, err %v", path, err)
	}
	if cfg.Render.View != "" {
		t.Error("missing config should decode to zero values")
	}

	dir := filepath.Join(home, "vestools")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[cache]\ndisabled = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, path, err = loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "config.toml") || !cfg.Cache.Disabled {
		t.Errorf("found %q, cfg %+v", path, cfg.Cache)
	}
}

func TestApplyRenderConfig(t *testing.T) {
	cmd := &cobra.Command{}
	var opts pipeline.Options
	cmd.Flags().Float64Var(&opts.Width, "width", 800, "")
	cmd.Flags().Float64Var(&opts.Height, "height", 600, "")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "")
	if err := cmd.Flags().Parse([]string{"--height", "300"}); err != nil {
		t.Fatal(err)
	}

	no := false
	applyRenderConfig(cmd, RenderConfig{Width: 1000, Height: 900, Labels: &no}, &opts)

	if opts.Width != 1000 {
		t.Errorf("Width = %v, config should apply to unset flags", opts.Width)
	}
	if opts.Height != 300 {
		t.Errorf("Height = %v, flag should win", opts.Height)
	}
	if !opts.NoLabels {
		t.Error("labels = false should set NoLabels")
	}
}

func TestApplyRenderConfigZeroCamera(t *testing.T) {
	cmd := &cobra.Command{}
	var az, el float64
	cmd.Flags().Float64Var(&az, "azimuth", -60, "")
	cmd.Flags().Float64Var(&el, "elevation", 30, "")
	if err := cmd.Flags().Parse([]string{"--elevation", "45"}); err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{Azimuth: &az, Elevation: &el}

	zero := 0.0
	applyRenderConfig(cmd, RenderConfig{Azimuth: &zero, Elevation: &zero}, &opts)
	opts.SetRenderDefaults()

	if *opts.Azimuth != 0 {
		t.Errorf("Azimuth = %v, config 0 should apply", *opts.Azimuth)
	}
	if *opts.Elevation != 45 {
		t.Errorf("Elevation = %v, flag should win", *opts.Elevation)
	}
}
