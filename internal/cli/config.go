package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vestools/pkg/errors"
	"github.com/matzehuels/vestools/pkg/pipeline"
)

// configFile is looked up in the working directory before the user config
// directory.
const configFile = appName + ".toml"

// Config is the optional TOML configuration file:
//
//	[render]
//	view = "3d"
//	formats = ["svg", "png"]
//	width = 1024
//	height = 768
//	font = "helvetica"
//	labels = false
//	scale = 3
//	azimuth = -45
//	elevation = 20
//
//	[cache]
//	url = "redis://localhost:6379/0"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig holds render defaults. Zero values leave the built-in
// defaults in place.
type RenderConfig struct {
	View      string   `toml:"view"`
	Formats   []string `toml:"formats"`
	Width     float64  `toml:"width"`
	Height    float64  `toml:"height"`
	Font      string   `toml:"font"`
	Labels    *bool    `toml:"labels"`
	Scale     float64  `toml:"scale"`
	Azimuth   *float64 `toml:"azimuth"`
	Elevation *float64 `toml:"elevation"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	URL      string `toml:"url"`
}

// loadConfig reads the config file at path. An empty path searches
// ./vestools.toml then <config dir>/config.toml; a missing file is not an
// error unless it was named explicitly.
func loadConfig(path string) (Config, string, error) {
	var cfg Config
	if path == "" {
		path = findConfig()
		if path == "" {
			return cfg, "", nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, path, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, path, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Render.View != "" {
		if err := pipeline.ValidateView(cfg.Render.View); err != nil {
			return cfg, path, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := pipeline.ValidateFormats(cfg.Render.Formats); err != nil {
		return cfg, path, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, path, nil
}

func findConfig() string {
	candidates := []string{configFile}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// applyRenderConfig copies config values into opts for every flag the user
// did not set.
func applyRenderConfig(cmd *cobra.Command, rc RenderConfig, opts *pipeline.Options) {
	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && !f.Changed
	}
	if rc.View != "" && unset("type") {
		opts.View = rc.View
	}
	if len(rc.Formats) > 0 && unset("format") {
		opts.Formats = rc.Formats
	}
	if rc.Width > 0 && unset("width") {
		opts.Width = rc.Width
	}
	if rc.Height > 0 && unset("height") {
		opts.Height = rc.Height
	}
	if rc.Font != "" && unset("font") {
		opts.Font = rc.Font
	}
	if rc.Labels != nil && unset("no-labels") {
		opts.NoLabels = !*rc.Labels
	}
	if rc.Scale > 0 && unset("scale") {
		opts.Scale = rc.Scale
	}
	if rc.Azimuth != nil && unset("azimuth") {
		opts.Azimuth = rc.Azimuth
	}
	if rc.Elevation != nil && unset("elevation") {
		opts.Elevation = rc.Elevation
	}
}
