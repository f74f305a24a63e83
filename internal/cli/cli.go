// Package cli implements the vestools command-line interface.
//
// # Commands
//
//   - components: list the filament components of a morphology file
//   - nodes: print the distinct-coordinate index of one component
//   - layers: compute breadth-first layers from a root
//   - render: draw 2d, 3d or node-link views as SVG, PNG, PDF or JSON
//   - explore: browse components and their layers interactively
//   - cache: manage the local cache
//
// # Configuration
//
// Render defaults and the cache backend can be set in a TOML file (see
// [Config]). Flags always override file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vestools/pkg/cache"
	"github.com/matzehuels/vestools/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "vestools"

	// cachePrefix namespaces keys in shared (redis) caches.
	cachePrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Set by persistent flags.
	configPath string
	noCache    bool
	cacheURL   string

	config Config
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	registerHooks(c.Logger)
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, keyer, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache picks the cache backend: none when disabled, redis for a
// redis:// URL, the XDG file cache otherwise.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	if c.noCache || c.config.Cache.Disabled {
		return cache.NewNullCache(), nil, nil
	}

	url := c.cacheURL
	if url == "" {
		url = c.config.Cache.URL
	}
	if url != "" {
		if !isRedisURL(url) {
			return nil, nil, fmt.Errorf("unsupported cache url %q (want redis:// or rediss://)", url)
		}
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache")
		return rc, cache.NewScopedKeyer(nil, cachePrefix), nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

func isRedisURL(url string) bool {
	return strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://")
}

// cacheDir returns the configured cache directory, falling back to the XDG
// standard (~/.cache/vestools/).
func (c *CLI) cacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/vestools/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns ~/.config/vestools/ or its XDG_CONFIG_HOME equivalent.
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// parseList splits a comma-separated flag value, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
