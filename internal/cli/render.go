package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vestools/pkg/pipeline"
	"github.com/matzehuels/vestools/pkg/render/plot"
)

// renderFlags holds the render flags that do not map 1:1 to pipeline options.
type renderFlags struct {
	views     string
	formats   string
	output    string
	azimuth   float64
	elevation float64
}

// renderCommand renders one component to files.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a component in 2D, 3D or as a node-link diagram",
		Long: `Render one filament component to SVG, PNG, PDF or JSON.

Views:
  2d        polylines on the x/y plane with node markers
  3d        polylines projected from the --azimuth/--elevation camera
  nodelink  graphviz neato layout of the node graph

Without --root, markers are labeled with node indices. With --root the
component is layered first and markers are labeled with their depth.

PNG and PDF output require rsvg-convert (librsvg).

Examples:
  vestools render cell.hoc -c 0
  vestools render cell.hoc -c 0 -r 0 -t 2d,3d -f svg,png
  vestools render cell.hoc -c 3 -r 0 -t nodelink --detailed -o branch.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseList(flags.formats)
			opts.Azimuth, opts.Elevation = &flags.azimuth, &flags.elevation
			applyRenderConfig(cmd, c.config.Render, &opts)

			views := parseList(flags.views)
			if !cmd.Flags().Changed("type") && opts.View != "" {
				views = []string{opts.View}
			}
			for _, v := range views {
				if err := pipeline.ValidateView(v); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), views, opts, flags.output)
		},
	}

	cmd.Flags().StringVarP(&opts.Component, "component", "c", "", "component id (default: first)")
	cmd.Flags().StringVarP(&opts.Root, "root", "r", "", "layer from this root: index or x,y,z coordinate")
	cmd.Flags().StringVarP(&flags.views, "type", "t", pipeline.DefaultView, "view(s): 2d, 3d, nodelink (comma-separated)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single view/format) or base path (multiple)")
	cmd.Flags().Float64Var(&opts.Width, "width", plot.DefaultWidth, "frame width (2d, 3d)")
	cmd.Flags().Float64Var(&opts.Height, "height", plot.DefaultHeight, "frame height (2d, 3d)")
	cmd.Flags().StringVar(&opts.Font, "font", plot.DefaultFont, "label font family (2d, 3d)")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "omit node labels (2d, 3d)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show coordinates and degree (nodelink)")
	cmd.Flags().Float64Var(&flags.azimuth, "azimuth", plot.DefaultAzimuth, "camera azimuth in degrees (3d)")
	cmd.Flags().Float64Var(&flags.elevation, "elevation", plot.DefaultElevation, "camera elevation in degrees (3d)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultPNGScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cached results")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, views []string, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	multi := len(views) > 1
	for _, view := range views {
		opts.View = view

		spinner := newSpinnerWithContext(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", view))
		spinner.Start()
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Rendering %s failed", view))
			return err
		}
		spinner.Stop()

		printSuccess(w, "Rendered component %s (%s)", result.Component, view)
		printStats(w, result.Stats.Nodes, result.Stats.Edges, result.Stats.MaxDepth, result.CacheInfo.RenderHit)

		paths, err := writeArtifacts(artifactWriteParams{
			artifacts: result.Artifacts,
			formats:   opts.Formats,
			input:     opts.Input,
			output:    output,
			suffix:    viewSuffix(view, multi),
		})
		if err != nil {
			return err
		}
		for _, p := range paths {
			printFile(w, p)
		}
	}
	return nil
}

func viewSuffix(view string, multi bool) string {
	if !multi {
		return ""
	}
	return "_" + view
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	suffix    string
}

// writeArtifacts writes each format to disk and returns the paths in format
// order. A single format with an explicit output is written to output as is;
// otherwise files are named <base><suffix>.<format>.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := p.output
		if path == "" || len(p.formats) > 1 || p.suffix != "" {
			path = basePath(p.output, p.input) + p.suffix + "." + format
		}
		if filepath.Clean(path) == filepath.Clean(p.input) {
			return paths, fmt.Errorf("refusing to overwrite input %s (use --output)", p.input)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
