package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vestools/pkg/errors"
	"github.com/matzehuels/vestools/pkg/filament"
	vesio "github.com/matzehuels/vestools/pkg/io"
)

// layersCommand computes breadth-first layers of one component.
func (c *CLI) layersCommand() *cobra.Command {
	var (
		opts   loadOpts
		depth  int
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "layers <file>",
		Short: "Compute breadth-first layers from a root node",
		Long: `Compute breadth-first layers of one component starting at a root node.

The root is either a node index as printed by 'nodes' (--root 3) or an exact
endpoint coordinate (--root 1.5,2,0). Nodes not connected to the root are
not part of any layer.

Examples:
  vestools layers cell.hoc -c 0 -r 0
  vestools layers cell.hoc -c 0 -r 0 --depth 2
  vestools layers cell.hoc -c 0 -r 12.5,3,0 --json -o layers.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("depth") {
				depth = -1
			} else if depth < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--depth must be >= 0")
			}
			return c.runLayers(cmd.Context(), cmd.OutOrStdout(), args[0], opts, depth, asJSON, output)
		},
	}

	cmd.Flags().StringVarP(&opts.component, "component", "c", "", "component id (default: first)")
	cmd.Flags().StringVarP(&opts.root, "root", "r", "0", "root node: index or x,y,z coordinate")
	cmd.Flags().IntVar(&depth, "depth", 0, "only print the nodes at this depth")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the layered graph as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "JSON output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached parse results")

	return cmd
}

func (c *CLI) runLayers(ctx context.Context, w io.Writer, input string, opts loadOpts, depth int, asJSON bool, output string) error {
	s, err := c.open(ctx, input, opts.refresh)
	if err != nil {
		return err
	}
	defer s.Close()

	prog := newProgress(c.Logger)
	id, f, err := s.buildLayered(opts.component, opts.root)
	if err != nil {
		return err
	}
	maxDepth, _ := f.MaxDepth()
	prog.done("Layered component %s to depth %d", id, maxDepth)

	if asJSON {
		if output != "" {
			if err := vesio.ExportJSON(f, output); err != nil {
				return err
			}
			printFile(w, output)
			return nil
		}
		return vesio.WriteJSON(f, w)
	}

	if depth >= 0 {
		nodes, err := f.NodesAtDepth(depth)
		if err != nil {
			return errors.Wrap(errors.ErrCodeDepthNotFound, err, "component %s has depths 0..%d", id, maxDepth)
		}
		rows := make([][]string, len(nodes))
		for i, n := range nodes {
			rows[i] = nodeRow(f, n)
		}
		fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Component %s · depth %d", id, depth)))
		printTable(w, []string{"Index", "Coordinate", "Degree"}, rows)
		return nil
	}

	layerMap, err := f.LayerMap()
	if err != nil {
		return err
	}
	depths, err := f.Depths()
	if err != nil {
		return err
	}
	rows := make([][]string, len(depths))
	for i, d := range depths {
		nodes := layerMap[d]
		idx := make([]string, len(nodes))
		for j, n := range nodes {
			idx[j] = indexLabel(f, n)
		}
		rows[i] = []string{StyleDepth.Render(strconv.Itoa(d)), strconv.Itoa(len(nodes)), strings.Join(idx, " ")}
	}

	root, _ := f.Root()
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Component %s · root %s", id, root)))
	printTable(w, []string{"Depth", "Count", "Nodes"}, rows)
	layers, _ := f.Layers()
	printDetail(w, "%d of %d nodes reached", len(layers), f.NodeCount())
	return nil
}

func nodeRow(f *filament.Filament, n *filament.Node) []string {
	return []string{indexLabel(f, n), n.Coordinate.String(), strconv.Itoa(n.Degree())}
}

// indexLabel is the node index, or the coordinate for a probed root outside
// the index.
func indexLabel(f *filament.Filament, n *filament.Node) string {
	if i, ok := f.IndexOf(n.Coordinate); ok {
		return strconv.Itoa(i)
	}
	return n.Coordinate.String()
}
