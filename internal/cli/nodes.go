package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vestools/pkg/errors"
	"github.com/matzehuels/vestools/pkg/filament"
)

// Node filters for the nodes command.
const (
	kindAll          = "all"
	kindBifurcations = "bifurcations"
	kindTerminals    = "terminals"
)

// nodesCommand prints the distinct-coordinate index of one component.
func (c *CLI) nodesCommand() *cobra.Command {
	var (
		opts loadOpts
		kind string
	)

	cmd := &cobra.Command{
		Use:   "nodes <file>",
		Short: "Print the node index of a component",
		Long: `Print the distinct polyline endpoints of one component in first-seen order.

The index column is what --root accepts in the layers and render commands.
Use --kind to show only branch points (three or more polylines) or tips.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateOneOf(errors.ErrCodeInvalidInput, "kind", kind,
				[]string{kindAll, kindBifurcations, kindTerminals}); err != nil {
				return err
			}
			return c.runNodes(cmd.Context(), cmd.OutOrStdout(), args[0], opts, kind)
		},
	}

	cmd.Flags().StringVarP(&opts.component, "component", "c", "", "component id (default: first)")
	cmd.Flags().StringVar(&kind, "kind", kindAll, "node filter: all, bifurcations, terminals")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached parse results")

	return cmd
}

func (c *CLI) runNodes(ctx context.Context, w io.Writer, input string, opts loadOpts, kind string) error {
	s, err := c.open(ctx, input, opts.refresh)
	if err != nil {
		return err
	}
	defer s.Close()

	id, f, err := s.build(opts.component)
	if err != nil {
		return err
	}

	var nodes []*filament.Node
	switch kind {
	case kindBifurcations:
		nodes = f.Bifurcations()
	case kindTerminals:
		nodes = f.Terminals()
	default:
		nodes = f.Nodes()
	}

	rows := make([][]string, len(nodes))
	for i, n := range nodes {
		idx, _ := f.IndexOf(n.Coordinate)
		rows[i] = []string{
			strconv.Itoa(idx),
			formatFloat(n.Coordinate.X()),
			formatFloat(n.Coordinate.Y()),
			formatFloat(n.Coordinate.Z()),
			strconv.Itoa(n.Degree()),
			formatFloats(n.Widths),
			formatFloats(n.Lengths),
		}
	}

	fmt.Fprintln(w, StyleTitle.Render("Component "+id))
	printTable(w, []string{"Index", "X", "Y", "Z", "Degree", "Widths", "Lengths"}, rows)
	printDetail(w, "%d of %d nodes", len(nodes), f.NodeCount())
	return nil
}
