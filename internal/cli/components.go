package cli

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	vesio "github.com/matzehuels/vestools/pkg/io"
)

// componentsCommand lists the filaments of a morphology file.
func (c *CLI) componentsCommand() *cobra.Command {
	var (
		asJSON  bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "components <file>",
		Short: "List the filament components of a morphology file",
		Long: `List every filament component of a .hoc/.ves morphology file with its
node, polyline and length statistics.

With --json the parsed components are written as JSON instead. That output
can be passed back to any command in place of the morphology file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runComponents(cmd.Context(), cmd.OutOrStdout(), args[0], asJSON, refresh)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write parsed components as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached parse results")

	return cmd
}

func (c *CLI) runComponents(ctx context.Context, w io.Writer, input string, asJSON, refresh bool) error {
	s, err := c.open(ctx, input, refresh)
	if err != nil {
		return err
	}
	defer s.Close()

	comps := s.components()
	if asJSON {
		return vesio.WriteComponents(comps, w)
	}

	rows := make([][]string, 0, len(comps))
	for _, id := range comps.IDs() {
		_, f, err := s.build(id)
		if err != nil {
			return err
		}
		st := f.Stats()
		samples := 0
		for _, p := range f.Polylines() {
			samples += len(p)
		}
		rows = append(rows, []string{
			id,
			strconv.Itoa(st.Edges),
			strconv.Itoa(samples),
			strconv.Itoa(st.Nodes),
			strconv.Itoa(st.Bifurcations),
			strconv.Itoa(st.Terminals),
			formatFloat(st.TotalLength),
			formatFloat(st.MeanWidth),
		})
	}

	printTable(w, []string{"ID", "Polylines", "Samples", "Nodes", "Branch", "Tips", "Length", "Width"}, rows)
	printDetail(w, "%d components, %d samples", len(comps), comps.SampleCount())
	return nil
}
