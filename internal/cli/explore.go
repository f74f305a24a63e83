package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vestools/pkg/filament"
	"github.com/matzehuels/vestools/pkg/hoc"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxNodesShown caps the node list printed per depth row.
const maxNodesShown = 12

// exploreCommand opens the interactive component browser.
func (c *CLI) exploreCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "explore <file>",
		Short: "Browse components and their layers interactively",
		Long: `Browse the components of a morphology file in the terminal.

Select a component with enter to see its breadth-first layers. Use ←/→ (or
[ and ]) to move the root through the node index and esc to go back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached parse results")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input string, refresh bool) error {
	s, err := c.open(ctx, input, refresh)
	if err != nil {
		return err
	}
	defer s.Close()

	p := tea.NewProgram(newExploreModel(input, s.components()), tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// =============================================================================
// exploreModel - component list and layer detail
// =============================================================================

// exploreModel is the bubbletea model of the explore command.
type exploreModel struct {
	title string
	comps hoc.Components
	ids   []string
	built map[string]*filament.Filament

	cursor int
	offset int
	height int

	// detail is set while a component is open.
	detail *layerView
}

// layerView is one component layered from the node at root.
type layerView struct {
	id   string
	f    *filament.Filament
	root int
}

func newExploreModel(title string, comps hoc.Components) exploreModel {
	return exploreModel{
		title:  title,
		comps:  comps,
		ids:    comps.IDs(),
		built:  make(map[string]*filament.Filament),
		height: 15,
	}
}

func (m exploreModel) filament(id string) *filament.Filament {
	if f, ok := m.built[id]; ok {
		return f
	}
	f := filament.New(m.comps[id])
	m.built[id] = f
	return f
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.detail != nil {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m exploreModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < len(m.ids)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "enter":
		if len(m.ids) == 0 {
			return m, nil
		}
		id := m.ids[m.cursor]
		m.detail = &layerView{id: id, f: m.filament(id)}
		m.detail.relayer()
	}
	return m, nil
}

func (m exploreModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := *m.detail
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.detail = nil
		return m, nil
	case "left", "h", "[":
		if d.root > 0 {
			d.root--
		}
	case "right", "l", "]":
		if d.root < d.f.NodeCount()-1 {
			d.root++
		}
	case "home", "g":
		d.root = 0
	}
	d.relayer()
	m.detail = &d
	return m, nil
}

// relayer layers the filament from the current root.
func (v *layerView) relayer() {
	if v.f.NodeCount() == 0 {
		return
	}
	if _, err := v.f.LayerFromIndex(v.root); err != nil {
		v.root = 0
		v.f.LayerFromIndex(0)
	}
}

func (m exploreModel) View() string {
	if m.detail != nil {
		return m.detail.view()
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Components of " + m.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ layers  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.ids))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		id := m.ids[i]
		st := m.filament(id).Stats()
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor, id,
			strconv.Itoa(st.Edges),
			strconv.Itoa(st.Nodes),
			strconv.Itoa(st.Bifurcations),
			formatFloat(st.TotalLength),
		})
	}

	for i, line := range strings.Split(renderTable([]string{"", "ID", "Polylines", "Nodes", "Branch", "Length"}, rows), "\n") {
		// Header and top border take the first three lines.
		if i-3 == m.cursor-m.offset {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.ids))))

	return b.String()
}

func (v *layerView) view() string {
	var b strings.Builder

	root, _ := v.f.Root()
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Component %s", v.id)))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  root %d %s", v.root, root)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ move root  g first root  esc back  q quit"))
	b.WriteString("\n\n")

	layerMap, err := v.f.LayerMap()
	if err != nil {
		b.WriteString(StyleWarning.Render("no layers: " + err.Error()))
		return b.String()
	}
	depths, _ := v.f.Depths()

	rows := make([][]string, len(depths))
	reached := 0
	for i, d := range depths {
		nodes := layerMap[d]
		reached += len(nodes)
		rows[i] = []string{StyleDepth.Render(strconv.Itoa(d)), strconv.Itoa(len(nodes)), nodeList(v.f, nodes)}
	}
	b.WriteString(renderTable([]string{"Depth", "Count", "Nodes"}, rows))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d nodes reached", reached, v.f.NodeCount())))

	return b.String()
}

// nodeList prints node indices, eliding past maxNodesShown.
func nodeList(f *filament.Filament, nodes []*filament.Node) string {
	n := min(len(nodes), maxNodesShown)
	parts := make([]string, n)
	for i := range n {
		parts[i] = indexLabel(f, nodes[i])
	}
	s := strings.Join(parts, " ")
	if len(nodes) > n {
		s += fmt.Sprintf(" … +%d", len(nodes)-n)
	}
	return s
}
