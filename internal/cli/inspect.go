package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/layout"
	"github.com/matzehuels/dagdraw/pkg/pipeline"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

// inspectCommand creates the inspect command, an interactive browser of a
// laid-out graph.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags renderFlags
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse node boxes and edge routes of a laid-out graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg.Render)
			opts.Input = args[0]
			opts.SetDefaults()
			if err := opts.Validate(); err != nil {
				return err
			}

			runner, err := c.newRunner(opts.NoCache, cfg.CacheDir)
			if err != nil {
				return err
			}
			defer runner.Close()

			g, err := runner.Import(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if opts.RankDir != "" {
				g.Attrs()[graph.AttrRankDir] = opts.RankDir
			}
			d, err := runner.Render(cmd.Context(), g, opts)
			if err != nil {
				return err
			}

			m := newInspectModel(d)
			if plain {
				fmt.Println(m.table(tabNodes, 0, len(m.nodes)))
				fmt.Println(m.table(tabEdges, 0, len(m.edges)))
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	flags.register(cmd, false)
	cmd.Flags().BoolVar(&plain, "plain", false, "print the tables instead of starting the browser")
	return cmd
}

// =============================================================================
// inspectModel - Interactive layout browser
// =============================================================================

type inspectTab int

const (
	tabNodes inspectTab = iota
	tabEdges
)

// inspectModel is the bubbletea model for browsing a laid-out graph.
type inspectModel struct {
	title  string
	nodes  [][]string
	edges  [][]string
	tab    inspectTab
	cursor int
	offset int
	height int
}

// newInspectModel tabulates the nodes and edges of a drawing.
func newInspectModel(d *pipeline.Drawing) inspectModel {
	g, res := d.Graph, d.Output.Layout
	m := inspectModel{
		title:  fmt.Sprintf("%d nodes, %d edges, %s", g.NodeCount(), g.EdgeCount(), d.Output.BBox),
		height: 15,
	}

	for _, id := range g.Nodes() {
		n, _ := g.Node(id)
		kind := n.StringOr(graph.AttrShape, "")
		if g.IsCluster(id) {
			kind = "cluster"
		}
		b := res.Nodes[id]
		m.nodes = append(m.nodes, []string{
			id, n.StringOr(graph.AttrLabel, ""), kind, g.Parent(id),
			scene.Num(b.X), scene.Num(b.Y), scene.Num(b.Width), scene.Num(b.Height),
		})
	}

	for _, k := range g.Edges() {
		e, _ := g.Edge(k)
		route, _ := res.Edge(k)
		m.edges = append(m.edges, []string{
			k.V + " → " + k.W, k.Name, e.StringOr(graph.AttrLabel, ""),
			fmt.Sprint(len(route.Points)), scene.Num(routeLength(route)),
		})
	}
	return m
}

// routeLength is the length of an edge's polyline.
func routeLength(r layout.EdgeRoute) float64 {
	total := 0.0
	for i := 1; i < len(r.Points); i++ {
		total += r.Points[i-1].Dist(r.Points[i])
	}
	return total
}

func (m inspectModel) rows() [][]string {
	if m.tab == tabEdges {
		return m.edges
	}
	return m.nodes
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.tab = (m.tab + 1) % 2
			m.cursor, m.offset = 0, 0
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows())-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout"))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⇥ nodes/edges  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows()))
	b.WriteString(m.table(m.tab, m.offset, end))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows()))))
	return b.String()
}

// table renders rows [start, end) of a tab.
func (m inspectModel) table(tab inspectTab, start, end int) string {
	headers := []string{"Node", "Label", "Shape", "Parent", "X", "Y", "Width", "Height"}
	rows := m.nodes
	if tab == tabEdges {
		headers = []string{"Edge", "Name", "Label", "Points", "Length"}
		rows = m.edges
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows[start:end]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if tab == m.tab && start+row == m.cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}
