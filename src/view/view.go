// Package view provides an interactive terminal viewer of a renamed ILOC block and its liveness.
package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ilocfe/src/ir/iloc"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	matchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// chrome is the number of screen lines not used by the instruction list.
const chrome = 6

// Model is the bubbletea model of the viewer.
type Model struct {
	filename  string
	nodes     []*iloc.Node
	live      []int
	maxLive   int
	cursor    int
	offset    int
	height    int
	filter    textinput.Model
	filtering bool
	match     int
}

// New returns a viewer of the renamed block b. r is the Renamer that renamed b.
func New(filename string, b *iloc.Block, r *iloc.Renamer) *Model {
	nodes := make([]*iloc.Node, 0, b.Len())
	for _, e1 := range b.Sequence().All() {
		nodes = append(nodes, b.Node(e1))
	}
	ti := textinput.New()
	ti.Prompt = "register: "
	ti.Placeholder = "r3"
	ti.CharLimit = 12
	ti.Width = 20
	return &Model{
		filename: filename,
		nodes:    nodes,
		live:     r.Live,
		maxLive:  r.MaxLive,
		height:   20,
		filter:   ti,
		match:    -1,
	}
}

// Run shows the viewer on out, reading keys from in, until the user quits.
func Run(filename string, b *iloc.Block, r *iloc.Renamer, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(filename, b, r), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-chrome, 1)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.nodes)-1, 0)
		case "/":
			m.filtering = true
			return m, m.filter.Focus()
		}
		m.scroll()
	}
	return m, nil
}

// updateFilter passes keys to the register filter until enter or esc leaves it.
func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.match = parseRegister(m.filter.Value())
	return m, cmd
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// Cursor returns the position of the selected operation.
func (m *Model) Cursor() int {
	return m.cursor
}

// Match returns the source register highlighted by the filter, or -1.
func (m *Model) Match() int {
	return m.match
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("MAXLIVE %d", m.maxLive)))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if len(m.nodes) == 0 {
		b.WriteString("The block is empty.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	end := min(m.offset+m.height, len(m.nodes))
	for i1 := m.offset; i1 < end; i1++ {
		if i1 == m.cursor {
			b.WriteString(selectedStyle.Render(fmt.Sprintf("> %4d  %s", i1, m.nodes[i1])))
		} else {
			b.WriteString(fmt.Sprintf("  %4d  %s", i1, m.render(m.nodes[i1])))
		}
		b.WriteString("\n")
	}

	n := m.nodes[m.cursor]
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("line %d  position %d  live %d", n.Line, m.cursor, m.live[m.cursor])))
	b.WriteString("\n")
	if m.filtering {
		b.WriteString(m.filter.View())
	} else {
		b.WriteString(helpStyle.Render("↑/k ↓/j move • / filter register • q quit"))
	}
	return b.String()
}

// render returns the textual representation of n with operands of the filtered register highlighted.
func (m *Model) render(n *iloc.Node) string {
	ops := make([]string, len(n.Ops))
	for i1, e1 := range n.Ops {
		ops[i1] = e1.String()
		if m.match >= 0 && e1.IsRegister() && e1.SR == m.match {
			ops[i1] = matchStyle.Render(ops[i1])
		}
	}
	return n.Op.String() + "\t" + strings.Join(ops, ", ")
}

// parseRegister reads a source register number written as r3, sr3 or 3. It returns -1 for anything else.
func parseRegister(s string) int {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "s"), "r")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
