package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/strut/pkg/geom"
	"github.com/matzehuels/strut/pkg/scene"
)

// previewCommand creates the preview command for interactive layout preview.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <scene.toml|scene.json>",
		Short: "Preview a scene in the terminal, re-solving on resize",
		Long: `Preview a scene in the terminal.

The terminal window acts as the container: every resize runs another layout
pass against the new bounds, so constraint behavior under rotation and
resizing can be checked interactively. The status line shows the current
bounds and the rebuild counter, which stays flat while only the bounds
change.

Keys: r reloads the scene file, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newPreviewModel(args[0])
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// previewModel is the bubbletea model for the interactive preview.
type previewModel struct {
	path     string
	assembly *scene.Assembly
	width    int
	height   int
	err      error
}

func newPreviewModel(path string) (previewModel, error) {
	m := previewModel{path: path}
	if err := m.load(); err != nil {
		return m, err
	}
	return m, nil
}

// load reads the scene file and assembles a fresh container.
func (m *previewModel) load() error {
	doc, err := scene.Load(m.path)
	if err != nil {
		return err
	}
	a, err := doc.Assemble()
	if err != nil {
		return err
	}
	m.assembly = a
	return nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if err := m.load(); err != nil {
				m.err = err
				return m, nil
			}
			m.err = m.solve()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.err = m.solve()
	}
	return m, nil
}

// solve runs a layout pass with the terminal as the container. The bottom
// rows are reserved for the status line.
func (m *previewModel) solve() error {
	if m.width == 0 || m.height < 3 {
		return nil
	}
	bounds := geom.Rect{W: float64(m.width), H: float64(m.height - 2)}
	return m.assembly.Container.Layout(bounds)
}

func (m previewModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	canvasH := m.height - 2
	canvas := newCanvas(m.width, canvasH)
	for _, b := range m.assembly.Boxes() {
		canvas.drawBox(b.ID, b.Frame())
	}

	var sb strings.Builder
	sb.WriteString(canvas.String())
	sb.WriteString("\n")
	sb.WriteString(m.statusLine())
	return sb.String()
}

func (m previewModel) statusLine() string {
	if m.err != nil {
		return styleIconError.Render(iconError) + " " + m.err.Error()
	}
	status := fmt.Sprintf("%s · %dx%d · %d items · rebuilds: %d · r reload · q quit",
		m.path, m.width, m.height-2, len(m.assembly.Boxes()), m.assembly.Container.Rebuilds())
	return StyleDim.Render(status)
}

// canvas is a rune grid the boxes are drawn onto.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for y := range cells {
		cells[y] = make([]rune, w)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

// drawBox draws a frame as a bordered rectangle with the item id in the
// top border. Frames smaller than one cell degrade to a single marker.
func (c *canvas) drawBox(id string, fr geom.Rect) {
	x0, y0 := int(fr.X), int(fr.Y)
	x1, y1 := int(fr.MaxX())-1, int(fr.MaxY())-1

	if x1 <= x0 || y1 <= y0 {
		c.set(x0, y0, '▪')
		return
	}

	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, '─')
		c.set(x, y1, '─')
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, '│')
		c.set(x1, y, '│')
	}
	c.set(x0, y0, '┌')
	c.set(x1, y0, '┐')
	c.set(x0, y1, '└')
	c.set(x1, y1, '┘')

	// Item id in the top border, truncated to fit.
	label := id
	if limit := x1 - x0 - 1; len(label) > limit {
		if limit <= 0 {
			label = ""
		} else {
			label = label[:limit]
		}
	}
	for i, r := range label {
		c.set(x0+1+i, y0, r)
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}
