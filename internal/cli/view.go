package cli

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	qio "github.com/matzehuels/qualmap/pkg/io"
	"github.com/matzehuels/qualmap/pkg/pipeline"
	"github.com/matzehuels/qualmap/pkg/render/canvas"
	"github.com/matzehuels/qualmap/pkg/render/export"
	"github.com/matzehuels/qualmap/pkg/render/geom"
)

// Viewer key steps.
const (
	panStep       = 40.0
	zoomStep      = 1.25
	frameInterval = 16 * time.Millisecond
	mapCols       = 64
	mapRows       = 20
)

var (
	viewFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	viewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewAxisStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewDotStyle   = lipgloss.NewStyle().Foreground(colorCyan)
)

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var flags sceneFlags
	var output string

	cmd := &cobra.Command{
		Use:   "view [workbook]",
		Short: "Pan and zoom a map in the terminal and export snapshots",
		Long: `Open a workbook in an interactive terminal viewer.

Keys:
  arrows / hjkl  pan
  + / -          zoom around the center
  0 / r          animated reset to the initial view
  a              toggle axes
  e              export a static SVG snapshot
  q              quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions(args[0])
			applyFlags(cmd, &opts, flags)
			if output == "" {
				output = filepath.Join(filepath.Dir(args[0]), export.DefaultFilename)
			}
			return c.runView(cmd.Context(), opts, flags.noCache, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "export path (default "+export.DefaultFilename+" next to the workbook)")

	return cmd
}

func (c *CLI) runView(ctx context.Context, opts pipeline.Options, noCache bool, output string) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	sc, err := runner.BuildScene(ctx, ds, opts)
	if err != nil {
		return err
	}
	cv := canvas.New(sc)
	cv.Viewport().SetAxesVisible(!opts.HideAxes)

	m := newViewModel(cv, opts.Exporter(), opts.Input, output)
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// viewModel - terminal viewport driver
// =============================================================================

type tickMsg time.Time

// viewModel drives one canvas from the keyboard. The bubbletea update loop
// is the only goroutine touching the canvas.
type viewModel struct {
	canvas   *canvas.Canvas
	exporter *export.Exporter
	input    string
	output   string
	status   string
	now      func() time.Time
}

func newViewModel(cv *canvas.Canvas, exp *export.Exporter, input, output string) viewModel {
	return viewModel{canvas: cv, exporter: exp, input: input, output: output, now: time.Now}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	vp := m.canvas.Viewport()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		w, h := m.canvas.PixelSize()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			vp.Drag(panStep, 0)
		case "right", "l":
			vp.Drag(-panStep, 0)
		case "up", "k":
			vp.Drag(0, panStep)
		case "down", "j":
			vp.Drag(0, -panStep)
		case "+", "=":
			vp.ZoomBy(zoomStep, w/2, h/2)
		case "-", "_":
			vp.ZoomBy(1/zoomStep, w/2, h/2)
		case "0", "r":
			vp.Reset(m.now())
			if vp.Animating() {
				return m, tick()
			}
		case "a":
			if vp.ToggleAxes() {
				m.status = "axes shown"
			} else {
				m.status = "axes hidden"
			}
		case "e":
			m.status = m.export()
		}
	case tickMsg:
		if vp.Advance(time.Time(msg)) {
			return m, tick()
		}
	}
	return m, nil
}

// export writes a static snapshot. The canvas is left as it was.
func (m viewModel) export() string {
	res, err := m.exporter.Export(m.canvas)
	if err != nil {
		return styleIconError.Render(iconError) + " " + err.Error()
	}
	if err := qio.ExportFile(m.output, res.Data); err != nil {
		return styleIconError.Render(iconError) + " " + err.Error()
	}
	return styleIconSuccess.Render(iconSuccess) + " exported " + m.output
}

func (m viewModel) View() string {
	var b strings.Builder
	sc := m.canvas.Scene()
	t := m.canvas.Transform()

	b.WriteString(StyleTitle.Render(filepath.Base(m.input)))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d entities · %d links · %d groups",
		sc.Stats.Entities, sc.Stats.Links, sc.Stats.Groups)))
	b.WriteString("\n")
	b.WriteString(viewFrameStyle.Render(m.minimap()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("x %.0f  y %.0f  zoom %.2f×", t.X, t.Y, t.K)))
	if !m.canvas.AxesVisible() {
		b.WriteString(StyleDim.Render("  axes off"))
	}
	if m.status != "" {
		b.WriteString("  " + m.status)
	}
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("←↑↓→ pan  +/- zoom  0 reset  a axes  e export  q quit"))
	return b.String()
}

// minimap rasterizes marker centers and the axes, under the current
// transform, onto a character grid covering the frame.
func (m viewModel) minimap() string {
	grid := make([][]string, mapRows)
	for i := range grid {
		grid[i] = make([]string, mapCols)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	w, h := m.canvas.PixelSize()
	t := m.canvas.Transform()
	cell := func(p geom.Point) (row, col int) {
		q := t.Apply(p)
		return int(math.Floor(q.Y / h * mapRows)), int(math.Floor(q.X / w * mapCols))
	}
	rowOK := func(row int) bool { return row >= 0 && row < mapRows }
	colOK := func(col int) bool { return col >= 0 && col < mapCols }

	sc := m.canvas.Scene()
	if m.canvas.AxesVisible() {
		row, col := cell(sc.Axes.Center)
		if rowOK(row) {
			for j := range grid[row] {
				grid[row][j] = viewAxisStyle.Render("─")
			}
		}
		if colOK(col) {
			for i := range grid {
				grid[i][col] = viewAxisStyle.Render("│")
			}
		}
	}
	for _, mk := range sc.Markers {
		if row, col := cell(mk.Center); rowOK(row) && colOK(col) {
			grid[row][col] = viewDotStyle.Render("●")
		}
	}

	lines := make([]string, mapRows)
	for i, row := range grid {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
