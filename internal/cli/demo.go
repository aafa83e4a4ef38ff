package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skyhookui/skyhook/pkg/geom"
	"github.com/skyhookui/skyhook/pkg/overlay"
	"github.com/spf13/cobra"
)

// demoCommand creates the demo command: an interactive playground where the
// terminal is the viewport and the placement engine repositions a panel live
// as the anchor moves.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Interactive positioning playground",
		Long: `Demo turns the terminal into a viewport: move the anchor with the arrow
keys and watch the engine pick a placement, falling back and pushing as the
anchor approaches the edges.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newDemoModel(), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

// =============================================================================
// Model
// =============================================================================

// demoPanel is a panel whose size the demo mutates in place.
type demoPanel struct {
	size geom.Size
}

func (p *demoPanel) Size() geom.Size { return p.size }
func (p *demoPanel) Config() overlay.PanelConfig {
	return overlay.PanelConfig{MinWidth: "6px", MinHeight: "3px"}
}

// demoModel is the bubbletea model for the positioning playground.
type demoModel struct {
	strategy *overlay.Strategy
	ruler    *overlay.StaticRuler
	recorder *overlay.Recorder
	panel    *demoPanel

	origin geom.Rect

	flexible bool
	push     bool
	locked   bool
	rtl      bool

	width  int // canvas width in cells
	height int // canvas height in cells
}

// demoPositions is the preference list used by the playground: below, above,
// then to either side.
var demoPositions = []overlay.Position{
	{OriginX: overlay.HStart, OriginY: overlay.VBottom, OverlayX: overlay.HStart, OverlayY: overlay.VTop},
	{OriginX: overlay.HStart, OriginY: overlay.VTop, OverlayX: overlay.HStart, OverlayY: overlay.VBottom},
	{OriginX: overlay.HEnd, OriginY: overlay.VCenter, OverlayX: overlay.HStart, OverlayY: overlay.VCenter},
	{OriginX: overlay.HStart, OriginY: overlay.VCenter, OverlayX: overlay.HEnd, OverlayY: overlay.VCenter},
}

func newDemoModel() demoModel {
	m := demoModel{
		ruler:    overlay.NewStaticRuler(geom.Size{Width: 80, Height: 24}),
		recorder: overlay.NewRecorder(),
		panel:    &demoPanel{size: geom.Size{Width: 20, Height: 6}},
		origin:   geom.NewRect(10, 10, 8, 3),
		flexible: true,
		push:     true,
	}
	m.strategy = overlay.New(overlay.RectOrigin(m.origin), m.ruler).
		WithPositions(demoPositions)
	return m
}

func (m demoModel) Init() tea.Cmd {
	return nil
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.strategy.Dispose()
			return m, tea.Quit
		case "up", "k":
			m.moveOrigin(0, -1)
		case "down", "j":
			m.moveOrigin(0, 1)
		case "left", "h":
			m.moveOrigin(-1, 0)
		case "right", "l":
			m.moveOrigin(1, 0)
		case "+", "=":
			m.panel.size.Width += 2
			m.panel.size.Height++
		case "-", "_":
			if m.panel.size.Width > 6 {
				m.panel.size.Width -= 2
			}
			if m.panel.size.Height > 3 {
				m.panel.size.Height--
			}
		case "f":
			m.flexible = !m.flexible
			m.strategy.WithFlexibleDimensions(m.flexible)
		case "p":
			m.push = !m.push
			m.strategy.WithPush(m.push)
		case "x":
			m.locked = !m.locked
			m.strategy.WithLockedPosition(m.locked)
		case "r":
			m.rtl = !m.rtl
			dir := overlay.LTR
			if m.rtl {
				dir = overlay.RTL
			}
			m.strategy.WithDirection(dir)
		}
		m.clampOrigin()
		m.apply()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - 3 // header, help, and status lines
		if m.height < 5 {
			m.height = 5
		}
		m.clampOrigin()
		// Resizing the ruler re-applies the strategy via its change
		// subscription, but only once attached.
		m.ruler.Resize(geom.Size{Width: float64(m.width), Height: float64(m.height)})
		if err := m.strategy.Attach(m.panel, m.recorder); err == nil {
			m.apply()
		}
	}
	return m, nil
}

// moveOrigin shifts the anchor, keeping the rect invariants intact.
func (m *demoModel) moveOrigin(dx, dy float64) {
	m.origin = geom.NewRect(m.origin.Top+dy, m.origin.Left+dx, m.origin.Width, m.origin.Height)
}

// clampOrigin keeps the anchor inside the viewport.
func (m *demoModel) clampOrigin() {
	if m.width == 0 {
		return
	}
	top := clamp(m.origin.Top, 0, float64(m.height)-m.origin.Height)
	left := clamp(m.origin.Left, 0, float64(m.width)-m.origin.Width)
	m.origin = geom.NewRect(top, left, m.origin.Width, m.origin.Height)
}

func (m *demoModel) apply() {
	m.strategy.SetOrigin(overlay.RectOrigin(m.origin))
	m.strategy.Apply()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// =============================================================================
// View
// =============================================================================

const (
	cellOrigin  = '▒'
	cellOverlay = '█'
)

func (m demoModel) View() string {
	if m.width == 0 {
		return "measuring terminal..."
	}

	canvas := make([][]rune, m.height)
	for y := range canvas {
		canvas[y] = make([]rune, m.width)
		for x := range canvas[y] {
			canvas[y][x] = ' '
		}
	}

	stamp(canvas, m.origin, cellOrigin)

	placement := m.strategy.LastPlacement()
	status := "no placement"
	if placement != nil {
		stamp(canvas, placement.OverlayRect, cellOverlay)
		anchor := fmt.Sprintf("%s/%s", placement.Position.OriginY, placement.Position.OverlayY)
		status = fmt.Sprintf("anchor %s  box (%.0f,%.0f) %.0fx%.0f  pushed %v",
			anchor,
			placement.OverlayRect.Left, placement.OverlayRect.Top,
			placement.OverlayRect.Width, placement.OverlayRect.Height,
			placement.Pushed)
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("skyhook demo"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("←↑↓→ move  +/- resize  f flex  p push  x lock  r rtl  q quit"))
	b.WriteString("\n")
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [flex %v  push %v  lock %v  rtl %v]",
		m.flexible, m.push, m.locked, m.rtl)))
	return b.String()
}

// stamp fills a rect into the canvas, clipped to its bounds.
func stamp(canvas [][]rune, r geom.Rect, c rune) {
	for y := int(r.Top); y < int(r.Top+r.Height); y++ {
		if y < 0 || y >= len(canvas) {
			continue
		}
		for x := int(r.Left); x < int(r.Left+r.Width); x++ {
			if x < 0 || x >= len(canvas[y]) {
				continue
			}
			canvas[y][x] = c
		}
	}
}
