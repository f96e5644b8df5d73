package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/slingshot/input"
	"github.com/lixenwraith/slingshot/parameter"
	"github.com/lixenwraith/slingshot/physics"
)

// Surface is the drawable part of tcell.Screen
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Clear()
	Show()
}

// Scene is the read-only world view a frame is drawn from
// *physics.World satisfies it
type Scene interface {
	Bodies() []physics.BodyState
	Constraints() []physics.ConstraintState
}

// HUD is the overlay text of a frame
type HUD struct {
	Score int
	State string
}

var (
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleButton     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleBox        = tcell.StyleDefault.Foreground(tcell.NewRGBColor(196, 140, 70))
	styleBoxEdge    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 80, 40))
	styleGround     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(70, 150, 60))
	styleSlingshot  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(140, 90, 50))
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBand       = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Renderer rasterizes the world onto terminal cells, one cell covers CellWidth × CellHeight pixels
type Renderer struct {
	screen Surface
}

// NewRenderer creates a renderer drawing on screen
func NewRenderer(screen Surface) *Renderer {
	return &Renderer{screen: screen}
}

// Viewport returns the world size in pixels covered by the screen
func (r *Renderer) Viewport() (width, height float64) {
	cols, rows := r.screen.Size()
	return float64(cols) * parameter.CellWidth, float64(rows) * parameter.CellHeight
}

// ResetButton returns the cells of the reset button for a screen cols wide
func ResetButton(cols int) input.Region {
	w := len([]rune(parameter.ResetButtonLabel))
	return input.Region{X: max(0, cols-w-parameter.HUDMargin), Y: 0, Width: w, Height: 1}
}

// Draw renders one frame and shows it
func (r *Renderer) Draw(scene Scene, hud HUD) {
	r.screen.Clear()
	cols, rows := r.screen.Size()

	for _, c := range scene.Constraints() {
		r.drawBand(c.Anchor, c.BodyPosition, cols, rows)
	}
	for _, b := range scene.Bodies() {
		r.drawBody(b, cols, rows)
	}
	r.drawHUD(hud, cols)

	r.screen.Show()
}

func (r *Renderer) drawBody(b physics.BodyState, cols, rows int) {
	var extent float64
	switch b.Shape.Kind {
	case physics.ShapeCircle:
		extent = b.Shape.Radius
	default:
		extent = math.Hypot(b.Shape.Width, b.Shape.Height) / 2
	}

	x0, y0 := worldToCell(physics.Point{X: b.Position.X - extent, Y: b.Position.Y - extent})
	x1, y1 := worldToCell(physics.Point{X: b.Position.X + extent, Y: b.Position.Y + extent})
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, cols-1), min(y1, rows-1)

	sin, cos := math.Sincos(-b.Angle)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			d := input.CellToWorld(cx, cy).Sub(b.Position)
			lx, ly := d.X*cos-d.Y*sin, d.X*sin+d.Y*cos

			if glyph, style, ok := shade(b, lx, ly); ok {
				r.screen.SetContent(cx, cy, glyph, nil, style)
			}
		}
	}
}

// shade picks the glyph for a point in body-local coordinates, ok is false outside the body
func shade(b physics.BodyState, lx, ly float64) (rune, tcell.Style, bool) {
	if b.Shape.Kind == physics.ShapeCircle {
		if math.Hypot(lx, ly) > b.Shape.Radius {
			return 0, tcell.StyleDefault, false
		}
		return parameter.GlyphProjectile, styleProjectile, true
	}

	hw, hh := b.Shape.Width/2, b.Shape.Height/2
	ax, ay := math.Abs(lx), math.Abs(ly)
	if ax > hw || ay > hh {
		return 0, tcell.StyleDefault, false
	}

	switch b.Label {
	case physics.LabelGround:
		return parameter.GlyphGround, styleGround, true
	case physics.LabelSlingshot:
		return parameter.GlyphSlingshot, styleSlingshot, true
	case physics.LabelProjectile:
		return parameter.GlyphProjectile, styleProjectile, true
	}
	if hw-ax < parameter.CellWidth || hh-ay < parameter.CellHeight {
		return parameter.GlyphBoxEdge, styleBoxEdge, true
	}
	return parameter.GlyphBox, styleBox, true
}

// drawBand draws a straight line of cells between two world points
func (r *Renderer) drawBand(from, to physics.Point, cols, rows int) {
	x0, y0 := worldToCell(from)
	x1, y1 := worldToCell(to)

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		if x0 >= 0 && x0 < cols && y0 >= 0 && y0 < rows {
			r.screen.SetContent(x0, y0, parameter.GlyphBand, nil, styleBand)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (r *Renderer) drawHUD(hud HUD, cols int) {
	x := parameter.HUDMargin
	x = r.text(x, 0, fmt.Sprintf("Score: %d", hud.Score), styleHUD, cols)
	if hud.State != "" {
		r.text(x+2, 0, hud.State, tcell.StyleDefault, cols)
	}

	btn := ResetButton(cols)
	r.text(btn.X, btn.Y, parameter.ResetButtonLabel, styleButton, cols)
}

// text writes s from (x, y), clipped at cols, and returns the column after it
func (r *Renderer) text(x, y int, s string, style tcell.Style, cols int) int {
	for _, ch := range s {
		if x >= cols {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func worldToCell(p physics.Point) (int, int) {
	return int(math.Floor(p.X / parameter.CellWidth)), int(math.Floor(p.Y / parameter.CellHeight))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
