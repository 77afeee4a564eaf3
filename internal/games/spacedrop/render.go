package spacedrop

import (
	"fmt"
	"math"

	"github.com/vovakirdan/space-drop/internal/core"
)

// Visual characters for rendering
const (
	craftLevel    = '►'
	craftClimb    = '◥'
	craftDive     = '◢'
	starChar      = '·'
	asteroidChar  = '▒'
	stationChar   = '█'
	satelliteChar = '▓'
)

// tiltThreshold is the rotation beyond which the craft glyph leans.
const tiltThreshold = 0.15

// viewport maps world units onto screen cells. Row 0 is the HUD.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	h := dst.Height() - 1
	if h < 1 {
		h = 1
	}
	return viewport{
		sx:  float64(dst.Width()) / worldW,
		sy:  float64(h) / worldH,
		top: 1,
	}
}

func (v viewport) cellX(x float64) int { return int(math.Round(x * v.sx)) }
func (v viewport) cellY(y float64) int { return v.top + int(math.Round(y*v.sy)) }

// rect converts a world box to the cells it covers. Every non-empty box
// covers at least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0, x1 := v.cellX(b.X), v.cellX(b.Right())
	y0, y1 := v.cellY(b.Y), v.cellY(b.Bottom())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 && b.H > 0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Render draws the current run into dst, scaled to its size.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.run == nil {
		return
	}

	s := g.run.Snapshot()
	vp := newViewport(dst, g.cfg.World.Width, g.cfg.World.Height)

	g.drawStars(dst, vp, s.Stats.Distance)
	for _, o := range s.Obstacles {
		drawObstacle(dst, vp, o)
	}
	g.drawCraft(dst, vp, s.Craft)
	g.drawHUD(dst, s)

	switch s.Phase {
	case PhaseReady:
		drawCenteredMessage(dst, "SPACE DROP", "Press Space to launch", core.ColorBrightCyan)
	case PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorYellow)
	case PhaseGameOver:
		sub := fmt.Sprintf("Score: %d  |  Press R to restart", s.Score)
		if s.Tier != "" {
			sub = fmt.Sprintf("Score: %d  %s  |  Press R to restart", s.Score, s.Tier)
		}
		drawCenteredMessage(dst, "GAME OVER", sub, core.ColorBrightRed)
	default:
		if g.bannerLeft > 0 {
			dst.DrawTextCentered(2, " "+g.banner+" ", core.ColorBrightYellow)
		}
	}
}

// drawStars draws a sparse background that drifts at half the world speed.
func (g *Game) drawStars(dst *core.Screen, vp viewport, distance float64) {
	w, h := dst.Width(), dst.Height()
	if w == 0 || h <= 1 {
		return
	}
	shift := int(distance * 5 * vp.sx)
	for i := 0; i < w*(h-1)/40; i++ {
		x := ((i*37+11)%w - shift%w + w) % w
		y := 1 + (i*53+7)%(h-1)
		dst.SetColored(x, y, starChar, core.ColorGray)
	}
}

func drawObstacle(dst *core.Screen, vp viewport, o Obstacle) {
	fill, color := asteroidChar, core.ColorGray
	switch o.Kind {
	case KindSpaceStation:
		fill, color = stationChar, core.ColorCyan
	case KindSatellite:
		fill, color = satelliteChar, core.ColorYellow
	}
	r := vp.rect(o.Box())
	dst.FillRect(r, fill, color)

	// Edge facing the gap
	edgeY := r.Bottom() - 1
	if !o.IsTop {
		edgeY = r.Y
	}
	dst.DrawHLine(r.X, edgeY, r.W, '═', core.ColorWhite)
}

func (g *Game) drawCraft(dst *core.Screen, vp viewport, c Craft) {
	glyph := craftLevel
	switch {
	case c.Rotation < -tiltThreshold:
		glyph = craftClimb
	case c.Rotation > tiltThreshold:
		glyph = craftDive
	}
	x, y := vp.cellX(c.Pos.X), vp.cellY(c.Pos.Y)
	dst.SetColored(x-1, y, '=', core.ColorOrange)
	dst.SetColored(x, y, glyph, core.ColorBrightCyan)
}

func (g *Game) drawHUD(dst *core.Screen, s Snapshot) {
	left := fmt.Sprintf(" Score: %d  Best: %d ", s.Score, max(g.best, s.Score))
	dst.DrawTextColored(0, 0, left, core.ColorWhite)

	right := fmt.Sprintf(" %s  x%.1f ", g.preset.Title(), s.Speed)
	if s.Tier != "" {
		right = fmt.Sprintf(" %s  %s  x%.1f ", s.Tier, g.preset.Title(), s.Speed)
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorBrightCyan)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w, h := dst.Width(), dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextCentered(box.Y+1, title, c)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}
