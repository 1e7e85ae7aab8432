package tower

import (
	"fmt"

	"github.com/TomNeyland/endless-tower/internal/core"
)

// Visual characters for rendering.
const (
	playerChar   = '@'
	wallChar     = '║'
	platformChar = '═'
	magnetChar   = '≡'
	lineChar     = '▓'
	itemChar     = '?'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w := dst.Width()
	h := dst.Height()

	// Shaft walls.
	for y := 0; y < h; y++ {
		dst.SetColored(g.shaftLeft-1, y, wallChar, core.ColorGray)
		dst.SetColored(g.shaftLeft+g.shaftWidth, y, wallChar, core.ColorGray)
	}

	// Platforms.
	g.level.ForEach(func(_ PlatformHandle, p *Platform) {
		sy := p.Row - int(g.cameraY)
		if sy < 0 || sy >= h {
			return
		}
		ch := platformChar
		color := core.ColorDefault
		if p.Magnetic {
			ch = magnetChar
			switch {
			case !p.FieldActive:
				color = core.ColorGray
			case p.Polarity == Repel:
				color = core.ColorCyan
			case p.Charge >= maxCharge/2:
				color = core.ColorBrightMagenta
			default:
				color = core.ColorMagenta
			}
		}
		for x := p.X; x < p.X+p.W; x++ {
			dst.SetColored(x, sy, ch, color)
		}
		if p.Item != ItemNone {
			dst.SetColored(p.X+p.W/2, sy-1, itemChar, core.ColorBrightYellow)
		}
	})

	// Death line.
	if g.deathLine.Active() {
		ly := int(g.deathLine.Y() - g.cameraY)
		for y := ly; y < h; y++ {
			for x := g.shaftLeft; x < g.shaftLeft+g.shaftWidth; x++ {
				dst.SetColored(x, y, lineChar, core.ColorBrightRed)
			}
		}
	}

	// Player.
	px := int(g.player.X)
	py := int(g.player.Y - g.cameraY)
	color := core.ColorBrightWhite
	if g.bounce.Open() {
		color = core.ColorBrightYellow // window open: bounce now
	}
	dst.SetColored(px, py, playerChar, color)

	g.drawHUD(dst, w)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		stats := g.lastStats
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Height %d  Score %d  |  Press R to restart", stats.Height, stats.TotalScore))
	}
}

// drawHUD draws score, height, combo and inventory along the top rows.
func (g *Game) drawHUD(dst *core.Screen, w int) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  Height: %d ", g.Score(), g.heightRows()))

	if n := g.combo.ChainLength(); n > 1 {
		dst.DrawTextColored(2, 1, fmt.Sprintf(" Combo x%.1f (%d) ", g.combo.Multiplier(), n), core.ColorBrightGreen)
	}

	if items := g.inv.Items(); len(items) > 0 {
		s := " Items:"
		for _, k := range items {
			s += " " + k.String()
		}
		dst.DrawText(w-len(s)-2, 0, s+" ")
	}

	if dist, inBand := g.deathLine.Danger(g.player.Bottom()); inBand {
		dst.DrawTextColored(2, 2, fmt.Sprintf(" !!! LINE %.0f !!! ", dist), core.ColorBrightRed)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
