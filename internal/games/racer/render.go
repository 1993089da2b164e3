package racer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lanerush/internal/core"
)

// Visual characters for rendering
const (
	CarChar      = '▲'
	RewardChar   = '$'
	ObstacleChar = '█'
	BorderChar   = '║'
	DividerChar  = '┆'
)

const (
	hudRows      = 1
	minRoadRows  = 8
	minLaneCells = 3
	maxLaneCells = 11
	dashPeriod   = 4
)

// layout maps field units to screen cells.
type layout struct {
	roadX     int // Left border column
	roadTop   int
	rows      int
	laneCells int
	objRows   int
	fieldH    float64
}

func newLayout(f Field, w, h int) (layout, bool) {
	rows := h - hudRows
	laneCells := (w - (f.Lanes + 1)) / f.Lanes
	if laneCells > maxLaneCells {
		laneCells = maxLaneCells
	}
	if laneCells < minLaneCells || rows < minRoadRows {
		return layout{}, false
	}
	roadW := f.Lanes*laneCells + f.Lanes + 1
	objRows := core.Max(1, int(math.Round(f.ObjectSize/f.Height*float64(rows))))
	return layout{
		roadX:     (w - roadW) / 2,
		roadTop:   hudRows,
		rows:      rows,
		laneCells: laneCells,
		objRows:   objRows,
		fieldH:    f.Height,
	}, true
}

// row converts a field y coordinate to a screen row.
func (l layout) row(y float64) int {
	return l.roadTop + int(math.Floor(y/l.fieldH*float64(l.rows)))
}

// laneX returns the first column inside a lane.
func (l layout) laneX(lane int) int {
	return l.roadX + 1 + lane*(l.laneCells+1)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.match.Snapshot()
	l, ok := newLayout(g.match.Field(), dst.Width(), dst.Height())
	if !ok {
		drawCenteredMessage(dst, "WINDOW TOO SMALL", "Enlarge the terminal")
		return
	}

	g.drawRoad(dst, l)

	for _, e := range snap.Entities {
		char, color := RewardChar, core.ColorBrightYellow
		if e.Kind == KindObstacle {
			char, color = ObstacleChar, core.ColorRed
			if snap.Phase == PhaseEnded && g.crashed && e.ID == g.crashedID {
				color = core.ColorBrightRed
			}
		}
		drawObject(dst, l, e.Lane, l.row(e.Y), char, color)
	}

	playerColor := core.ColorMagenta
	if snap.Phase == PhaseEnded {
		playerColor = core.ColorBrightRed
	}
	drawObject(dst, l, snap.Lane, l.row(g.match.Field().PlayerTop), CarChar, playerColor)

	// HUD
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorWhite)
	speedText := fmt.Sprintf(" Speed: %.1f ", snap.Speed)
	dst.DrawTextColor(dst.Width()-len(speedText)-2, 0, speedText, core.ColorCyan)

	switch {
	case snap.Phase == PhaseIdle:
		drawCenteredMessage(dst, g.Title(), "Space to start  |  ←/→ to steer")
	case snap.Phase == PhaseEnded:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawRoad draws the borders and the scrolling dashed lane dividers.
func (g *Game) drawRoad(dst *core.Screen, l layout) {
	lanes := g.match.Field().Lanes
	offset := int(g.travelled / l.fieldH * float64(l.rows))

	for r := 0; r < l.rows; r++ {
		y := l.roadTop + r
		for i := 0; i <= lanes; i++ {
			x := l.roadX + i*(l.laneCells+1)
			if i == 0 || i == lanes {
				dst.SetColor(x, y, BorderChar, core.ColorGray)
				continue
			}
			if ((r-offset)%dashPeriod+dashPeriod)%dashPeriod < dashPeriod/2 {
				dst.SetColor(x, y, DividerChar, core.ColorYellow)
			}
		}
	}
}

// drawObject fills an object's cells inside its lane, clipped to the road.
func drawObject(dst *core.Screen, l layout, lane, top int, char rune, color core.Color) {
	x0 := l.laneX(lane) + 1
	x1 := l.laneX(lane) + l.laneCells - 1
	if x1 <= x0 {
		x0, x1 = l.laneX(lane), l.laneX(lane)+l.laneCells
	}
	for y := top; y < top+l.objRows; y++ {
		if y < l.roadTop || y >= l.roadTop+l.rows {
			continue
		}
		for x := x0; x < x1; x++ {
			dst.SetColor(x, y, char, color)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	titleW := len([]rune(title))
	subW := len([]rune(subtitle))

	boxW := core.Max(titleW, subW) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColor(boxX+(boxW-titleW)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-subW)/2, boxY+3, subtitle)
}
