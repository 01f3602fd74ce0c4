package sweeper

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/minefield"
)

const (
	hudHeight    = 2 // title and counters above the board
	footerHeight = 2 // status line and key hints below the board
)

var numberColors = [...]core.Color{
	1: core.ColorBrightBlue,
	2: core.ColorGreen,
	3: core.ColorBrightRed,
	4: core.ColorBlue,
	5: core.ColorRed,
	6: core.ColorCyan,
	7: core.ColorBrightWhite,
	8: core.ColorGray,
}

func (g *Game) cellWidth() int {
	return core.Clamp(g.cfg.Display.CellWidth, 1, 3)
}

// boardSize returns the framed board size in screen cells.
func (g *Game) boardSize() (w, h int) {
	return g.layout.Cols*g.cellWidth() + 2, g.layout.Rows + 2
}

// Render draws the HUD, the framed board and the status line.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	w, h := g.boardSize()
	frame := core.NewRect((g.screenW-w)/2, hudHeight, w, h)
	g.renderHUD(dst, frame)
	dst.DrawBox(frame, core.ColorGray)

	if g.paused {
		dst.DrawTextCenteredColored(frame.Y+frame.H/2, "PAUSED", core.ColorBrightYellow)
	} else {
		g.renderCells(dst, frame.X+1, frame.Y+1)
	}

	g.renderFooter(dst, frame.Bottom())
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	w, h := g.boardSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h+hudHeight+footerHeight))
}

func (g *Game) renderHUD(dst *core.Screen, frame core.Rect) {
	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightWhite)

	mines := fmt.Sprintf("Mines: %d", g.MinesLeft())
	clock := fmt.Sprintf("Time: %s", formatDuration(g.board.DisplayTime()))

	dst.DrawTextColored(frame.X, 1, mines, core.ColorBrightRed)
	dst.DrawTextColored(frame.Right()-len(clock), 1, clock, core.ColorBrightCyan)
}

func (g *Game) renderCells(dst *core.Screen, left, top int) {
	cw := g.cellWidth()
	grid := g.board.Cells()
	lost := g.board.State() == minefield.Lost

	for x := range grid {
		for y, c := range grid[x] {
			r, color := g.glyph(c, lost)
			if !g.cfg.Display.Colors {
				color = core.ColorDefault
			}
			px, py := left+y*cw, top+x

			if x == g.cursorX && y == g.cursorY && !g.board.State().Terminal() {
				color = core.ColorBrightYellow
				if r == ' ' {
					r = '_'
				}
				if cw > 1 {
					dst.SetColored(px+cw-1, py, '<', color)
				}
			}
			dst.SetColored(px, py, r, color)
		}
	}
}

// glyph picks the rune and color for a cell. Once a game is lost the mines
// that stay covered are shown as well.
func (g *Game) glyph(c minefield.Cell, lost bool) (rune, core.Color) {
	switch c.State() {
	case minefield.StateDiscovered:
		n, _ := c.Count()
		if n == 0 {
			return ' ', core.ColorDefault
		}
		return rune('0' + n), numberColors[min(n, 8)]
	case minefield.StateFlagged:
		return 'F', core.ColorRed
	case minefield.StateQuestion:
		if !g.cfg.Display.QuestionMarks {
			return '.', core.ColorGray
		}
		return '?', core.ColorMagenta
	case minefield.StateExploded:
		return '*', core.ColorBrightRed
	case minefield.StateBlank:
		if lost && c.IsMine() {
			return '*', core.ColorWhite
		}
		return '.', core.ColorGray
	default:
		return '#', core.ColorOrange
	}
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	switch g.board.State() {
	case minefield.Won:
		msg := fmt.Sprintf("Cleared in %s!", formatDuration(g.board.DisplayTime()))
		if res, ok := g.Result(); ok && res.BBBV > 0 {
			msg += fmt.Sprintf(" 3BV %d", res.BBBV)
		}
		dst.DrawTextCenteredColored(y, msg, core.ColorBrightGreen)
		dst.DrawTextCentered(y+1, "R: new board  B: menu  Q: quit")
	case minefield.Lost:
		dst.DrawTextCenteredColored(y, "BOOM! You hit a mine.", core.ColorBrightRed)
		dst.DrawTextCentered(y+1, "R: new board  B: menu  Q: quit")
	default:
		hints := []string{"arrows/hjkl: move", "space: reveal", "f: flag", "p: pause"}
		dst.DrawTextCentered(y, fmt.Sprintf("%dx%d, %d mines", g.board.Rows(), g.board.Cols(), g.board.Mines()))
		dst.DrawTextCenteredColored(y+1, strings.Join(hints, "  "), core.ColorGray)
	}
}

// formatDuration renders whole and tenth seconds, e.g. "12.3s".
func formatDuration(d time.Duration) string {
	tenths := d.Milliseconds() / 100
	return fmt.Sprintf("%d.%ds", tenths/10, tenths%10)
}
