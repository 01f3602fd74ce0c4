// Package sweeper adapts the minefield engine to the platform's Game
// interface: a keyboard cursor, a HUD and one registered game per preset.
package sweeper

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/minefield"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/solver"
)

// Package-level settings applied on the next Reset.
var (
	configPath string
	clock      func() time.Time
)

// SetConfigPath sets a custom YAML config path for subsequent games.
func SetConfigPath(path string) {
	configPath = path
}

// Game is one sweeper session on a fixed preset.
type Game struct {
	preset string
	tick   uint64

	cfg    config.SweeperConfig
	layout config.BoardConfig
	board  *minefield.Board
	logger *log.Logger

	cursorX int // row
	cursorY int // column

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a game for the named preset.
func New(preset string) *Game {
	return &Game{preset: preset}
}

func init() {
	for _, preset := range config.Presets {
		registry.Register(preset, func() registry.Game {
			return New(preset)
		})
	}
}

// ID returns the preset name.
func (g *Game) ID() string {
	return g.preset
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.preset {
	case config.PresetBeginner:
		return "Minesweeper: Beginner"
	case config.PresetIntermediate:
		return "Minesweeper: Intermediate"
	case config.PresetExpert:
		return "Minesweeper: Expert"
	default:
		return "Minesweeper: Custom"
	}
}

// Reset builds a fresh board. For the custom preset, runtime Rows and
// Cols (with Mines) replace the configured board when both are set.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.logger = log.Default().With("preset", g.preset)

	cfg, err := config.LoadSweeper(configPath)
	if err != nil {
		g.logger.Warn("using built-in config", "err", err)
		cfg = config.DefaultSweeperConfig()
	}
	if g.preset == config.PresetCustom && runtime.Rows > 0 && runtime.Cols > 0 {
		cfg.Custom = config.BoardConfig{Rows: runtime.Rows, Cols: runtime.Cols, Mines: runtime.Mines}
	}
	g.cfg = cfg

	opts := []minefield.Option{
		minefield.WithSolver(solver.Factory()),
		minefield.WithLogger(g.logger),
	}
	if runtime.Seed != 0 {
		opts = append(opts, minefield.WithRand(minefield.NewSeededRand(uint64(runtime.Seed))))
	}
	if clock != nil {
		opts = append(opts, minefield.WithClock(clock))
	}

	layout, err := cfg.Board(g.preset)
	if err == nil {
		g.board, err = minefield.NewBoard(layout.Rows, layout.Cols, layout.Mines, opts...)
	}
	if err != nil {
		g.logger.Error("falling back to beginner board", "err", err)
		layout = config.DefaultSweeperConfig().Beginner
		g.board, _ = minefield.NewBoard(layout.Rows, layout.Cols, layout.Mines, opts...)
	}
	g.layout = layout

	g.tick = 0
	g.paused = false
	g.cursorX = layout.Rows / 2
	g.cursorY = layout.Cols / 2
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.checkScreenSize()
}

// Resize keeps the board and only re-checks the layout.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize compares the screen against the board plus HUD.
func (g *Game) checkScreenSize() {
	w, h := g.boardSize()
	g.tooSmall = g.screenW < w || g.screenH < h+hudHeight+footerHeight
}

// Step handles one tick of input and reconciles the board.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.board.State().Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionDown):
		g.moveCursor(1, 0)
	case in.Has(core.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(core.ActionRight):
		g.moveCursor(0, 1)
	}

	var err error
	switch {
	case in.Has(core.ActionReveal):
		err = g.board.Click(g.cursorX, g.cursorY)
	case in.Has(core.ActionFlag):
		err = g.board.Flag(g.cursorX, g.cursorY)
	}
	if err != nil {
		g.logger.Error("move rejected", "x", g.cursorX, "y", g.cursorY, "err", err)
	}

	g.board.Update()
	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(dx, dy int) {
	g.cursorX = core.Clamp(g.cursorX+dx, 0, g.board.Rows()-1)
	g.cursorY = core.Clamp(g.cursorY+dy, 0, g.board.Cols()-1)
}

// MinesLeft is the mine count minus placed flags. It goes negative when
// the player over-flags.
func (g *Game) MinesLeft() int {
	return g.board.Mines() - g.board.FlaggedCells()
}

// State returns the platform view of the game.
func (g *Game) State() core.GameState {
	s := g.board.State()
	return core.GameState{
		Score:    g.board.DiscoveredCells(),
		GameOver: s.Terminal(),
		Won:      s == minefield.Won,
		Paused:   g.paused || g.tooSmall,
	}
}

// Result reports the finished game. The 3BV is included when the board
// analysis has completed.
func (g *Game) Result() (registry.Result, bool) {
	s := g.board.State()
	if !s.Terminal() {
		return registry.Result{}, false
	}

	r := registry.Result{
		GameID:   g.preset,
		Rows:     g.board.Rows(),
		Cols:     g.board.Cols(),
		Mines:    g.board.Mines(),
		Won:      s == minefield.Won,
		Duration: g.board.DisplayTime(),
	}
	if sv, ok := g.board.Solver().(*solver.Solver); ok {
		if a, done := sv.Result(); done {
			r.BBBV = a.BBBV
		}
	}
	return r, true
}
