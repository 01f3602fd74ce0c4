package minefield

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// GameState is the lifecycle state of a board.
type GameState int

const (
	InProgress GameState = iota
	Won
	Lost
)

// String returns a human-readable name for the state.
func (s GameState) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further moves are accepted.
func (s GameState) Terminal() bool {
	return s == Won || s == Lost
}

// Board owns a grid and every counter of one game.
//
// A Board is not safe for concurrent use: callers serialize Click, Flag
// and Update, typically from a single UI event loop.
type Board struct {
	grid  Grid
	rows  int
	cols  int
	mines int

	state      GameState
	started    bool
	discovered int
	flagged    int

	timer   *Timer
	display time.Duration

	rng           Rand
	solverFactory SolverFactory
	solver        Solver
	logger        *log.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithRand sets the random source used for mine placement.
func WithRand(rng Rand) Option {
	return func(b *Board) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// WithClock sets the time source used by the game timer.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.timer = NewTimer(now)
	}
}

// WithSolver sets the factory invoked once the mines are placed.
func WithSolver(f SolverFactory) Option {
	return func(b *Board) {
		b.solverFactory = f
	}
}

// WithLogger sets the logger for lifecycle debug output.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// MaxMines returns the largest mine count a rows x cols board accepts:
// every first move must leave room for all mines outside its 3x3 block.
func MaxMines(rows, cols int) int {
	return rows*cols - min(rows, 3)*min(cols, 3)
}

// NewBoard creates an all-Blank board. Mines are placed on the first
// Click or Flag so that the first move is always safe.
func NewBoard(rows, cols, mines int, opts ...Option) (*Board, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if mines < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMineCount, mines)
	}
	if limit := MaxMines(rows, cols); mines > limit {
		return nil, fmt.Errorf("%w: %d mines on %dx%d, at most %d", ErrTooManyMines, mines, rows, cols, limit)
	}

	b := newBoard(NewGrid(rows, cols), mines, opts)
	return b, nil
}

// NewBoardFromGrid wraps an existing grid, typically a ParseGrid fixture,
// as an already started board. Mines and discovered cells are counted from
// the grid, and covered safe cells get their counts from the mines around
// them.
func NewBoardFromGrid(g Grid, opts ...Option) (*Board, error) {
	if g.Rows() < 1 || g.Cols() < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, g.Rows(), g.Cols())
	}

	g = g.Clone()
	mines := 0
	discovered := 0
	for x, row := range g {
		for y, c := range row {
			switch {
			case c.IsMine():
				mines++
			case c.state == StateDiscovered:
				discovered++
			case c.state.hidden():
				n := 0
				g.Neighbors(x, y, func(nx, ny int) {
					if g[nx][ny].IsMine() {
						n++
					}
				})
				g[x][y].value = uint8(n)
			}
		}
	}

	b := newBoard(g, mines, opts)
	b.started = true
	b.discovered = discovered
	b.timer.Start()
	b.checkWin()
	return b, nil
}

func newBoard(g Grid, mines int, opts []Option) *Board {
	b := &Board{
		grid:   g,
		rows:   g.Rows(),
		cols:   g.Cols(),
		mines:  mines,
		state:  InProgress,
		timer:  NewTimer(nil),
		rng:    processRand{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// activate places the mines around the first move, hands a snapshot to the
// solver and starts the timer. Repeated calls are ignored.
func (b *Board) activate(x, y int) error {
	if b.started {
		return nil
	}

	b.logger.Debug("placing mines", "rows", b.rows, "cols", b.cols, "mines", b.mines, "x", x, "y", y)
	if _, err := layMines(b.grid, x, y, b.mines, b.rng); err != nil {
		return err
	}

	if b.solverFactory != nil {
		b.solver = b.solverFactory(b.grid.Clone())
		b.solver.Start()
	}

	b.started = true
	b.timer.Start()
	return nil
}

func (b *Board) checkCoordinate(x, y int) error {
	if !b.grid.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrInvalidCoordinate, x, y, b.rows, b.cols)
	}
	return nil
}

// Click reveals (x, y). On a covered cell this starts the cascade; on a
// discovered cell whose flagged neighbours match its count it reveals the
// remaining covered neighbours (chord). Moves on a finished board are
// ignored.
func (b *Board) Click(x, y int) error {
	if err := b.checkCoordinate(x, y); err != nil {
		return err
	}
	if b.state.Terminal() {
		return nil
	}
	if err := b.activate(x, y); err != nil {
		return err
	}

	b.cascade(b.seeds(x, y))
	return nil
}

// Flag cycles the marker on (x, y): Blank, Flagged, Question. Flagging a
// discovered cell performs a chord click instead.
func (b *Board) Flag(x, y int) error {
	if err := b.checkCoordinate(x, y); err != nil {
		return err
	}
	if b.state.Terminal() {
		return nil
	}
	if b.grid[x][y].state == StateDiscovered {
		return b.Click(x, y)
	}
	if err := b.activate(x, y); err != nil {
		return err
	}

	b.flagged += b.grid[x][y].CycleFlag()
	return nil
}

// setState performs a lifecycle transition and freezes the timer on
// entering a terminal state.
func (b *Board) setState(s GameState) {
	if b.state.Terminal() || s == b.state {
		return
	}
	b.state = s
	if s.Terminal() {
		b.timer.Freeze()
		b.display = b.timer.Elapsed()
		b.logger.Debug("game over", "state", s, "elapsed", b.display, "discovered", b.discovered)
	}
}

// Update reconciles the board once per frame. While playing it refreshes
// the cached display time. After a win every mine shows a flag; after a
// loss every mine except the exploded one shows as a plain mine. In both
// cases every safe cell is uncovered. Calling it repeatedly is harmless.
func (b *Board) Update() {
	b.display = b.timer.Elapsed()
	if !b.state.Terminal() {
		return
	}

	for x := range b.grid {
		for y := range b.grid[x] {
			c := &b.grid[x][y]
			switch {
			case !c.IsMine():
				c.state = StateDiscovered
			case b.state == Won:
				c.state = StateFlagged
			case c.state != StateExploded:
				c.state = StateBlank
			}
		}
	}
}

// Cells returns the grid for rendering. Callers must not modify it.
func (b *Board) Cells() Grid {
	return b.grid
}

// Snapshot returns a deep copy of the grid.
func (b *Board) Snapshot() Grid {
	return b.grid.Clone()
}

// Cell returns the cell at (x, y).
func (b *Board) Cell(x, y int) (Cell, error) {
	if err := b.checkCoordinate(x, y); err != nil {
		return Cell{}, err
	}
	return b.grid[x][y], nil
}

// FlaggedCells returns the flag counter. It is not clamped and may exceed
// the mine count.
func (b *Board) FlaggedCells() int {
	return b.flagged
}

// DiscoveredCells returns the number of safe cells uncovered by play.
func (b *Board) DiscoveredCells() int {
	return b.discovered
}

// DisplayTime returns the elapsed play time: live while in progress,
// frozen once the game ends.
func (b *Board) DisplayTime() time.Duration {
	if b.state.Terminal() {
		return b.display
	}
	return b.timer.Elapsed()
}

// State returns the lifecycle state.
func (b *Board) State() GameState {
	return b.state
}

// Started reports whether mines have been placed.
func (b *Board) Started() bool {
	return b.started
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// Mines returns the mine count.
func (b *Board) Mines() int { return b.mines }

// Solver returns the collaborator created at activation, or nil.
func (b *Board) Solver() Solver {
	return b.solver
}
