package sweeper

// Snapshot captures the game state for determinism tests.
type Snapshot struct {
	Tick       uint64
	Preset     string
	Rows       int
	Cols       int
	Mines      int
	CursorX    int
	CursorY    int
	State      string
	Started    bool
	Discovered int
	Flagged    int
	MinesLeft  int
	Paused     bool
	Grid       string // minefield.Grid text form, mines included
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:       g.tick,
		Preset:     g.preset,
		Rows:       g.board.Rows(),
		Cols:       g.board.Cols(),
		Mines:      g.board.Mines(),
		CursorX:    g.cursorX,
		CursorY:    g.cursorY,
		State:      g.board.State().String(),
		Started:    g.board.Started(),
		Discovered: g.board.DiscoveredCells(),
		Flagged:    g.board.FlaggedCells(),
		MinesLeft:  g.MinesLeft(),
		Paused:     g.paused,
		Grid:       g.board.Cells().String(),
	}
}
