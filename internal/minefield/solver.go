package minefield

// Solver is the move-analysis collaborator created when a board activates.
// It receives its own copy of the grid and must never mutate the Board.
type Solver interface {
	Start()
}

// SolverFactory builds a Solver from a snapshot of the freshly mined grid.
type SolverFactory func(snapshot Grid) Solver
