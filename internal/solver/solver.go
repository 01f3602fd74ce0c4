// Package solver analyses a freshly mined board: it counts the openings
// and the 3BV (the minimum number of clicks needed to clear the board
// without flags). It only ever reads its own snapshot of the grid.
package solver

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gammazero/deque"

	"github.com/vovakirdan/tui-sweeper/internal/minefield"
)

// Analysis is the result of a finished run.
type Analysis struct {
	Rows     int
	Cols     int
	Mines    int
	Safe     int // non-mine cells
	Openings int // connected regions of zero-count cells
	BBBV     int // openings plus numbered cells outside every opening
}

// Solver runs Analyze on a snapshot in the background.
type Solver struct {
	snapshot minefield.Grid
	logger   *log.Logger

	once   sync.Once
	done   chan struct{}
	result Analysis
}

// FromGridSnapshot creates a solver over g. The grid is owned by the
// solver from here on; callers pass a copy.
func FromGridSnapshot(g minefield.Grid) *Solver {
	return &Solver{
		snapshot: g,
		logger:   log.Default(),
		done:     make(chan struct{}),
	}
}

// Factory adapts FromGridSnapshot for minefield.WithSolver.
func Factory() minefield.SolverFactory {
	return func(snapshot minefield.Grid) minefield.Solver {
		return FromGridSnapshot(snapshot)
	}
}

// Start launches the analysis. Only the first call has an effect.
func (s *Solver) Start() {
	s.once.Do(func() {
		go func() {
			defer close(s.done)
			s.result = Analyze(s.snapshot)
			s.logger.Debug("board analysed",
				"openings", s.result.Openings, "3bv", s.result.BBBV, "safe", s.result.Safe)
		}()
	})
}

// Done is closed once the analysis has finished.
func (s *Solver) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the analysis finishes or ctx is done.
func (s *Solver) Wait(ctx context.Context) (Analysis, error) {
	select {
	case <-s.done:
		return s.result, nil
	case <-ctx.Done():
		return Analysis{}, ctx.Err()
	}
}

// Result returns the analysis if it has finished.
func (s *Solver) Result() (Analysis, bool) {
	select {
	case <-s.done:
		return s.result, true
	default:
		return Analysis{}, false
	}
}

type pos struct {
	x, y int
}

// Analyze computes the board statistics of g synchronously. Display states
// are ignored; only mines and adjacency counts matter.
func Analyze(g minefield.Grid) Analysis {
	a := Analysis{Rows: g.Rows(), Cols: g.Cols()}
	marked := make([][]bool, g.Rows())
	for x := range marked {
		marked[x] = make([]bool, g.Cols())
	}

	for x := range g {
		for y, c := range g[x] {
			if c.IsMine() {
				a.Mines++
				continue
			}
			a.Safe++
			if c.Value() != 0 || marked[x][y] {
				continue
			}
			a.Openings++
			floodOpening(g, marked, pos{x, y})
		}
	}

	a.BBBV = a.Openings
	for x := range g {
		for y, c := range g[x] {
			if !c.IsMine() && !marked[x][y] {
				a.BBBV++
			}
		}
	}
	return a
}

// floodOpening marks the zero region containing start together with its
// numbered border.
func floodOpening(g minefield.Grid, marked [][]bool, start pos) {
	var queue deque.Deque[pos]
	marked[start.x][start.y] = true
	queue.PushBack(start)

	for queue.Len() > 0 {
		p := queue.PopFront()
		if g[p.x][p.y].Value() != 0 {
			continue
		}
		g.Neighbors(p.x, p.y, func(nx, ny int) {
			if marked[nx][ny] || g[nx][ny].IsMine() {
				return
			}
			marked[nx][ny] = true
			queue.PushBack(pos{nx, ny})
		})
	}
}
