package minefield

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureBoard(t *testing.T, lines []string, opts ...Option) *Board {
	t.Helper()
	g, err := ParseGrid(lines)
	require.NoError(t, err)
	b, err := NewBoardFromGrid(g, opts...)
	require.NoError(t, err)
	return b
}

func countState(g Grid, s CellState) int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if c.State() == s {
				n++
			}
		}
	}
	return n
}

func assertWinInvariant(t *testing.T, b *Board) {
	t.Helper()
	full := b.DiscoveredCells()+b.Mines() == b.Rows()*b.Cols()
	assert.Equal(t, full, b.State() == Won,
		"discovered %d + mines %d vs %d cells in state %s",
		b.DiscoveredCells(), b.Mines(), b.Rows()*b.Cols(), b.State())
}

func TestNewBoardValidation(t *testing.T) {
	_, err := NewBoard(0, 5, 0)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewBoard(5, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewBoard(9, 9, -1)
	assert.ErrorIs(t, err, ErrInvalidMineCount)

	_, err = NewBoard(9, 9, 73)
	assert.ErrorIs(t, err, ErrTooManyMines)

	b, err := NewBoard(9, 9, 72)
	require.NoError(t, err)
	assert.Equal(t, 72, b.Mines())
}

func TestNewBoardIsBlankAndUnstarted(t *testing.T) {
	b, err := NewBoard(4, 7, 5)
	require.NoError(t, err)

	assert.False(t, b.Started())
	assert.Equal(t, InProgress, b.State())
	assert.Equal(t, 28, countState(b.Cells(), StateBlank))
	for _, row := range b.Cells() {
		for _, c := range row {
			assert.False(t, c.IsMine(), "mines must not be placed before the first move")
		}
	}
	assert.Zero(t, b.DisplayTime())
}

func TestClickBeginnerBoard(t *testing.T) {
	b, err := NewBoard(9, 9, 10, WithRand(NewSeededRand(1)))
	require.NoError(t, err)

	require.NoError(t, b.Click(4, 4))

	g := b.Cells()
	for x := 3; x <= 5; x++ {
		for y := 3; y <= 5; y++ {
			assert.False(t, g[x][y].IsMine(), "mine at (%d,%d) next to first click", x, y)
		}
	}
	assert.NotEqual(t, Lost, b.State())
	assert.GreaterOrEqual(t, b.DiscoveredCells(), 1)
	assert.True(t, b.Started())
	assertWinInvariant(t, b)
}

func TestFirstMoveIsAlwaysSafe(t *testing.T) {
	for seed := uint64(0); seed < 5; seed++ {
		for x := 0; x < 9; x++ {
			for y := 0; y < 9; y++ {
				for _, flag := range []bool{false, true} {
					b, err := NewBoard(9, 9, MaxMines(9, 9), WithRand(NewSeededRand(seed)))
					require.NoError(t, err)

					if flag {
						require.NoError(t, b.Flag(x, y))
					} else {
						require.NoError(t, b.Click(x, y))
						assert.NotEqual(t, Lost, b.State())
					}

					b.Cells().Neighbors(x, y, func(nx, ny int) {
						assert.False(t, b.Cells()[nx][ny].IsMine(), "seed %d: mine at (%d,%d) near (%d,%d)", seed, nx, ny, x, y)
					})
					assert.False(t, b.Cells()[x][y].IsMine())
				}
			}
		}
	}
}

func TestSingleCellBoardWinsImmediately(t *testing.T) {
	b, err := NewBoard(1, 1, 0)
	require.NoError(t, err)

	require.NoError(t, b.Click(0, 0))
	assert.Equal(t, Won, b.State())
	assert.Equal(t, 1, b.DiscoveredCells())
}

func TestClickOutOfRange(t *testing.T) {
	b, err := NewBoard(3, 4, 0)
	require.NoError(t, err)

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 4}} {
		assert.ErrorIs(t, b.Click(c[0], c[1]), ErrInvalidCoordinate)
		assert.ErrorIs(t, b.Flag(c[0], c[1]), ErrInvalidCoordinate)
	}
	assert.False(t, b.Started(), "rejected moves must not activate the board")
}

func TestCascadeRevealsOpeningAndWins(t *testing.T) {
	b := fixtureBoard(t, []string{
		"???m",
		"????",
		"????",
	})
	require.Equal(t, 1, b.Mines())

	require.NoError(t, b.Click(2, 0))

	assert.Equal(t, Won, b.State())
	assert.Equal(t, 11, b.DiscoveredCells())
	assertWinInvariant(t, b)

	b.Update()
	assert.Equal(t, StateFlagged, b.Cells()[0][3].State(), "won board shows mines flagged")
	assert.Zero(t, b.FlaggedCells(), "cosmetic flags do not touch the counter")
}

func TestCascadeStopsAtNumbers(t *testing.T) {
	b := fixtureBoard(t, []string{
		"?????",
		"?????",
		"mmmmm",
		"?????",
	})

	require.NoError(t, b.Click(0, 0))

	assert.Equal(t, InProgress, b.State())
	assert.Equal(t, 10, b.DiscoveredCells(), "the two rows above the mines open, nothing below")
	for y := 0; y < 5; y++ {
		assert.Equal(t, StateBlank, b.Cells()[3][y].State())
	}
	assertWinInvariant(t, b)
}

func TestClickMineLoses(t *testing.T) {
	b := fixtureBoard(t, []string{
		"m?m",
		"???",
		"???",
	})

	require.NoError(t, b.Click(0, 0))

	assert.Equal(t, Lost, b.State())
	g := b.Cells()
	assert.Equal(t, 1, countState(g, StateExploded))
	assert.Equal(t, StateExploded, g[0][0].State())
	assert.Equal(t, StateBlank, g[0][2].State(), "other mines stay hidden until Update")
	assert.Zero(t, countState(g, StateDiscovered))
	assertWinInvariant(t, b)

	b.Update()
	assert.Equal(t, StateExploded, g[0][0].State())
	assert.Equal(t, StateBlank, g[0][2].State())
	assert.True(t, g[0][2].IsMine())
	assert.Equal(t, 7, countState(g, StateDiscovered))
}

func TestLostUpdateClearsStrayFlags(t *testing.T) {
	b := fixtureBoard(t, []string{
		"m?m",
		"???",
	})

	require.NoError(t, b.Flag(0, 2))
	require.NoError(t, b.Flag(1, 1))
	require.NoError(t, b.Click(0, 0))
	require.Equal(t, Lost, b.State())

	b.Update()
	g := b.Cells()
	assert.Equal(t, StateBlank, g[0][2].State(), "flagged mine shows as a plain mine")
	assert.Equal(t, StateDiscovered, g[1][1].State(), "wrongly flagged safe cell is uncovered")
}

func TestUpdateIsIdempotent(t *testing.T) {
	for _, lines := range [][]string{
		{"m?m", "???", "???"},
		{"???m", "????", "????"},
	} {
		b := fixtureBoard(t, lines)
		require.NoError(t, b.Click(0, 0))
		require.True(t, b.State().Terminal())

		b.Update()
		first := b.Snapshot()
		b.Update()
		assert.Equal(t, first, b.Snapshot())
	}
}

func TestMovesIgnoredAfterGameOver(t *testing.T) {
	b := fixtureBoard(t, []string{
		"m??",
		"???",
	})
	require.NoError(t, b.Click(0, 0))
	require.Equal(t, Lost, b.State())

	before := b.Snapshot()
	require.NoError(t, b.Click(1, 2))
	require.NoError(t, b.Flag(1, 2))
	assert.Equal(t, before, b.Snapshot())
	assert.Zero(t, b.FlaggedCells())
	assert.Equal(t, Lost, b.State())
}

func TestChordRevealsNeighbours(t *testing.T) {
	b := fixtureBoard(t, []string{
		"m1?",
		"???",
		"???",
	})
	require.Equal(t, 1, b.DiscoveredCells())

	require.NoError(t, b.Flag(0, 0))
	require.NoError(t, b.Click(0, 1))

	assert.Equal(t, Won, b.State())
	assert.Equal(t, 8, b.DiscoveredCells())
	assert.Equal(t, StateFlagged, b.Cells()[0][0].State())
}

func TestChordRequiresMatchingFlags(t *testing.T) {
	b := fixtureBoard(t, []string{
		"m1?",
		"???",
		"???",
	})

	require.NoError(t, b.Click(0, 1))

	assert.Equal(t, InProgress, b.State())
	assert.Equal(t, 1, b.DiscoveredCells())
	assert.Equal(t, 8, countState(b.Cells(), StateBlank))
}

func TestChordWithWrongFlagLoses(t *testing.T) {
	b := fixtureBoard(t, []string{
		"m1?",
		"???",
		"???",
	})

	require.NoError(t, b.Flag(1, 0))
	require.NoError(t, b.Click(0, 1))

	assert.Equal(t, Lost, b.State())
	assert.Equal(t, StateExploded, b.Cells()[0][0].State())
	assert.Equal(t, 1, countState(b.Cells(), StateExploded))
}

func TestFlagOnDiscoveredChords(t *testing.T) {
	b := fixtureBoard(t, []string{
		"m1?",
		"???",
		"???",
	})

	require.NoError(t, b.Flag(0, 0))
	require.NoError(t, b.Flag(0, 1))

	assert.Equal(t, Won, b.State())
	assert.Equal(t, 1, b.FlaggedCells())
}

func TestFlagCycleCounter(t *testing.T) {
	b, err := NewBoard(9, 9, 10, WithRand(NewSeededRand(3)))
	require.NoError(t, err)

	require.NoError(t, b.Flag(0, 0))
	assert.True(t, b.Started(), "flag activates the board")
	assert.Equal(t, 1, b.FlaggedCells())
	assert.Equal(t, StateFlagged, b.Cells()[0][0].State())

	require.NoError(t, b.Flag(0, 0))
	assert.Equal(t, StateQuestion, b.Cells()[0][0].State())

	require.NoError(t, b.Flag(0, 0))
	assert.Equal(t, StateBlank, b.Cells()[0][0].State())
	assert.Zero(t, b.FlaggedCells())
}

func TestFlaggedCounterIsUnclamped(t *testing.T) {
	b := fixtureBoard(t, []string{
		"m???",
		"????",
	})

	for y := 0; y < 4; y++ {
		require.NoError(t, b.Flag(1, y))
	}
	assert.Equal(t, 4, b.FlaggedCells(), "flags may exceed the mine count")
}

func TestFlaggedCellIsNotRevealed(t *testing.T) {
	b := fixtureBoard(t, []string{
		"m??",
		"???",
	})

	require.NoError(t, b.Flag(0, 0))
	require.NoError(t, b.Click(0, 0))

	assert.Equal(t, InProgress, b.State())
	assert.Equal(t, StateFlagged, b.Cells()[0][0].State())
}

func TestDisplayTime(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	b := fixtureBoard(t, []string{
		"m?",
		"??",
	}, WithClock(clock))

	require.NoError(t, b.Click(1, 1))
	require.Equal(t, InProgress, b.State())

	now = now.Add(5 * time.Second)
	assert.Equal(t, 5*time.Second, b.DisplayTime())
	b.Update()
	assert.Equal(t, 5*time.Second, b.DisplayTime())

	now = now.Add(2 * time.Second)
	require.NoError(t, b.Click(0, 1))
	require.NoError(t, b.Click(1, 0))
	require.Equal(t, Won, b.State())
	assert.Equal(t, 7*time.Second, b.DisplayTime())

	now = now.Add(10 * time.Second)
	assert.Equal(t, 7*time.Second, b.DisplayTime(), "time freezes when the game ends")
	b.Update()
	assert.Equal(t, 7*time.Second, b.DisplayTime())
}

func TestTimerStartsOnFirstMove(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	b, err := NewBoard(9, 9, 10, WithClock(clock), WithRand(NewSeededRand(5)))
	require.NoError(t, err)

	now = now.Add(time.Minute)
	assert.Zero(t, b.DisplayTime())

	require.NoError(t, b.Flag(8, 8))
	now = now.Add(3 * time.Second)
	assert.Equal(t, 3*time.Second, b.DisplayTime())
}

type recordingSolver struct {
	snapshot Grid
	started  int
}

func (s *recordingSolver) Start() { s.started++ }

func TestSolverReceivesSnapshotOnActivation(t *testing.T) {
	var created []*recordingSolver
	factory := func(g Grid) Solver {
		s := &recordingSolver{snapshot: g}
		created = append(created, s)
		return s
	}

	b, err := NewBoard(9, 9, 10, WithRand(NewSeededRand(11)), WithSolver(factory))
	require.NoError(t, err)
	assert.Nil(t, b.Solver())

	require.NoError(t, b.Click(4, 4))
	require.Len(t, created, 1)
	assert.Equal(t, 1, created[0].started)
	assert.Same(t, created[0], b.Solver())

	mines := 0
	for _, row := range created[0].snapshot {
		for _, c := range row {
			assert.Equal(t, StateBlank, c.State(), "snapshot is taken before the first reveal")
			if c.IsMine() {
				mines++
			}
		}
	}
	assert.Equal(t, 10, mines)

	require.NoError(t, b.Flag(0, 0))
	require.NoError(t, b.Click(8, 8))
	assert.Len(t, created, 1, "activation happens once")
}

// TestRandomPlayKeepsWinInvariant plays random moves on many boards and
// checks the win condition after every move.
func TestRandomPlayKeepsWinInvariant(t *testing.T) {
	for seed := uint64(0); seed < 30; seed++ {
		moves := NewSeededRand(seed + 1000)
		b, err := NewBoard(8, 8, 10, WithRand(NewSeededRand(seed)))
		require.NoError(t, err)

		for i := 0; i < 200 && !b.State().Terminal(); i++ {
			x, y := moves.IntN(8), moves.IntN(8)
			if moves.IntN(4) == 0 {
				require.NoError(t, b.Flag(x, y))
			} else {
				require.NoError(t, b.Click(x, y))
			}
			assertWinInvariant(t, b)
			if b.State() == Lost {
				assert.Equal(t, 1, countState(b.Cells(), StateExploded))
			}
		}
	}
}
