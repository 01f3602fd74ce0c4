package minefield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusionRuns(t *testing.T) {
	tests := []struct {
		name       string
		x, y       int
		rows, cols int
		want       []run
	}{
		{"center", 4, 4, 9, 9, []run{{30, 3}, {39, 3}, {48, 3}}},
		{"corner", 0, 0, 9, 9, []run{{0, 2}, {9, 2}}},
		{"far corner", 8, 8, 9, 9, []run{{70, 2}, {79, 2}}},
		{"single column", 2, 0, 5, 1, []run{{1, 3}}},
		{"single row", 0, 2, 1, 5, []run{{1, 3}}},
		{"single cell", 0, 0, 1, 1, []run{{0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exclusionRuns(tt.x, tt.y, tt.rows, tt.cols))
		})
	}
}

func TestSkipGaps(t *testing.T) {
	runs := []run{{30, 3}, {39, 3}, {48, 3}}
	got := skipGaps([]int{0, 29, 30, 35, 36, 71}, runs)
	assert.Equal(t, []int{0, 29, 33, 38, 42, 80}, got)
}

func TestSkipGapsLeadingRun(t *testing.T) {
	runs := []run{{0, 2}, {9, 2}}
	got := skipGaps([]int{0, 6, 7, 8}, runs)
	assert.Equal(t, []int{2, 8, 11, 12}, got)
}

func TestSampleIndices(t *testing.T) {
	rng := NewSeededRand(7)

	got := sampleIndices(rng, 50, 20)
	require.Len(t, got, 20)
	for i, v := range got {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 50)
		if i > 0 {
			assert.Less(t, got[i-1], v, "samples must be sorted and distinct")
		}
	}

	all := sampleIndices(rng, 5, 5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, all)

	assert.Empty(t, sampleIndices(rng, 5, 0))
}

// TestLayMinesAllFirstMoves checks placement for every first move on a
// densely mined board: exact mine count, nothing near the first move, and
// correct adjacency counts everywhere.
func TestLayMinesAllFirstMoves(t *testing.T) {
	const rows, cols = 5, 6
	mines := MaxMines(rows, cols)
	rng := NewSeededRand(99)

	for x := 0; x < rows; x++ {
		for y := 0; y < cols; y++ {
			g := NewGrid(rows, cols)
			positions, err := layMines(g, x, y, mines, rng)
			require.NoError(t, err)
			require.Len(t, positions, mines)

			count := 0
			for gx := range g {
				for gy := range g[gx] {
					c := g[gx][gy]
					assert.Equal(t, StateBlank, c.State(), "placement must keep the display state")
					if c.IsMine() {
						count++
						assert.False(t, abs(gx-x) <= 1 && abs(gy-y) <= 1,
							"mine at (%d,%d) inside exclusion zone of (%d,%d)", gx, gy, x, y)
						continue
					}
					assert.Equal(t, uint8(neighbourMines(g, gx, gy)), c.Value(),
						"wrong count at (%d,%d)", gx, gy)
				}
			}
			assert.Equal(t, mines, count)
		}
	}
}

func TestLayMinesTooMany(t *testing.T) {
	g := NewGrid(3, 3)
	_, err := layMines(g, 0, 0, 6, NewSeededRand(1))
	assert.ErrorIs(t, err, ErrTooManyMines)
}

// TestLayMinesUniform places one mine on a 4x4 board many times and
// expects every non-excluded cell to be chosen about equally often.
func TestLayMinesUniform(t *testing.T) {
	const trials = 12000
	rng := NewSeededRand(2024)
	hits := make(map[int]int)

	for i := 0; i < trials; i++ {
		g := NewGrid(4, 4)
		positions, err := layMines(g, 0, 0, 1, rng)
		require.NoError(t, err)
		hits[positions[0]]++
	}

	for _, excluded := range []int{0, 1, 4, 5} {
		assert.Zero(t, hits[excluded], "excluded index %d was mined", excluded)
	}
	assert.Len(t, hits, 12)

	want := trials / 12
	for idx, n := range hits {
		assert.InDelta(t, want, n, float64(want)/4, "index %d picked %d times", idx, n)
	}
}

func neighbourMines(g Grid, x, y int) int {
	n := 0
	g.Neighbors(x, y, func(nx, ny int) {
		if g[nx][ny].IsMine() {
			n++
		}
	})
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
