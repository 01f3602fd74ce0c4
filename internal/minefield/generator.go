package minefield

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Rand is the random source used for mine placement.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// processRand draws from the process-level math/rand/v2 source.
type processRand struct{}

func (processRand) IntN(n int) int {
	return rand.IntN(n)
}

// NewSeededRand returns a deterministic source for reproducible boards.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// run is a maximal block of consecutive excluded indices.
type run struct {
	start, length int
}

// exclusionRuns returns the row-major indices of the in-bounds 3x3 block
// around (x, y), compressed into sorted runs.
func exclusionRuns(x, y, rows, cols int) []run {
	indices := make([]int, 0, 9)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			nx, ny := x+dx, y+dy
			if nx >= 0 && nx < rows && ny >= 0 && ny < cols {
				indices = append(indices, nx*cols+ny)
			}
		}
	}
	slices.Sort(indices)

	var runs []run
	for _, idx := range indices {
		if n := len(runs); n > 0 && runs[n-1].start+runs[n-1].length == idx {
			runs[n-1].length++
			continue
		}
		runs = append(runs, run{start: idx, length: 1})
	}
	return runs
}

// sampleIndices picks k distinct values from [0, n) uniformly, returned in
// ascending order. A sparse partial Fisher-Yates shuffle keeps only the
// swapped positions, so memory is O(k) regardless of n.
func sampleIndices(rng Rand, n, k int) []int {
	swapped := make(map[int]int, k)
	at := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}

	out := make([]int, k)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		out[i] = at(j)
		swapped[j] = at(i)
	}
	slices.Sort(out)
	return out
}

// skipGaps maps ascending indices of the compressed space (excluded cells
// removed) back into full-grid indices by stepping over every run that
// starts at or before the running position.
func skipGaps(samples []int, runs []run) []int {
	out := make([]int, len(samples))
	delta, r := 0, 0
	for i, s := range samples {
		for r < len(runs) && runs[r].start <= s+delta {
			delta += runs[r].length
			r++
		}
		out[i] = s + delta
	}
	return out
}

// layMines places mines uniformly at random outside the 3x3 block around
// (x, y) and updates adjacency counts. It returns the mine indices.
func layMines(g Grid, x, y, mines int, rng Rand) ([]int, error) {
	rows, cols := g.Rows(), g.Cols()
	runs := exclusionRuns(x, y, rows, cols)

	excluded := 0
	for _, r := range runs {
		excluded += r.length
	}
	available := rows*cols - excluded
	if mines > available {
		return nil, fmt.Errorf("%w: %d mines, %d free cells", ErrTooManyMines, mines, available)
	}

	positions := skipGaps(sampleIndices(rng, available, mines), runs)
	for _, idx := range positions {
		mx, my := idx/cols, idx%cols
		g[mx][my].value = MineValue
		g.Neighbors(mx, my, func(nx, ny int) {
			if !g[nx][ny].IsMine() {
				g[nx][ny].value++
			}
		})
	}
	return positions, nil
}
