package minefield

import "github.com/gammazero/deque"

type pos struct {
	x, y int
}

// seeds returns the cells a click on (x, y) uncovers first: the cell itself
// when covered, or every Blank neighbour of a discovered cell whose count
// matches its flagged neighbours.
func (b *Board) seeds(x, y int) []pos {
	c := b.grid[x][y]
	switch c.state {
	case StateBlank:
		return []pos{{x, y}}
	case StateDiscovered:
		if b.grid.CountNeighbors(x, y, StateFlagged) != int(c.value) {
			return nil
		}
		var out []pos
		b.grid.Neighbors(x, y, func(nx, ny int) {
			if b.grid[nx][ny].state == StateBlank {
				out = append(out, pos{nx, ny})
			}
		})
		return out
	default:
		return nil
	}
}

// cascade uncovers the seeds breadth first, spreading through cells with
// no adjacent mines. Hitting a mine loses the game and stops at once; the
// rest of the queue is left untouched.
func (b *Board) cascade(seeds []pos) {
	var queue deque.Deque[pos]
	visited := make(map[pos]struct{}, len(seeds))
	for _, p := range seeds {
		queue.PushBack(p)
		visited[p] = struct{}{}
	}

	for queue.Len() > 0 {
		p := queue.PopFront()
		c := &b.grid[p.x][p.y]

		if c.IsMine() {
			c.state = StateExploded
			b.setState(Lost)
			return
		}

		if c.state == StateBlank {
			b.discovered++
		}
		if !c.Reveal() {
			continue
		}

		b.grid.Neighbors(p.x, p.y, func(nx, ny int) {
			n := pos{nx, ny}
			if _, seen := visited[n]; seen || b.grid[nx][ny].state != StateBlank {
				return
			}
			visited[n] = struct{}{}
			queue.PushBack(n)
		})
	}

	b.checkWin()
}

func (b *Board) checkWin() {
	if b.discovered+b.mines == b.rows*b.cols {
		b.setState(Won)
	}
}
