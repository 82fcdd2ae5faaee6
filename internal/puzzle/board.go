// Package puzzle implements the sliding-tile board behind the unlock gate.
// A board is a permutation of 0..n*n-1 laid out row-major; the tile valued
// n*n-1 is the empty slot.
package puzzle

import "math/rand"

type Board struct {
	n     int
	tiles []int
}

// New returns a solved n x n board.
func New(n int) *Board {
	if n < 2 {
		n = 2
	}
	tiles := make([]int, n*n)
	for i := range tiles {
		tiles[i] = i
	}
	return &Board{n: n, tiles: tiles}
}

// NewShuffled returns a randomly permuted n x n board. The permutation is
// uniform over all arrangements, so (as in the original) solvability under
// single-tile slides is not guaranteed.
func NewShuffled(n int, rng *rand.Rand) *Board {
	b := New(n)
	b.shuffle(rng)
	return b
}

func (b *Board) shuffle(rng *rand.Rand) {
	rng.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
}

// Size returns the grid dimension n.
func (b *Board) Size() int { return b.n }

// Tiles returns a copy of the current layout.
func (b *Board) Tiles() []int {
	cp := make([]int, len(b.tiles))
	copy(cp, b.tiles)
	return cp
}

// emptyValue is the tile identifier of the empty slot.
func (b *Board) emptyValue() int { return b.n*b.n - 1 }

// Empty returns the cell index currently holding the empty slot.
func (b *Board) Empty() int {
	for i, v := range b.tiles {
		if v == b.emptyValue() {
			return i
		}
	}
	// Unreachable while the permutation invariant holds.
	return -1
}

// Move slides the tile at cell index into the empty slot. It reports whether
// the move was legal: the cell must be 4-adjacent to the empty cell. Moves on
// a solved board are ignored.
func (b *Board) Move(index int) bool {
	if b.Solved() || index < 0 || index >= len(b.tiles) {
		return false
	}

	empty := b.Empty()
	row, col := index/b.n, index%b.n
	emptyRow, emptyCol := empty/b.n, empty%b.n

	if abs(row-emptyRow)+abs(col-emptyCol) != 1 {
		return false
	}

	b.tiles[index], b.tiles[empty] = b.tiles[empty], b.tiles[index]
	return true
}

// Solved reports whether every tile sits at its home cell.
func (b *Board) Solved() bool {
	for i, v := range b.tiles {
		if v != i {
			return false
		}
	}
	return true
}

// Reset reshuffles the board in place. A solved board stays solved.
func (b *Board) Reset(rng *rand.Rand) {
	if b.Solved() {
		return
	}
	b.shuffle(rng)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
