package puzzle

import (
	"math/rand"
	"testing"
)

// requirePermutation checks the board invariant: tiles are a permutation of
// 0..n*n-1 with exactly one empty slot.
func requirePermutation(t *testing.T, b *Board) {
	t.Helper()
	n := b.Size()
	seen := make(map[int]bool, n*n)
	empties := 0
	for _, v := range b.Tiles() {
		if v < 0 || v >= n*n {
			t.Fatalf("tile value %d out of range for n=%d", v, n)
		}
		if seen[v] {
			t.Fatalf("duplicate tile value %d", v)
		}
		seen[v] = true
		if v == n*n-1 {
			empties++
		}
	}
	if empties != 1 {
		t.Fatalf("expected exactly one empty slot, got %d", empties)
	}
}

func TestShuffleInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{2, 3, 4} {
		for i := 0; i < 50; i++ {
			b := NewShuffled(n, rng)
			requirePermutation(t, b)
		}
	}
}

func TestMovePreservesInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	b := NewShuffled(3, rng)

	for i := 0; i < 200; i++ {
		b.Move(rng.Intn(9))
		requirePermutation(t, b)
	}
}

func TestMoveLegality(t *testing.T) {
	// Fixed 3x3 layout with the empty slot (8) in the center:
	//   0 1 2
	//   3 8 5
	//   6 7 4
	b := &Board{n: 3, tiles: []int{0, 1, 2, 3, 8, 5, 6, 7, 4}}

	tests := []struct {
		name  string
		index int
		legal bool
	}{
		{name: "above empty", index: 1, legal: true},
		{name: "left of empty", index: 3, legal: true},
		{name: "right of empty", index: 5, legal: true},
		{name: "below empty", index: 7, legal: true},
		{name: "diagonal", index: 0, legal: false},
		{name: "far corner", index: 8, legal: false},
		{name: "empty cell itself", index: 4, legal: false},
		{name: "out of range", index: 9, legal: false},
		{name: "negative", index: -1, legal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := &Board{n: 3, tiles: append([]int(nil), b.tiles...)}
			if got := cp.Move(tt.index); got != tt.legal {
				t.Errorf("Move(%d) = %v, want %v", tt.index, got, tt.legal)
			}
			requirePermutation(t, cp)
		})
	}
}

func TestMoveSwapsWithEmpty(t *testing.T) {
	b := &Board{n: 2, tiles: []int{0, 1, 2, 3}} // solved; empty = 3 at cell 3
	// A solved board ignores moves.
	if b.Move(1) {
		t.Fatal("move on solved board should be ignored")
	}

	b = &Board{n: 2, tiles: []int{0, 1, 3, 2}} // empty at cell 2
	if !b.Move(0) {
		t.Fatal("cell 0 is above the empty cell, move should be legal")
	}
	want := []int{3, 1, 0, 2}
	for i, v := range b.Tiles() {
		if v != want[i] {
			t.Fatalf("tiles = %v, want %v", b.Tiles(), want)
		}
	}
}

func TestSolved(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5} {
		b := New(n)
		if !b.Solved() {
			t.Errorf("identity board n=%d should be solved", n)
		}

		// Any single transposition of two tiles breaks it.
		b.tiles[0], b.tiles[n*n-2] = b.tiles[n*n-2], b.tiles[0]
		if b.Solved() {
			t.Errorf("transposed board n=%d should not be solved", n)
		}
	}
}

func TestSolveByMoves(t *testing.T) {
	// One slide away from solved: empty at cell 7, tile 7 at cell 8.
	b := &Board{n: 3, tiles: []int{0, 1, 2, 3, 4, 5, 6, 8, 7}}
	if b.Solved() {
		t.Fatal("board should start unsolved")
	}
	if !b.Move(8) {
		t.Fatal("sliding the last tile should be legal")
	}
	if !b.Solved() {
		t.Fatalf("board should be solved, got %v", b.Tiles())
	}
}

func TestResetReshuffles(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := &Board{n: 3, tiles: []int{0, 1, 2, 3, 4, 5, 6, 8, 7}}

	b.Reset(rng)
	requirePermutation(t, b)

	solved := New(3)
	solved.Reset(rng)
	if !solved.Solved() {
		t.Error("reset must not disturb a solved board")
	}
}
