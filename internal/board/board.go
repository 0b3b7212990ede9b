// Package board owns the playfield: dealing pairs, reshuffling unmatched
// tiles mid-game and picking fair hints.
//
// Positions are slot indices in row-major order, 0..GridSize²-1. Every tile
// occupies exactly one slot; a reshuffle moves tiles between slots but never
// changes a tile's Index.
package board

import (
	"errors"
	"fmt"
)

// Defaults for board options.
const (
	DefaultFlipTime      = 0.3
	DefaultDecoyAttempts = 40
)

var (
	// ErrGridSize is returned for a non-positive or odd grid size.
	ErrGridSize = errors.New("board: grid size must be even and positive")
	// ErrEmptyPool is returned when no symbols are available.
	ErrEmptyPool = errors.New("board: symbol pool is empty")
	// ErrNoSource is returned when no random source is given.
	ErrNoSource = errors.New("board: random source is nil")
)

// Highlight carries the presentation parameters of a hint.
type Highlight struct {
	Duration  float64
	Intensity float64
}

// Option configures a Board.
type Option func(*Board)

// WithFlipTime sets the seconds a flip takes.
func WithFlipTime(seconds float64) Option {
	return func(b *Board) { b.flipTime = seconds }
}

// WithDecoyAttempts bounds the retries when picking hint decoys.
func WithDecoyAttempts(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.decoyAttempts = n
		}
	}
}

// Board is a square grid of paired tiles.
type Board struct {
	size  int
	tiles []*Tile // by Index
	slots []int   // slot -> tile index
	where []int   // tile index -> slot
	rng   Source

	flipTime      float64
	decoyAttempts int
}

// New deals a board. Symbol pool[i % len(pool)] is placed twice for each
// pair i, so every symbol has an exact mate even when the pool is smaller
// than the pair count; the full sequence is then shuffled.
func New(gridSize int, pool []int, rng Source, opts ...Option) (*Board, error) {
	if gridSize <= 0 || gridSize%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrGridSize, gridSize)
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if rng == nil {
		return nil, ErrNoSource
	}

	b := &Board{
		size:          gridSize,
		rng:           rng,
		flipTime:      DefaultFlipTime,
		decoyAttempts: DefaultDecoyAttempts,
	}
	for _, opt := range opts {
		opt(b)
	}

	n := gridSize * gridSize
	ids := make([]int, n)
	for i := 0; i < n/2; i++ {
		id := pool[i%len(pool)]
		ids[2*i] = id
		ids[2*i+1] = id
	}
	b.fisherYates(ids)

	b.tiles = make([]*Tile, n)
	b.slots = make([]int, n)
	b.where = make([]int, n)
	for i, id := range ids {
		b.tiles[i] = &Tile{characterID: id, index: i, flipTime: b.flipTime}
		b.slots[i] = i
		b.where[i] = i
	}
	return b, nil
}

// fisherYates shuffles s in place.
func (b *Board) fisherYates(s []int) {
	for i := len(s) - 1; i > 0; i-- {
		j := b.rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// GridSize returns the tiles per side.
func (b *Board) GridSize() int { return b.size }

// Len returns the number of tiles.
func (b *Board) Len() int { return len(b.tiles) }

// TotalPairs returns the number of pairs dealt.
func (b *Board) TotalPairs() int { return len(b.tiles) / 2 }

// Pos converts a row and column to a slot, or -1 when off the board.
func (b *Board) Pos(row, col int) int {
	if row < 0 || col < 0 || row >= b.size || col >= b.size {
		return -1
	}
	return row*b.size + col
}

// TileAt returns the tile in slot pos, or nil when pos is off the board.
func (b *Board) TileAt(pos int) *Tile {
	if pos < 0 || pos >= len(b.slots) {
		return nil
	}
	return b.tiles[b.slots[pos]]
}

// SlotOf returns the slot currently holding t, or -1 if t is not on this board.
func (b *Board) SlotOf(t *Tile) int {
	if t == nil || t.index < 0 || t.index >= len(b.tiles) || b.tiles[t.index] != t {
		return -1
	}
	return b.where[t.index]
}

// Tiles returns the tiles in slot order.
func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, len(b.slots))
	for pos, idx := range b.slots {
		out[pos] = b.tiles[idx]
	}
	return out
}

// IsAllMatched reports whether every tile has been matched.
func (b *Board) IsAllMatched() bool {
	for _, t := range b.tiles {
		if !t.matched {
			return false
		}
	}
	return true
}

// MatchedPairs returns the number of pairs found so far.
func (b *Board) MatchedPairs() int {
	n := 0
	for _, t := range b.tiles {
		if t.matched {
			n++
		}
	}
	return n / 2
}

// ShuffleUnmatched permutes the unmatched tiles among their slots and turns
// any of them that were face up back down. Matched tiles stay put.
// It returns false when there is nothing to permute.
func (b *Board) ShuffleUnmatched() bool {
	var free []int // slots holding unmatched tiles
	for pos, idx := range b.slots {
		if !b.tiles[idx].matched {
			free = append(free, pos)
		}
	}
	if len(free) <= 1 {
		return false
	}

	moved := make([]int, len(free))
	for i, pos := range free {
		moved[i] = b.slots[pos]
	}
	b.fisherYates(moved)

	for i, pos := range free {
		idx := moved[i]
		b.slots[pos] = idx
		b.where[idx] = pos
		t := b.tiles[idx]
		if t.revealed || t.Animating() {
			t.HideInstant()
		}
	}
	return true
}

// Update advances flip animations and hint highlights.
func (b *Board) Update(dt float64) {
	for _, t := range b.tiles {
		t.Update(dt)
	}
}
