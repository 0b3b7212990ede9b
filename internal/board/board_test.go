package board

import (
	"errors"
	"slices"
	"testing"
)

func seqPool(n int) []int {
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	return pool
}

func mustBoard(t *testing.T, grid int, pool []int, seed uint64) *Board {
	t.Helper()
	b, err := New(grid, pool, NewSeededSource(seed))
	if err != nil {
		t.Fatalf("New(%d) failed: %v", grid, err)
	}
	return b
}

// revealNow flips a tile up and finishes the animation.
func revealNow(t *testing.T, tile *Tile) {
	t.Helper()
	if !tile.Flip() {
		t.Fatalf("tile %d should be flippable", tile.Index())
	}
	tile.Update(1)
}

func TestNewRejects(t *testing.T) {
	rng := NewSeededSource(1)
	tests := []struct {
		name string
		grid int
		pool []int
		rng  Source
		want error
	}{
		{"odd grid", 3, seqPool(8), rng, ErrGridSize},
		{"zero grid", 0, seqPool(8), rng, ErrGridSize},
		{"negative grid", -4, seqPool(8), rng, ErrGridSize},
		{"empty pool", 4, nil, rng, ErrEmptyPool},
		{"nil rng", 4, seqPool(8), nil, ErrNoSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.grid, tt.pool, tt.rng)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, expected %v", err, tt.want)
			}
		})
	}
}

func TestPairingInvariant(t *testing.T) {
	for _, grid := range []int{2, 4, 6, 8} {
		for _, poolSize := range []int{1, 3, 8, 50} {
			b := mustBoard(t, grid, seqPool(poolSize), uint64(grid*100+poolSize))

			if b.Len() != grid*grid || b.TotalPairs() != grid*grid/2 {
				t.Fatalf("grid %d: len=%d pairs=%d", grid, b.Len(), b.TotalPairs())
			}

			counts := make(map[int]int)
			for _, tile := range b.Tiles() {
				counts[tile.CharacterID()]++
			}
			for id, c := range counts {
				if c%2 != 0 {
					t.Errorf("grid %d pool %d: symbol %d appears %d times", grid, poolSize, id, c)
				}
				want := 0
				for i := 0; i < b.TotalPairs(); i++ {
					if i%poolSize == id {
						want += 2
					}
				}
				if c != want {
					t.Errorf("grid %d pool %d: symbol %d appears %d times, expected %d", grid, poolSize, id, c, want)
				}
			}
		}
	}
}

func TestNewIsDeterministicPerSeed(t *testing.T) {
	ids := func(b *Board) []int {
		var out []int
		for _, tile := range b.Tiles() {
			out = append(out, tile.CharacterID())
		}
		return out
	}
	a := ids(mustBoard(t, 6, seqPool(18), 42))
	b := ids(mustBoard(t, 6, seqPool(18), 42))
	c := ids(mustBoard(t, 6, seqPool(18), 43))

	if !slices.Equal(a, b) {
		t.Error("same seed should deal the same board")
	}
	if slices.Equal(a, c) {
		t.Error("different seeds should deal different boards")
	}
}

func TestPositions(t *testing.T) {
	b := mustBoard(t, 4, seqPool(8), 1)

	if b.Pos(1, 2) != 6 || b.Pos(3, 3) != 15 {
		t.Errorf("Pos mapping wrong: %d %d", b.Pos(1, 2), b.Pos(3, 3))
	}
	if b.Pos(-1, 0) != -1 || b.Pos(0, 4) != -1 {
		t.Error("Pos off the board should be -1")
	}
	if b.TileAt(-1) != nil || b.TileAt(16) != nil {
		t.Error("TileAt off the board should be nil")
	}
	for pos := 0; pos < b.Len(); pos++ {
		if got := b.SlotOf(b.TileAt(pos)); got != pos {
			t.Errorf("SlotOf(TileAt(%d)) = %d", pos, got)
		}
	}

	other := mustBoard(t, 4, seqPool(8), 1)
	if b.SlotOf(other.TileAt(0)) != -1 {
		t.Error("SlotOf a foreign tile should be -1")
	}
	if b.SlotOf(nil) != -1 {
		t.Error("SlotOf(nil) should be -1")
	}
}

func TestShuffleUnmatched(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		b := mustBoard(t, 6, seqPool(18), seed)

		// Match the pairs of the first two symbols found in slot order.
		matchedSlots := make(map[int]*Tile)
		for _, target := range []int{b.TileAt(0).CharacterID(), b.TileAt(1).CharacterID()} {
			for pos, tile := range b.Tiles() {
				if tile.CharacterID() == target && !tile.Matched() {
					tile.MarkMatched()
					matchedSlots[pos] = tile
				}
			}
		}

		// Reveal a couple of unmatched tiles and start flipping another.
		var revealed []*Tile
		for _, tile := range b.Tiles() {
			if tile.Matched() {
				continue
			}
			if len(revealed) < 2 {
				revealNow(t, tile)
				revealed = append(revealed, tile)
			} else if len(revealed) == 2 {
				tile.Flip()
				revealed = append(revealed, tile)
				break
			}
		}

		before := unmatchedIDs(b)
		if !b.ShuffleUnmatched() {
			t.Fatal("shuffle with many unmatched tiles should happen")
		}

		if got := unmatchedIDs(b); !slices.Equal(got, before) {
			t.Errorf("seed %d: unmatched multiset changed: %v -> %v", seed, before, got)
		}
		for pos, tile := range matchedSlots {
			if b.TileAt(pos) != tile || !tile.Matched() || !tile.Revealed() {
				t.Errorf("seed %d: matched tile in slot %d moved or changed", seed, pos)
			}
		}
		for _, tile := range revealed {
			if tile.Revealed() || tile.Animating() || tile.FlipProgress() != 0 {
				t.Errorf("seed %d: tile %d should be hidden after reshuffle", seed, tile.Index())
			}
		}
		for pos := 0; pos < b.Len(); pos++ {
			tile := b.TileAt(pos)
			if b.SlotOf(tile) != pos {
				t.Errorf("seed %d: slot bookkeeping broken at %d", seed, pos)
			}
		}
		seen := make(map[int]bool)
		for _, tile := range b.Tiles() {
			if seen[tile.Index()] {
				t.Fatalf("seed %d: tile %d occupies two slots", seed, tile.Index())
			}
			seen[tile.Index()] = true
		}
	}
}

func unmatchedIDs(b *Board) []int {
	var out []int
	for _, tile := range b.Tiles() {
		if !tile.Matched() {
			out = append(out, tile.CharacterID())
		}
	}
	slices.Sort(out)
	return out
}

func TestShuffleUnmatchedNoop(t *testing.T) {
	b := mustBoard(t, 2, seqPool(2), 3)
	for _, tile := range b.Tiles() {
		tile.MarkMatched()
	}
	if b.ShuffleUnmatched() {
		t.Error("shuffle of a cleared board should be a no-op")
	}
	if !b.IsAllMatched() || b.MatchedPairs() != 2 {
		t.Errorf("cleared board: all=%v pairs=%d", b.IsAllMatched(), b.MatchedPairs())
	}
}

func TestHintFairness(t *testing.T) {
	hl := Highlight{Duration: 1.5, Intensity: 0.6}

	for seed := uint64(0); seed < 200; seed++ {
		b := mustBoard(t, 6, seqPool(int(seed%18)+1), seed)

		// Random partial progress: match a few pairs, reveal a single tile.
		rng := NewSeededSource(seed + 1000)
		for k := 0; k < int(seed%5); k++ {
			tile := b.TileAt(rng.IntN(b.Len()))
			if tile.Matched() {
				continue
			}
			for _, other := range b.Tiles() {
				if other != tile && !other.Matched() && other.CharacterID() == tile.CharacterID() {
					tile.MarkMatched()
					other.MarkMatched()
					break
				}
			}
		}
		if tile := b.TileAt(rng.IntN(b.Len())); tile.Selectable() {
			revealNow(t, tile)
		}

		before := make(map[int]bool)
		for pos, tile := range b.Tiles() {
			before[pos] = tile.Selectable()
		}

		slots, ok := b.TriggerHint(hl)
		if !ok {
			continue
		}

		pa, pb, d1, d2 := b.TileAt(slots[0]), b.TileAt(slots[1]), b.TileAt(slots[2]), b.TileAt(slots[3])
		if pa.CharacterID() != pb.CharacterID() {
			t.Errorf("seed %d: hinted pair does not match", seed)
		}
		if d1.CharacterID() == d2.CharacterID() {
			t.Errorf("seed %d: decoys form a pair", seed)
		}
		if d1.CharacterID() == pa.CharacterID() || d2.CharacterID() == pa.CharacterID() {
			t.Errorf("seed %d: decoy shares the hinted symbol", seed)
		}

		distinct := make(map[int]bool)
		for _, pos := range slots {
			distinct[pos] = true
			if !before[pos] {
				t.Errorf("seed %d: hinted slot %d was not a hidden candidate", seed, pos)
			}
			if rem, in := b.TileAt(pos).Highlight(); rem != 1.5 || in != 0.6 {
				t.Errorf("seed %d: slot %d highlight = %v/%v", seed, pos, rem, in)
			}
			if b.TileAt(pos).Revealed() {
				t.Errorf("seed %d: hint must not reveal tiles", seed)
			}
		}
		if len(distinct) != 4 {
			t.Errorf("seed %d: hint slots not distinct: %v", seed, slots)
		}
	}
}

func TestHintInfeasible(t *testing.T) {
	hl := Highlight{Duration: 1, Intensity: 1}

	t.Run("fewer than four candidates", func(t *testing.T) {
		b := mustBoard(t, 2, seqPool(2), 1)
		revealNow(t, b.TileAt(0))
		if _, ok := b.TriggerHint(hl); ok {
			t.Error("3 hidden tiles cannot host a hint")
		}
	})

	t.Run("no hidden pair", func(t *testing.T) {
		b := mustBoard(t, 4, seqPool(8), 2)
		seen := make(map[int]bool)
		for _, tile := range b.Tiles() {
			if !seen[tile.CharacterID()] {
				seen[tile.CharacterID()] = true
				revealNow(t, tile)
			}
		}
		if _, ok := b.TriggerHint(hl); ok {
			t.Error("singletons only cannot host a hint")
		}
	})

	t.Run("no decoys", func(t *testing.T) {
		b := mustBoard(t, 2, seqPool(1), 3)
		if _, ok := b.TriggerHint(hl); ok {
			t.Error("single-symbol board has no decoys")
		}
	})

	t.Run("decoys always pair up", func(t *testing.T) {
		// Two symbols only: every decoy shares the other symbol.
		b := mustBoard(t, 4, seqPool(2), 4)
		if _, ok := b.TriggerHint(hl); ok {
			t.Error("decoys of one symbol would reveal a pair")
		}
		for _, tile := range b.Tiles() {
			if rem, _ := tile.Highlight(); rem != 0 {
				t.Fatal("failed hint must not highlight anything")
			}
		}
	})
}

func TestTileFlipLifecycle(t *testing.T) {
	b, err := New(2, seqPool(2), NewSeededSource(9), WithFlipTime(0.3))
	if err != nil {
		t.Fatal(err)
	}
	tile := b.TileAt(0)

	if !tile.Flip() || !tile.Animating() || tile.Revealed() {
		t.Fatal("Flip should start an animation without revealing yet")
	}
	if tile.Flip() {
		t.Error("animating tile should not flip again")
	}
	b.Update(0.15)
	if tile.FlipProgress() < 0.49 || tile.FlipProgress() > 0.51 || !tile.Animating() {
		t.Errorf("half-way progress = %v", tile.FlipProgress())
	}
	b.Update(0.2)
	if !tile.Revealed() || tile.Animating() || tile.FlipProgress() != 1 {
		t.Error("tile should be revealed after the flip time")
	}

	if !tile.FlipBack() {
		t.Fatal("revealed tile should flip back")
	}
	b.Update(0.5)
	if tile.Revealed() || tile.Animating() {
		t.Error("tile should be hidden after flipping back")
	}
	if tile.FlipBack() {
		t.Error("hidden tile cannot flip back")
	}

	tile.MarkMatched()
	if !tile.Revealed() || tile.FlipBack() {
		t.Error("matched tile must stay revealed")
	}
	tile.HideInstant()
	if !tile.Revealed() {
		t.Error("HideInstant must not touch a matched tile")
	}
	if tile.Selectable() {
		t.Error("matched tile is not selectable")
	}
}

func TestHighlightDecays(t *testing.T) {
	b := mustBoard(t, 4, seqPool(8), 11)
	slots, ok := b.TriggerHint(Highlight{Duration: 1, Intensity: 0.5})
	if !ok {
		t.Fatal("fresh 4x4 board should host a hint")
	}
	b.Update(0.6)
	if rem, _ := b.TileAt(slots[0]).Highlight(); rem <= 0 {
		t.Error("highlight should still be active")
	}
	b.Update(0.6)
	if rem, in := b.TileAt(slots[0]).Highlight(); rem != 0 || in != 0 {
		t.Errorf("highlight should be over, got %v/%v", rem, in)
	}
}

func TestSourcesStayInRange(t *testing.T) {
	for _, src := range []Source{NewSeededSource(5), NewCryptoSource()} {
		for i := 0; i < 500; i++ {
			if v := src.IntN(7); v < 0 || v >= 7 {
				t.Fatalf("IntN(7) = %d", v)
			}
		}
	}
}
