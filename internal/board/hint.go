package board

// TriggerHint highlights a true hidden pair together with two decoys and
// returns their slots, pair first. The decoys never share a symbol with the
// pair or with each other, so the hint cannot give away a match by
// elimination.
//
// It returns false when no fair hint exists; nothing is highlighted then.
func (b *Board) TriggerHint(h Highlight) ([4]int, bool) {
	var none [4]int

	var candidates []int // slots
	for pos, idx := range b.slots {
		if b.tiles[idx].Selectable() {
			candidates = append(candidates, pos)
		}
	}
	if len(candidates) < 4 {
		return none, false
	}

	groups := make(map[int][]int)
	var order []int // symbols in first-seen order, for determinism
	for _, pos := range candidates {
		id := b.TileAt(pos).characterID
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], pos)
	}

	var pairable []int
	for _, id := range order {
		if len(groups[id]) >= 2 {
			pairable = append(pairable, id)
		}
	}
	if len(pairable) == 0 {
		return none, false
	}

	chosen := pairable[b.rng.IntN(len(pairable))]
	first, second := b.pickTwo(len(groups[chosen]))
	pairA, pairB := groups[chosen][first], groups[chosen][second]

	var decoys []int
	for _, pos := range candidates {
		if b.TileAt(pos).characterID != chosen {
			decoys = append(decoys, pos)
		}
	}
	if len(decoys) < 2 {
		return none, false
	}

	for attempt := 0; attempt < b.decoyAttempts; attempt++ {
		i, j := b.pickTwo(len(decoys))
		d1, d2 := decoys[i], decoys[j]
		if b.TileAt(d1).characterID == b.TileAt(d2).characterID {
			continue
		}

		slots := [4]int{pairA, pairB, d1, d2}
		for _, pos := range slots {
			t := b.TileAt(pos)
			t.highlight = h.Duration
			t.intensity = h.Intensity
		}
		return slots, true
	}
	return none, false
}

// pickTwo returns two distinct indices in [0, n); n must be at least 2.
func (b *Board) pickTwo(n int) (int, int) {
	i := b.rng.IntN(n)
	j := b.rng.IntN(n - 1)
	if j >= i {
		j++
	}
	return i, j
}
