package board

// Tile is one playfield cell. Its symbol and index never change; its
// reveal state is driven by the session and its slot by the board.
//
// A matched tile is always revealed and never flips back.
type Tile struct {
	characterID int
	index       int

	revealed bool
	matched  bool

	// Flip animation: progress runs from 0 (back) to 1 (front).
	progress  float64
	direction float64 // +1 flipping up, -1 flipping down, 0 idle
	flipTime  float64

	// Hint highlight, opaque to the board.
	highlight float64
	intensity float64
}

// CharacterID returns the symbol identifier.
func (t *Tile) CharacterID() int { return t.characterID }

// Index returns the tile's position in the dealt sequence.
func (t *Tile) Index() int { return t.index }

// Revealed reports whether the front is showing.
func (t *Tile) Revealed() bool { return t.revealed }

// Matched reports whether the tile is part of a found pair.
func (t *Tile) Matched() bool { return t.matched }

// Animating reports whether a flip is in flight.
func (t *Tile) Animating() bool { return t.direction != 0 }

// FlipProgress returns 0 for the back, 1 for the front.
func (t *Tile) FlipProgress() float64 { return t.progress }

// Highlight returns the remaining hint highlight time and its intensity.
func (t *Tile) Highlight() (remaining, intensity float64) {
	return t.highlight, t.intensity
}

// Selectable reports whether the player may flip this tile now.
func (t *Tile) Selectable() bool {
	return !t.matched && !t.revealed && !t.Animating()
}

// Flip starts turning a hidden tile face up.
func (t *Tile) Flip() bool {
	if !t.Selectable() {
		return false
	}
	t.direction = 1
	return true
}

// FlipBack starts turning a revealed (or revealing) tile face down.
func (t *Tile) FlipBack() bool {
	if t.matched || (!t.revealed && t.direction <= 0) {
		return false
	}
	t.direction = -1
	return true
}

// MarkMatched locks the tile face up.
func (t *Tile) MarkMatched() {
	t.matched = true
	t.revealed = true
	t.progress = 1
	t.direction = 0
}

// HideInstant turns an unmatched tile face down without animation.
func (t *Tile) HideInstant() {
	if t.matched {
		return
	}
	t.revealed = false
	t.progress = 0
	t.direction = 0
}

// Update advances the flip and decays the highlight.
func (t *Tile) Update(dt float64) {
	if t.direction != 0 {
		step := 1.0 // no flip time: finish in one update
		if t.flipTime > 0 {
			step = dt / t.flipTime
		}
		t.progress += t.direction * step
		if t.progress >= 1 {
			t.progress = 1
			t.direction = 0
			t.revealed = true
		} else if t.progress <= 0 {
			t.progress = 0
			t.direction = 0
			t.revealed = false
		}
	}

	if t.highlight > 0 {
		t.highlight -= dt
		if t.highlight <= 0 {
			t.highlight = 0
			t.intensity = 0
		}
	}
}
