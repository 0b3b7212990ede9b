package reward

import "testing"

func TestTimeBonus(t *testing.T) {
	tests := []struct {
		secs float64
		want int
	}{
		{0, 0},
		{-5, 0},
		{1.9, 0},
		{2, 1},
		{20, 10},
		{21.7, 10},
		{119.99, 59},
	}
	for _, tt := range tests {
		if got := TimeBonus(tt.secs); got != tt.want {
			t.Errorf("TimeBonus(%v) = %d, expected %d", tt.secs, got, tt.want)
		}
	}
}

func TestVictoryReward(t *testing.T) {
	tests := []struct {
		name                         string
		pairValue, pairs             int
		secs, mult                   float64
		pairsReward, bonus, sub, tot int
		multBonus                    int
	}{
		{"example", 5, 8, 20, 1.5, 40, 10, 50, 75, 25},
		{"easy tier", 1, 8, 13, 1.0, 8, 6, 14, 14, 0},
		{"hard tier", 20, 32, 61, 2.0, 640, 30, 670, 1340, 670},
		{"floor of fraction", 1, 3, 0, 1.5, 3, 0, 3, 4, 1},
		{"decimal multiplier", 1, 10, 0, 1.1, 10, 0, 10, 11, 1},
		{"multiplier below one", 2, 4, 4, 0.5, 8, 2, 10, 10, 0},
		{"no time left", 4, 2, -3, 1.5, 8, 0, 8, 12, 4},
		{"negative pairs", 4, -2, 10, 1.0, 0, 5, 5, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := VictoryReward(tt.pairValue, tt.pairs, tt.secs, tt.mult)
			if b.PairsReward != tt.pairsReward || b.TimeBonus != tt.bonus || b.Subtotal != tt.sub {
				t.Errorf("got pairs=%d bonus=%d subtotal=%d", b.PairsReward, b.TimeBonus, b.Subtotal)
			}
			if b.Total != tt.tot || b.MultiplierBonus != tt.multBonus {
				t.Errorf("got total=%d multBonus=%d, expected %d/%d", b.Total, b.MultiplierBonus, tt.tot, tt.multBonus)
			}
			if b.Total != b.Subtotal+b.MultiplierBonus {
				t.Error("total must equal subtotal plus multiplier bonus")
			}
			if b.Multiplier < 1 {
				t.Errorf("multiplier %v below 1", b.Multiplier)
			}
		})
	}
}

func TestDoubledExtra(t *testing.T) {
	if DoubledExtra(75) != 75 || DoubledExtra(0) != 0 || DoubledExtra(-3) != 0 {
		t.Error("DoubledExtra should mirror positive totals only")
	}
	b := VictoryReward(5, 8, 20, 1.5)
	if b.DoubledTotal() != 150 {
		t.Errorf("DoubledTotal() = %d, expected 150", b.DoubledTotal())
	}
}

func TestRunningTotal(t *testing.T) {
	if RunningTotal(6, 4) != 24 || RunningTotal(6, -1) != 0 {
		t.Error("unexpected running total")
	}
}
