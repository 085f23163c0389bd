package combat

import (
	"reflect"
	"testing"
)

func TestResourcePoolWholeSecondTicks(t *testing.T) {
	p := NewResourcePool(10, 1, 0)
	for i := 0; i < 3; i++ {
		p.Tick(1.0)
	}
	if p.Current() != 3 {
		t.Fatalf("current = %d, want 3", p.Current())
	}
	if p.Gained() != 3 {
		t.Fatalf("gained = %d, want 3", p.Gained())
	}
}

func TestResourcePoolFractionalTicks(t *testing.T) {
	p := NewResourcePool(10, 1, 0)
	for i := 0; i < 9; i++ {
		p.Tick(0.1)
	}
	if p.Current() != 0 {
		t.Fatalf("current after 0.9s = %d, want 0", p.Current())
	}
	p.Tick(0.1)
	if p.Current() != 1 {
		t.Fatalf("current after 1.0s = %d, want 1", p.Current())
	}
}

func TestResourcePoolArbitraryStepsStayInRange(t *testing.T) {
	p := NewResourcePool(1000, 1.5, 0)
	steps := []float64{0.016, 0.5, 0.033, 2.0, 0.25}
	for i := 0; i < 20; i++ {
		for _, dt := range steps {
			p.Tick(dt)
			if p.Current() < 0 || p.Current() > p.Max() {
				t.Fatalf("current %d out of [0,%d]", p.Current(), p.Max())
			}
		}
	}
	// 20 * 2.799s * 1.5/s = 83.97
	if p.Current() != 83 {
		t.Fatalf("current = %d, want 83", p.Current())
	}
}

func TestResourcePoolCapped(t *testing.T) {
	p := NewResourcePool(5, 2, 4)
	p.Tick(3)
	if p.Current() != 5 {
		t.Fatalf("current = %d, want cap 5", p.Current())
	}
	if p.Fraction() != 0 {
		t.Fatalf("accumulator = %v, want 0 at cap", p.Fraction())
	}
	p.Tick(10)
	if !p.TrySpend(5) {
		t.Fatal("spend at cap failed")
	}
	p.Tick(0.4)
	if p.Current() != 0 {
		t.Fatalf("regen banked while capped: current = %d", p.Current())
	}
}

func TestResourcePoolTrySpend(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		ok     bool
		left   int
	}{
		{"zero", 0, false, 4},
		{"negative", -2, false, 4},
		{"too much", 5, false, 4},
		{"exact", 4, true, 0},
		{"partial", 3, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewResourcePool(10, 0, 4)
			if got := p.TrySpend(tt.amount); got != tt.ok {
				t.Fatalf("TrySpend(%d) = %v, want %v", tt.amount, got, tt.ok)
			}
			if p.Current() != tt.left {
				t.Fatalf("current = %d, want %d", p.Current(), tt.left)
			}
		})
	}
}

func TestResourcePoolNotifications(t *testing.T) {
	p := NewResourcePool(6, 1, 5)
	var levels []int
	var spends []Spend
	p.OnChange(func(v int) { levels = append(levels, v) })
	p.OnSpend(func(s Spend) { spends = append(spends, s) })

	p.TrySpend(3)
	p.Add(10)
	p.TrySpend(9)
	p.Fill()

	if want := []int{2, 6, 6}; !reflect.DeepEqual(levels, want) {
		t.Fatalf("levels = %v, want %v", levels, want)
	}
	if want := []Spend{{Amount: 3, Remaining: 2}}; !reflect.DeepEqual(spends, want) {
		t.Fatalf("spends = %v, want %v", spends, want)
	}
	if p.Spent() != 3 {
		t.Fatalf("spent = %d, want 3", p.Spent())
	}
}

func TestResourcePoolReset(t *testing.T) {
	p := NewResourcePool(10, 1, 2)
	p.Tick(3.5)
	p.TrySpend(4)
	p.Reset()
	if p.Current() != 2 || p.Gained() != 0 || p.Spent() != 0 || p.Fraction() != 0 {
		t.Fatalf("reset state: current=%d gained=%d spent=%d acc=%v", p.Current(), p.Gained(), p.Spent(), p.Fraction())
	}
}

func TestNewResourcePoolClampsStart(t *testing.T) {
	if p := NewResourcePool(5, 1, 9); p.Current() != 5 {
		t.Fatalf("start above max: current = %d", p.Current())
	}
	if p := NewResourcePool(5, 1, -3); p.Current() != 0 {
		t.Fatalf("negative start: current = %d", p.Current())
	}
}
