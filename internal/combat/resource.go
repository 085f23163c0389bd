package combat

import "stagesim/internal/notify"

// accEpsilon absorbs float drift so that ten 0.1s ticks at 1/s emit a unit.
const accEpsilon = 1e-9

// Spend is published after a successful TrySpend.
type Spend struct {
	Amount    int
	Remaining int
}

// ResourcePool is the shared, capped, time-regenerating cost budget. Regen is
// collected in a fractional accumulator and only whole units are emitted, so
// the level stays an integer whatever the tick size.
type ResourcePool struct {
	current int
	max     int
	start   int
	regen   float64
	acc     float64
	gained  int
	spent   int

	changed notify.Hub[int]
	spends  notify.Hub[Spend]
}

// NewResourcePool clamps start into [0, max]. A negative max or regen is
// treated as zero.
func NewResourcePool(max int, regenPerSecond float64, start int) *ResourcePool {
	if max < 0 {
		max = 0
	}
	if regenPerSecond < 0 {
		regenPerSecond = 0
	}
	start = clamp(start, 0, max)
	return &ResourcePool{current: start, max: max, start: start, regen: regenPerSecond}
}

func (p *ResourcePool) Current() int      { return p.current }
func (p *ResourcePool) Max() int          { return p.max }
func (p *ResourcePool) Regen() float64    { return p.regen }
func (p *ResourcePool) Gained() int       { return p.gained }
func (p *ResourcePool) Spent() int        { return p.spent }
func (p *ResourcePool) Fraction() float64 { return p.acc }

// OnChange is called with the new level after every mutation.
func (p *ResourcePool) OnChange(fn func(current int)) { p.changed.Subscribe(fn) }

// OnSpend is called after every successful spend.
func (p *ResourcePool) OnSpend(fn func(Spend)) { p.spends.Subscribe(fn) }

// Tick advances regeneration by dt seconds. Nothing accumulates while the
// pool is full.
func (p *ResourcePool) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	if p.current >= p.max {
		p.acc = 0
		return
	}
	p.acc += p.regen * dt
	emitted := 0
	for p.acc >= 1-accEpsilon && p.current < p.max {
		p.acc--
		if p.acc < 0 {
			p.acc = 0
		}
		p.current++
		emitted++
	}
	if p.current >= p.max {
		p.acc = 0
	}
	if emitted > 0 {
		p.gained += emitted
		p.changed.Publish(p.current)
	}
}

// TrySpend deducts amount if the pool holds at least that much.
func (p *ResourcePool) TrySpend(amount int) bool {
	if amount <= 0 || p.current < amount {
		return false
	}
	p.current -= amount
	p.spent += amount
	p.changed.Publish(p.current)
	p.spends.Publish(Spend{Amount: amount, Remaining: p.current})
	return true
}

// Add grants amount, clamped to max.
func (p *ResourcePool) Add(amount int) {
	if amount <= 0 {
		return
	}
	next := clamp(p.current+amount, 0, p.max)
	p.gained += next - p.current
	p.current = next
	p.changed.Publish(p.current)
}

func (p *ResourcePool) Fill() {
	p.gained += p.max - p.current
	p.current = p.max
	p.acc = 0
	p.changed.Publish(p.current)
}

// Reset restores the starting level and zeroes the counters.
func (p *ResourcePool) Reset() {
	p.current = p.start
	p.acc = 0
	p.gained = 0
	p.spent = 0
	p.changed.Publish(p.current)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
