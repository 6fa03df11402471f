package sim

// Pool is a fixed-size set of busy/free markers: bank tellers, parking slots,
// or the single server of a tandem station.
type Pool struct {
	busy  []bool
	count int
}

// NewPool creates a pool with size free members.
func NewPool(size int) *Pool {
	return &Pool{busy: make([]bool, size)}
}

// Acquire marks the lowest-indexed free member busy and returns its index.
// ok is false when every member is busy.
func (p *Pool) Acquire() (idx int, ok bool) {
	for i, b := range p.busy {
		if !b {
			p.busy[i] = true
			p.count++
			return i, true
		}
	}
	return NoStation, false
}

// Occupy marks member idx busy. It panics if idx is already busy.
func (p *Pool) Occupy(idx int) {
	if p.busy[idx] {
		panic("Pool.Occupy: member already busy")
	}
	p.busy[idx] = true
	p.count++
}

// Release frees member idx. It panics if idx is already free.
func (p *Pool) Release(idx int) {
	if !p.busy[idx] {
		panic("Pool.Release: member already free")
	}
	p.busy[idx] = false
	p.count--
}

// IsBusy reports whether member idx is busy.
func (p *Pool) IsBusy(idx int) bool {
	return p.busy[idx]
}

// Busy returns the number of busy members.
func (p *Pool) Busy() int {
	return p.count
}

// Size returns the pool capacity.
func (p *Pool) Size() int {
	return len(p.busy)
}

// Full reports whether no member is free.
func (p *Pool) Full() bool {
	return p.count == len(p.busy)
}
