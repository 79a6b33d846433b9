package testing

// ManualClock is a deterministic time source for tests. Time only moves
// when a test advances it.
type ManualClock struct {
	now uint64 // unix seconds
}

// NewManualClock creates a clock at the given time.
func NewManualClock(start uint64) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current time.
func (c *ManualClock) Now() uint64 { return c.now }

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d uint64) { c.now += d }

// Set jumps the clock to the given time.
func (c *ManualClock) Set(t uint64) { c.now = t }
