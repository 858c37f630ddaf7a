package domain

// FreezeTimer is the countdown attached to a stone chosen for freezing.
// Ticks are counted by the game's freeze scheduler; ScheduledAt is the tick
// at which the countdown started.
type FreezeTimer struct {
	InitDelay       int
	OriginalPersist int
	ScheduledAt     uint64
}

// FreezeAt is the tick at which the stone becomes frozen.
func (t FreezeTimer) FreezeAt() uint64 {
	return t.ScheduledAt + uint64(t.InitDelay)
}

// ThawAt is the tick at which the stone is live again.
func (t FreezeTimer) ThawAt() uint64 {
	return t.FreezeAt() + uint64(t.OriginalPersist)
}

// Left reports the seconds remaining in the current phase: the delay before
// freezing, then the time left frozen.
func (t FreezeTimer) Left(now uint64) int {
	if now < t.FreezeAt() {
		return int(t.FreezeAt() - now)
	}
	if now < t.ThawAt() {
		return int(t.ThawAt() - now)
	}
	return 0
}

type Cell struct {
	color     Color
	frozen    bool
	available bool
	timer     *FreezeTimer
}

func newCell() Cell {
	return Cell{available: true}
}

func (c *Cell) IsEmpty() bool {
	return c.color == Empty
}

// Color reports what the cell shows: the frozen variant while frozen.
// The second value is false for an empty cell.
func (c *Cell) Color() (Color, bool) {
	if c.color == Empty {
		return Empty, false
	}
	if c.frozen {
		return c.color.Frozen(), true
	}
	return c.color, true
}

// BaseColor ignores the freeze state.
func (c *Cell) BaseColor() Color {
	return c.color
}

func (c *Cell) IsFrozen() bool {
	return c.frozen
}

// AvailableForFreeze is false while a countdown is attached.
func (c *Cell) AvailableForFreeze() bool {
	return c.available
}

func (c *Cell) Timer() (FreezeTimer, bool) {
	if c.timer == nil {
		return FreezeTimer{}, false
	}
	return *c.timer, true
}

func (c *Cell) setColor(color Color) {
	c.color = color.Base()
	if c.color == Empty {
		c.clearFreeze()
	}
}

// AttachTimer marks the stone as scheduled for freezing.
func (c *Cell) AttachTimer(t FreezeTimer) {
	if c.color == Empty {
		return
	}
	c.timer = &t
	c.available = false
}

// Freeze makes the stone immune to flipping.
func (c *Cell) Freeze() {
	if c.color == Empty {
		return
	}
	c.frozen = true
	c.available = false
}

// Thaw ends the freeze and releases the stone for a later freeze.
func (c *Cell) Thaw() {
	c.clearFreeze()
}

func (c *Cell) clearFreeze() {
	c.frozen = false
	c.available = true
	c.timer = nil
}

// Clone is a deep copy, the timer included.
func (c Cell) Clone() Cell {
	if c.timer != nil {
		t := *c.timer
		c.timer = &t
	}
	return c
}

// Equal compares the visible state and the timer.
func (c *Cell) Equal(o *Cell) bool {
	if c.color != o.color || c.frozen != o.frozen || c.available != o.available {
		return false
	}
	if (c.timer == nil) != (o.timer == nil) {
		return false
	}
	return c.timer == nil || *c.timer == *o.timer
}
