package autoscroll

import "time"

// PointerMoveThreshold is how far the pointer must travel, in either
// axis, before the movement counts as a real interaction. Sub-threshold
// jitter never resets the idle timer.
const PointerMoveThreshold = 2.0

// Config tunes the driver.
type Config struct {
	Enabled      bool
	Speed        float64 // pixels advanced per tick
	IdleDelay    time.Duration
	TickInterval time.Duration
}

// DefaultConfig returns the stock timing (5s idle, 50ms tick, 1px/tick).
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		Speed:        1,
		IdleDelay:    5 * time.Second,
		TickInterval: 50 * time.Millisecond,
	}
}

// AdvanceFunc moves the viewport down by delta pixels and reports
// whether the bottom of the content has been reached.
type AdvanceFunc func(delta float64) (atBottom bool)

// Driver scrolls the wall on the viewer's behalf after a stretch of
// inactivity. It owns no timers; the host calls Tick on its own cadence
// and reports interactions as they happen. Scrolling the driver itself
// causes never counts as an interaction.
type Driver struct {
	cfg     Config
	advance AdvanceFunc

	active     bool
	parked     bool
	idleSince  time.Time
	hasIdle    bool
	nextTick   time.Time
	pointerX   float64
	pointerY   float64
	hasPointer bool
}

// NewDriver builds a driver that advances the viewport through fn.
func NewDriver(cfg Config, fn AdvanceFunc) *Driver {
	if cfg.IdleDelay <= 0 {
		cfg.IdleDelay = 5 * time.Second
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 50 * time.Millisecond
	}
	if cfg.Speed <= 0 {
		cfg.Speed = 1
	}
	return &Driver{cfg: cfg, advance: fn}
}

// Active reports whether the driver is currently scrolling.
func (d *Driver) Active() bool {
	return d.active
}

// Enabled reports the feature switch.
func (d *Driver) Enabled() bool {
	return d.cfg.Enabled
}

// SetEnabled flips the feature. Disabling clears all driver state so a
// later enable starts a fresh idle countdown.
func (d *Driver) SetEnabled(enabled bool, now time.Time) {
	d.cfg.Enabled = enabled
	d.active = false
	d.parked = false
	d.hasIdle = false
	d.hasPointer = false
	if enabled {
		d.idleSince = now
		d.hasIdle = true
	}
}

// NoteInteraction records a qualifying user interaction: wheel, touch,
// click or key press. It stops any active auto-scroll and restarts the
// idle countdown.
func (d *Driver) NoteInteraction(now time.Time) {
	if !d.cfg.Enabled {
		return
	}
	d.active = false
	d.parked = false
	d.idleSince = now
	d.hasIdle = true
}

// NotePointerMove records a pointer position. Movement below
// PointerMoveThreshold from the last seen position is ignored.
func (d *Driver) NotePointerMove(x, y float64, now time.Time) {
	if !d.cfg.Enabled {
		return
	}
	if d.hasPointer {
		dx := x - d.pointerX
		dy := y - d.pointerY
		if dx < PointerMoveThreshold && dx > -PointerMoveThreshold &&
			dy < PointerMoveThreshold && dy > -PointerMoveThreshold {
			return
		}
	}
	d.pointerX = x
	d.pointerY = y
	d.hasPointer = true
	d.NoteInteraction(now)
}

// Tick drives the idle countdown and, once active, advances the
// viewport at the configured cadence. It returns true when the viewport
// moved this tick.
func (d *Driver) Tick(now time.Time) bool {
	if !d.cfg.Enabled {
		return false
	}

	if !d.active {
		if d.parked {
			return false
		}
		if !d.hasIdle {
			d.idleSince = now
			d.hasIdle = true
			return false
		}
		if now.Sub(d.idleSince) < d.cfg.IdleDelay {
			return false
		}
		d.active = true
		d.nextTick = now
	}

	if now.Before(d.nextTick) {
		return false
	}
	d.nextTick = now.Add(d.cfg.TickInterval)

	if d.advance == nil {
		return false
	}
	if atBottom := d.advance(d.cfg.Speed); atBottom {
		// Bottom reached: stay parked until the viewer interacts again.
		d.active = false
		d.parked = true
		d.hasIdle = false
		return true
	}
	return true
}
