package folio

// Debouncer coalesces bursts of Trigger calls into one call of its function
// after a quiet period. Time is advanced by Update with frame time, so it
// runs on the frame loop with no timers or goroutines.
type Debouncer struct {
	delay   float64
	fn      func()
	pending bool
	wait    float64
}

// NewDebouncer creates a debouncer that runs fn once delay seconds have
// passed without another Trigger.
func NewDebouncer(delay float64, fn func()) *Debouncer {
	if fn == nil {
		panic("folio: cannot debounce nil function")
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	d.pending = true
	d.wait = d.delay
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Cancel drops a scheduled call.
func (d *Debouncer) Cancel() {
	d.pending = false
	d.wait = 0
}

// Flush runs a scheduled call now. It reports whether one ran.
func (d *Debouncer) Flush() bool {
	if !d.pending {
		return false
	}
	d.pending = false
	d.fn()
	return true
}

// Update advances the quiet period by dt seconds and runs the function when
// it expires.
func (d *Debouncer) Update(dt float64) {
	if !d.pending {
		return
	}
	d.wait -= dt
	if d.wait <= 0 {
		d.Flush()
	}
}
