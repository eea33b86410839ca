package folio

// TickerHandle identifies a callback registered with a Ticker.
type TickerHandle uint32

type tickerEntry struct {
	id TickerHandle
	fn func(dt float64)
}

// Ticker is a per-frame callback list. Scene owns one and advances it at the
// start of every Update; owners of long-lived animations register here and
// must Remove their callbacks on teardown.
//
// Callbacks may add or remove entries while running. Entries added during an
// Update first run on the next one; removed entries never run again.
type Ticker struct {
	entries []tickerEntry
	nextID  TickerHandle
	dirty   bool
}

// Add registers fn and returns a handle for Remove.
func (t *Ticker) Add(fn func(dt float64)) TickerHandle {
	if fn == nil {
		panic("folio: cannot add nil ticker callback")
	}
	t.nextID++
	t.entries = append(t.entries, tickerEntry{id: t.nextID, fn: fn})
	return t.nextID
}

// Remove unregisters the callback. It reports whether the handle was live.
func (t *Ticker) Remove(h TickerHandle) bool {
	for i := range t.entries {
		if t.entries[i].id == h && t.entries[i].fn != nil {
			t.entries[i].fn = nil
			t.dirty = true
			return true
		}
	}
	return false
}

// Update runs every live callback once with dt seconds.
func (t *Ticker) Update(dt float64) {
	n := len(t.entries)
	for i := 0; i < n; i++ {
		if fn := t.entries[i].fn; fn != nil {
			fn(dt)
		}
	}
	if t.dirty {
		t.compact()
	}
}

// Len returns the number of live callbacks.
func (t *Ticker) Len() int {
	count := 0
	for i := range t.entries {
		if t.entries[i].fn != nil {
			count++
		}
	}
	return count
}

// compact drops removed entries in place.
func (t *Ticker) compact() {
	live := t.entries[:0]
	for _, e := range t.entries {
		if e.fn != nil {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(t.entries); i++ {
		t.entries[i] = tickerEntry{}
	}
	t.entries = live
	t.dirty = false
}
