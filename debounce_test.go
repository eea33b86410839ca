package folio

import "testing"

func TestDebouncerCoalescesBurst(t *testing.T) {
	calls := 0
	d := NewDebouncer(0.2, func() { calls++ })

	// A resize burst: ten triggers 50 ms apart.
	for i := 0; i < 10; i++ {
		d.Trigger()
		d.Update(0.05)
	}
	if calls != 0 {
		t.Fatalf("fired during the burst: %d calls", calls)
	}
	d.Update(0.1)
	if calls != 0 {
		t.Fatal("fired before the quiet period elapsed")
	}
	d.Update(0.1)
	if calls != 1 {
		t.Errorf("calls = %d after the quiet period, want 1", calls)
	}
	d.Update(1)
	if calls != 1 || d.Pending() {
		t.Error("fired again with no new trigger")
	}
}

func TestDebouncerCancel(t *testing.T) {
	calls := 0
	d := NewDebouncer(0.1, func() { calls++ })
	d.Trigger()
	d.Cancel()
	d.Update(1)
	if calls != 0 {
		t.Error("cancelled call ran")
	}
}

func TestDebouncerFlush(t *testing.T) {
	calls := 0
	d := NewDebouncer(10, func() { calls++ })
	if d.Flush() {
		t.Error("Flush with nothing pending reported a call")
	}
	d.Trigger()
	if !d.Flush() || calls != 1 {
		t.Error("Flush did not run the pending call")
	}
}
