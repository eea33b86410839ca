package folio

import "testing"

func TestTickerRunsInOrder(t *testing.T) {
	var tk Ticker
	var got []int
	tk.Add(func(float64) { got = append(got, 1) })
	tk.Add(func(float64) { got = append(got, 2) })
	tk.Update(0.016)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("order = %v, want [1 2]", got)
	}
}

func TestTickerRemove(t *testing.T) {
	var tk Ticker
	calls := 0
	h := tk.Add(func(float64) { calls++ })
	if !tk.Remove(h) {
		t.Fatal("Remove of a live handle returned false")
	}
	if tk.Remove(h) {
		t.Error("second Remove returned true")
	}
	tk.Update(1)
	if calls != 0 || tk.Len() != 0 {
		t.Errorf("calls=%d Len=%d after Remove, want 0/0", calls, tk.Len())
	}
}

func TestTickerMutationDuringUpdate(t *testing.T) {
	var tk Ticker
	var later, victim int
	var victimHandle TickerHandle
	tk.Add(func(float64) {
		tk.Remove(victimHandle)
		tk.Add(func(float64) { later++ })
	})
	victimHandle = tk.Add(func(float64) { victim++ })

	tk.Update(1)
	if victim != 0 {
		t.Error("entry removed earlier in the same Update still ran")
	}
	if later != 0 {
		t.Error("entry added during Update ran in the same Update")
	}
	tk.Update(1)
	if later != 1 {
		t.Errorf("added entry ran %d times, want 1", later)
	}
}

func TestTickerSelfRemoval(t *testing.T) {
	var tk Ticker
	calls := 0
	var h TickerHandle
	h = tk.Add(func(float64) {
		calls++
		tk.Remove(h)
	})
	tk.Update(1)
	tk.Update(1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTickerAddNilPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic")
		}
	}()
	var tk Ticker
	tk.Add(nil)
}
