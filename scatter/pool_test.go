package scatter

import "testing"

func TestVariantPoolDrawsEachBeforeRepeat(t *testing.T) {
	const n = 8
	p := NewVariantPool(n, NewSeededRand(1))

	for round := 0; round < 3; round++ {
		seen := make(map[int]bool, n)
		for i := 0; i < n; i++ {
			v := p.Next()
			if v < 0 || v >= n {
				t.Fatalf("round %d: variant %d out of range", round, v)
			}
			if seen[v] {
				t.Fatalf("round %d: variant %d repeated before the deck was exhausted", round, v)
			}
			seen[v] = true
		}
		if p.Remaining() != 0 {
			t.Fatalf("round %d: Remaining = %d, want 0", round, p.Remaining())
		}
	}
}

func TestVariantPoolEmpty(t *testing.T) {
	p := NewVariantPool(0, NewSeededRand(1))
	for i := 0; i < 3; i++ {
		if v := p.Next(); v != 0 {
			t.Fatalf("Next() = %d, want 0", v)
		}
	}
}

func TestVariantPoolNilRand(t *testing.T) {
	p := NewVariantPool(3, nil)
	if v := p.Next(); v < 0 || v >= 3 {
		t.Fatalf("Next() = %d, want value in [0, 3)", v)
	}
}
