package num

import "testing"

func TestNewDomainRejectsSmallN(t *testing.T) {
	if _, err := NewDomain(1); err == nil {
		t.Fatal("expected error for N < 2")
	}
	if _, err := NewDomain(2); err != nil {
		t.Fatalf("N=2 should be valid: %v", err)
	}
}

func TestAllYieldsExactlyNInOrder(t *testing.T) {
	d, err := NewDomain(9)
	if err != nil {
		t.Fatal(err)
	}
	all := d.All()
	if len(all) != 9 {
		t.Fatalf("expected 9 indices, got %d", len(all))
	}
	for i, idx := range all {
		if int(idx) != i {
			t.Fatalf("index %d out of order: got %d", i, idx)
		}
	}
}

func TestRangeRespectsBounds(t *testing.T) {
	d, _ := NewDomain(9)

	r, err := d.Range(2, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(r) != 3 || r[0] != 2 || r[2] != 4 {
		t.Fatalf("unexpected range: %v", r)
	}

	if _, err := d.Range(0, 10); err == nil {
		t.Fatal("expected error for out-of-bound range")
	}
	if _, err := d.Range(-1, 3); err == nil {
		t.Fatal("expected error for negative lower bound")
	}
	if _, err := d.Range(5, 2); err == nil {
		t.Fatal("expected error for lo > hi")
	}
}

func TestIndexRejectsOutOfRange(t *testing.T) {
	d, _ := NewDomain(9)
	if _, err := d.Index(-1); err == nil {
		t.Fatal("expected error for negative value")
	}
	if _, err := d.Index(9); err == nil {
		t.Fatal("expected error for value == N")
	}
	if _, err := d.Index(8); err != nil {
		t.Fatalf("8 should be valid for N=9: %v", err)
	}
}
