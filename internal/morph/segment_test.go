package morph

import "testing"

func TestSegmentValid(t *testing.T) {
	soma := NewSoma(6.30785, 0)
	if !soma.Valid() {
		t.Fatal("expected positive-radius soma to be valid")
	}
	if NewSoma(0, 0).Valid() {
		t.Fatal("expected zero-radius soma to be invalid")
	}

	cable := NewCable(200, []float64{1, 0.5}, 4, 1)
	if !cable.Valid() {
		t.Fatal("expected well-formed cable to be valid")
	}
	if NewCable(200, []float64{1}, 4, 1).Valid() {
		t.Fatal("expected cable with fewer than 2 radius samples to be invalid")
	}
	if NewCable(0, []float64{1, 1}, 4, 1).Valid() {
		t.Fatal("expected zero-length cable to be invalid")
	}
	if NewCable(200, []float64{1, -1}, 4, 1).Valid() {
		t.Fatal("expected negative radius to be invalid")
	}
}
