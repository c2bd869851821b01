package payload

import "testing"

func TestPresetsRoundTripBits(t *testing.T) {
	cases := []struct {
		name string
		f    Format
		size int
	}{
		{"Int4", Int4(), 4},
		{"Int8", Int8(), 8},
		{"Int16", Int16(), 16},
		{"Int32", Int32(), 32},
		{"Int64", Int64(), 64},
		{"UInt1", UInt1(), 1},
		{"UInt64", UInt64(), 64},
		{"Float32", Float32(), 32},
		{"Float64", Float64(), 64},
	}
	for _, c := range cases {
		if c.f.DataItemSize() != c.size {
			t.Errorf("%s: DataItemSize() = %d, want %d", c.name, c.f.DataItemSize(), c.size)
		}
		if c.f.ItemPackingFieldSize() != c.size {
			t.Errorf("%s: ItemPackingFieldSize() = %d, want %d", c.name, c.f.ItemPackingFieldSize(), c.size)
		}
		if c.f.RepeatCount() != 1 || c.f.VectorSize() != 1 {
			t.Errorf("%s: expected RepeatCount/VectorSize == 1", c.name)
		}
		if err := c.f.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", c.name, err)
		}
	}
}

func TestComplexDoublesComponentCount(t *testing.T) {
	f := Int16().AsComplexCartesian()
	if ComponentsPerItem(f) != 2 {
		t.Fatalf("ComponentsPerItem() = %d, want 2", ComponentsPerItem(f))
	}
	if ComponentsPerItem(Int16()) != 1 {
		t.Fatalf("real format should have 1 component per item")
	}
}

func TestWithRepeatAndVectorSize(t *testing.T) {
	f := Int8().WithRepeatCount(5).WithVectorSize(3)
	if f.RepeatCount() != 5 {
		t.Errorf("RepeatCount() = %d, want 5", f.RepeatCount())
	}
	if f.VectorSize() != 3 {
		t.Errorf("VectorSize() = %d, want 3", f.VectorSize())
	}
}
