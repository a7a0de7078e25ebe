package quantity

import "testing"

func TestStorageRoundTrip(t *testing.T) {
	cases := []struct {
		value float64
		unit  StorageUnit
		want  string
	}{
		{10, StorageUnitGi, "10Gi"},
		{20, StorageUnitMi, "20Mi"},
		{1, StorageUnitBytes, "1"},
		{1.5, StorageUnitKi, "1.5Ki"},
	}
	for _, c := range cases {
		s := NewStorage(c.value, c.unit)
		if got := s.String(); got != c.want {
			t.Errorf("NewStorage(%v, %q).String() = %q, want %q", c.value, c.unit, got, c.want)
		}
		parsed, ok := ParseStorage(c.want)
		if !ok {
			t.Fatalf("ParseStorage(%q) failed", c.want)
		}
		value, unit, _ := parsed.AsUnit()
		if value != c.value || unit != c.unit {
			t.Errorf("ParseStorage(%q) = (%v, %q), want (%v, %q)", c.want, value, unit, c.value, c.unit)
		}
	}
}

func TestCpuRoundTrip(t *testing.T) {
	cases := []struct {
		value float64
		unit  CpuUnit
		want  string
	}{
		{500, CpuUnitMilli, "500m"},
		{2, CpuUnitCore, "2"},
	}
	for _, c := range cases {
		cp := NewCpu(c.value, c.unit)
		if got := cp.String(); got != c.want {
			t.Errorf("NewCpu(%v, %q).String() = %q, want %q", c.value, c.unit, got, c.want)
		}
		parsed, ok := ParseCpu(c.want)
		if !ok {
			t.Fatalf("ParseCpu(%q) failed", c.want)
		}
		value, unit, _ := parsed.AsUnit()
		if value != c.value || unit != c.unit {
			t.Errorf("ParseCpu(%q) = (%v, %q), want (%v, %q)", c.want, value, unit, c.value, c.unit)
		}
	}
}

func TestParseUnsupportedUnit(t *testing.T) {
	if _, ok := ParseStorage("5m"); ok {
		t.Error("ParseStorage(\"5m\") should fail, m is not a storage unit")
	}
	if _, ok := ParseCpu("5Gi"); ok {
		t.Error("ParseCpu(\"5Gi\") should fail, Gi is not a cpu unit")
	}
}

func TestStorageRangeCoherent(t *testing.T) {
	min := NewStorage(2, StorageUnitGi)
	max := NewStorage(1, StorageUnitGi)
	if (StorageRange{Min: &min, Max: &max}).Coherent() {
		t.Error("range with max < min should be incoherent")
	}
	max2 := NewStorage(4, StorageUnitGi)
	if !(StorageRange{Min: &min, Max: &max2}).Coherent() {
		t.Error("range with max >= min should be coherent")
	}
	if !(StorageRange{}).Coherent() {
		t.Error("empty range should be coherent")
	}
}
