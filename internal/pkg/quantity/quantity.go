// Package quantity provides typed (cpu|storage) x (value, unit) quantities
// with a bidirectional string form, matching the cluster's
// resource.Quantity string grammar.
//
// A plain resource.Quantity can hold any unit; Storage and CPU wrap it with
// the narrower unit sets the Workspace/Runner/CacheJob specs actually use, so
// callers can't accidentally build "5Mi" cpu or "5m" storage.
package quantity

import (
	"fmt"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"
)

// StorageUnit is a supported unit suffix for storage quantities.
type StorageUnit string

// Supported storage units, smallest to largest.
const (
	StorageUnitBytes StorageUnit = ""
	StorageUnitKi     StorageUnit = "Ki"
	StorageUnitMi     StorageUnit = "Mi"
	StorageUnitGi     StorageUnit = "Gi"
	StorageUnitTi     StorageUnit = "Ti"
	StorageUnitPi     StorageUnit = "Pi"
	StorageUnitEi     StorageUnit = "Ei"
)

var storageUnits = map[StorageUnit]struct{}{
	StorageUnitBytes: {}, StorageUnitKi: {}, StorageUnitMi: {}, StorageUnitGi: {},
	StorageUnitTi: {}, StorageUnitPi: {}, StorageUnitEi: {},
}

// CpuUnit is a supported unit suffix for cpu quantities.
type CpuUnit string

// Supported cpu units.
const (
	CpuUnitCore  CpuUnit = ""
	CpuUnitMilli CpuUnit = "m"
)

var cpuUnits = map[CpuUnit]struct{}{CpuUnitCore: {}, CpuUnitMilli: {}}

// Storage is a quantity expressed in one of the supported storage units.
type Storage struct {
	value float64
	unit  StorageUnit
}

// NewStorage builds a Storage quantity. Panics if unit isn't one of the
// supported storage units, since callers always pass a constant.
func NewStorage(value float64, unit StorageUnit) Storage {
	if _, ok := storageUnits[unit]; !ok {
		panic(fmt.Sprintf("quantity: unsupported storage unit %q", unit))
	}
	return Storage{value: value, unit: unit}
}

// String renders the quantity in the cluster's resource.Quantity grammar,
// e.g. "2Gi".
func (s Storage) String() string {
	return formatValue(s.value) + string(s.unit)
}

// Quantity converts to the cluster's generic Quantity type.
func (s Storage) Quantity() resource.Quantity {
	return resource.MustParse(s.String())
}

// AsUnit returns the (value, unit) pair, the inverse of NewStorage/String.
func (s Storage) AsUnit() (float64, StorageUnit, bool) {
	return s.value, s.unit, true
}

// ParseStorage parses a cluster Quantity string into a Storage value. Returns
// false if the string's unit isn't one of the supported storage units.
func ParseStorage(s string) (Storage, bool) {
	value, unit, ok := splitValueUnit(s)
	if !ok {
		return Storage{}, false
	}
	u := StorageUnit(unit)
	if _, ok := storageUnits[u]; !ok {
		return Storage{}, false
	}
	return Storage{value: value, unit: u}, true
}

// Cpu is a quantity expressed in one of the supported cpu units.
type Cpu struct {
	value float64
	unit  CpuUnit
}

// NewCpu builds a Cpu quantity. Panics if unit isn't supported.
func NewCpu(value float64, unit CpuUnit) Cpu {
	if _, ok := cpuUnits[unit]; !ok {
		panic(fmt.Sprintf("quantity: unsupported cpu unit %q", unit))
	}
	return Cpu{value: value, unit: unit}
}

// String renders the quantity, e.g. "500m" or "2".
func (c Cpu) String() string {
	return formatValue(c.value) + string(c.unit)
}

// Quantity converts to the cluster's generic Quantity type.
func (c Cpu) Quantity() resource.Quantity {
	return resource.MustParse(c.String())
}

// AsUnit returns the (value, unit) pair, the inverse of NewCpu/String.
func (c Cpu) AsUnit() (float64, CpuUnit, bool) {
	return c.value, c.unit, true
}

// ParseCpu parses a cluster Quantity string into a Cpu value.
func ParseCpu(s string) (Cpu, bool) {
	value, unit, ok := splitValueUnit(s)
	if !ok {
		return Cpu{}, false
	}
	u := CpuUnit(unit)
	if _, ok := cpuUnits[u]; !ok {
		return Cpu{}, false
	}
	return Cpu{value: value, unit: u}, true
}

// splitValueUnit splits "10Gi" into (10, "Gi"). The unit is the trailing
// run of alphabetic characters, matching the split used by the quantity's
// originating Rust implementation (find first alphabetic byte).
func splitValueUnit(s string) (float64, string, bool) {
	split := len(s)
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' {
			split = i
			break
		}
	}
	value, err := strconv.ParseFloat(s[:split], 64)
	if err != nil {
		return 0, "", false
	}
	return value, s[split:], true
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', -1, 64), "0"), ".")
}

// storageMultiplier returns the power-of-1024 multiplier for a storage unit.
func storageMultiplier(u StorageUnit) float64 {
	switch u {
	case StorageUnitKi:
		return 1 << 10
	case StorageUnitMi:
		return 1 << 20
	case StorageUnitGi:
		return 1 << 30
	case StorageUnitTi:
		return 1 << 40
	case StorageUnitPi:
		return 1 << 50
	case StorageUnitEi:
		return 1 << 60
	default:
		return 1
	}
}

// Bytes normalizes the quantity to a plain byte count, for range comparison.
func (s Storage) Bytes() float64 {
	return s.value * storageMultiplier(s.unit)
}

// Less reports whether s represents fewer bytes than other.
func (s Storage) Less(other Storage) bool {
	return s.Bytes() < other.Bytes()
}

// MilliValue normalizes the quantity to millicores, for range comparison.
func (c Cpu) MilliValue() float64 {
	if c.unit == CpuUnitMilli {
		return c.value
	}
	return c.value * 1000
}

// Less reports whether c represents fewer millicores than other.
func (c Cpu) Less(other Cpu) bool {
	return c.MilliValue() < other.MilliValue()
}

// StorageRange is a {min, max} storage requirement pair.
type StorageRange struct {
	Min *Storage
	Max *Storage
}

// Coherent reports whether the range satisfies invariant I3 (max >= min).
// A range with only one bound set, or neither, is trivially coherent.
func (r StorageRange) Coherent() bool {
	if r.Min == nil || r.Max == nil {
		return true
	}
	return !r.Max.Less(*r.Min)
}

// CpuRange is a {min, max} cpu requirement pair.
type CpuRange struct {
	Min *Cpu
	Max *Cpu
}

// Coherent reports whether the range satisfies invariant I3 (max >= min).
func (r CpuRange) Coherent() bool {
	if r.Min == nil || r.Max == nil {
		return true
	}
	return !r.Max.Less(*r.Min)
}
