package palette

// Range remapping between a format's native value range and the canonical
// [0,1] space. Results are clamped: palette files in the wild carry
// out-of-range values more often than you'd hope.

// Unit maps v from [lo,hi] into [0,1].
func Unit(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return clamp((v - lo) / (hi - lo))
}

// FromUnit maps u from [0,1] into [lo,hi].
func FromUnit(u, lo, hi float64) float64 {
	return lo + clamp(u)*(hi-lo)
}

// UnitFromByte maps an 8-bit channel value into [0,1].
func UnitFromByte(v uint8) float64 {
	return float64(v) / 255.0
}

// ByteFromUnit maps a [0,1] value onto the 8-bit range, rounding to nearest.
func ByteFromUnit(u float64) uint8 {
	return uint8(clamp(u)*255.0 + 0.5)
}

// UnitFromWord maps a 16-bit channel value into [0,1].
func UnitFromWord(v uint16) float64 {
	return float64(v) / 65535.0
}

// WordFromUnit maps a [0,1] value onto the 16-bit range, rounding to nearest.
func WordFromUnit(u float64) uint16 {
	return uint16(clamp(u)*65535.0 + 0.5)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
