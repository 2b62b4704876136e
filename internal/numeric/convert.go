package numeric

import (
	"math"

	"github.com/chewxy/math32"
)

// Rounding selects how a computed channel value is narrowed to a byte.
type Rounding int

const (
	// Truncate drops the fractional part.
	Truncate Rounding = iota
	// Nearest rounds half away from zero.
	Nearest
)

func (r Rounding) String() string {
	switch r {
	case Truncate:
		return "truncate"
	case Nearest:
		return "nearest"
	default:
		return "unknown"
	}
}

// ToByte clamps v to [0,255] and truncates it.
func ToByte(v float32) uint8 {
	return uint8(Clamp(v, 0, MaxChannel))
}

// RoundByte clamps v to [0,255] and rounds it to the nearest integer.
func RoundByte(v float32) uint8 {
	return uint8(Clamp(Round(v), 0, MaxChannel))
}

// Narrow converts a byte-domain value using rule.
func Narrow(v float32, rule Rounding) uint8 {
	if rule == Nearest {
		return RoundByte(v)
	}
	return ToByte(v)
}

// Unit maps a byte to [0,1].
func Unit(b uint8) float32 {
	return float32(b) / MaxChannel
}

// Requantize snaps a unit-domain value to the byte grid using rule and
// returns it in the unit domain again. The slack keeps values that are a
// hair under an integer after float error from being truncated a full step.
func Requantize(v float32, rule Rounding) float32 {
	v = Clamp(v, 0, 1) * MaxChannel
	if rule == Nearest {
		return Round(v) / MaxChannel
	}
	return math32.Floor(v+requantizeSlack) / MaxChannel
}

const requantizeSlack = 1e-3

// Round rounds half away from zero.
func Round(v float32) float32 {
	return float32(math.Round(float64(v)))
}

// Denormalize converts a unit-domain value to a byte, rounding to nearest.
func Denormalize(v float32) uint8 {
	return RoundByte(v * MaxChannel)
}
