package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

const degenerateLength = 1e-6

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsDegenerate reports whether v is too short to normalise.
func IsDegenerate(v cp.Vector) bool {
	return v.Length() <= degenerateLength
}

// NormalizeDegrees wraps deg into (-180, 180].
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// YawDegrees converts a body angle in radians to a normalised yaw.
func YawDegrees(angle float64) float64 {
	return NormalizeDegrees(angle * 180 / math.Pi)
}

// Forward returns the facing direction of a body rotated by angle radians.
// An unrotated body faces +X.
func Forward(angle float64) cp.Vector {
	return cp.ForAngle(angle)
}
