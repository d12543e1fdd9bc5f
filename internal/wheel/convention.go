package wheel

import (
	"math"
	"time"
)

// Reference frame shared by the renderer and the resolver.
//
// The drawing surface is y-down, so angles grow clockwise on screen starting
// from the +x axis. Sector i spans [rotation + i*arc, rotation + (i+1)*arc).
// The pointer is fixed at the top of the surface, which sits at -90 degrees
// in that frame; the resolver folds this in as a +90 degree offset.
const (
	// SurfaceSize is the logical width and height of the drawing surface
	SurfaceSize = 600

	// Radius of the wheel on the surface
	Radius = SurfaceSize / 2

	// PointerOffsetDegrees converts a rotation into the pointer's frame
	PointerOffsetDegrees = 90.0

	// LabelRadiusRatio places labels at this fraction of the radius
	LabelRadiusRatio = 0.65

	// MinOptions is the smallest list that can be spun
	MinOptions = 2
)

// Spin physics. Time is logical: every tick advances exactly TickMs.
const (
	TickMs = 20.0

	MinDurationMs = 3000.0
	MaxDurationMs = 5000.0

	MinSpeedDegPerMs = 20.0
	MaxSpeedDegPerMs = 30.0

	// MinStepDegrees floors the per-tick advance so the wheel never stalls early
	MinStepDegrees = 0.5
)

// FrameInterval is how often the host asks for a new frame (about 60Hz)
const FrameInterval = time.Second / 60

// ArcRadians is the angular width of one sector for n options
func ArcRadians(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 2 * math.Pi / float64(n)
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// floorMod is a modulo whose result is always in [0, m)
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
