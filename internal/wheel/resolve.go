package wheel

import (
	"math"

	"github.com/KirkDiggler/lunchwheel/internal/models"
)

// Resolve returns the index of the sector under the pointer for a wheel of n
// options rotated by angle radians. It inverts the assignment made by Sectors.
func Resolve(angle float64, n int) int {
	if n <= 0 {
		return -1
	}

	arcDeg := 360 / float64(n)
	deg := degrees(angle) + PointerOffsetDegrees
	index := int(math.Floor((360-floorMod(deg, 360))/arcDeg)) % n
	if index < 0 {
		index += n
	}
	return index
}

// ResolveOption picks the winning option for the given final angle
func ResolveOption(angle float64, mode models.Mode, options models.OptionList) (*models.ResultRecord, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}

	index := Resolve(angle, len(options))
	return &models.ResultRecord{
		WinningOption: options[index],
		WinningIndex:  index,
		Mode:          mode,
	}, nil
}

// AngleFor returns a rotation that leaves the middle of sector k under the
// pointer. Used to draw a wheel that lands on a known option.
func AngleFor(k, n int) float64 {
	if n <= 0 {
		return 0
	}
	arcDeg := 360 / float64(n)
	target := (float64(k) + 0.5) * arcDeg
	return radians(floorMod(360-PointerOffsetDegrees-target, 360))
}
