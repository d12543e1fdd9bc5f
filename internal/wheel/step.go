package wheel

import (
	"math"

	"github.com/KirkDiggler/lunchwheel/internal/models"
)

// State is everything the spin physics reads and writes
type State struct {
	Rotation models.RotationState
	Job      *models.SpinJob
}

// Spinning reports whether a job is in flight
func (s State) Spinning() bool {
	return s.Rotation.Status == models.SpinStatusSpinning && s.Job != nil
}

// Step advances the spin by dtMs of logical time and returns the next state.
// done is true on the step that finishes the job; the finished job is kept on
// the returned state so the caller can resolve it. Step never mutates its input.
func Step(state State, dtMs float64) (next State, done bool) {
	if !state.Spinning() {
		return state, false
	}

	job := *state.Job
	job.ElapsedMs += dtMs
	next = State{Rotation: state.Rotation, Job: &job}

	if job.ElapsedMs >= job.TotalDurationMs {
		next.Rotation.Status = models.SpinStatusIdle
		return next, true
	}

	next.Rotation.AngleRadians += radians(StepDegrees(job.InitialSpeedDegPerMs, job.ElapsedMs/job.TotalDurationMs))
	return next, false
}

// StepDegrees is the cubic ease-out speed for progress in [0, 1), floored at MinStepDegrees
func StepDegrees(initialSpeed, progress float64) float64 {
	speed := initialSpeed * (1 - math.Pow(progress, 3))
	if speed < MinStepDegrees {
		return MinStepDegrees
	}
	return speed
}

// MaxTicks is the number of ticks a job of the given duration takes to finish
func MaxTicks(totalDurationMs float64) int {
	return int(math.Ceil(totalDurationMs / TickMs))
}
