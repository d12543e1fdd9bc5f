package models

// SpinStatus represents the state of a wheel's spin engine
type SpinStatus string

const (
	// SpinStatusIdle indicates the wheel is at rest and can be spun
	SpinStatusIdle SpinStatus = "idle"

	// SpinStatusSpinning indicates a spin job is running
	SpinStatusSpinning SpinStatus = "spinning"
)

// RotationState is owned by a wheel's spin engine.
// AngleRadians accumulates across spins and is never reset.
type RotationState struct {
	AngleRadians float64
	Status       SpinStatus
}

// SpinJob is created for one spin attempt and dropped when it completes
type SpinJob struct {
	// TotalDurationMs is sampled from [3000, 5000)
	TotalDurationMs float64

	// InitialSpeedDegPerMs is sampled from [20, 30)
	InitialSpeedDegPerMs float64

	// ElapsedMs is the logical time spent so far
	ElapsedMs float64

	// StartAngleRadians is the rotation when the job started
	StartAngleRadians float64

	// Mode is the list the options were snapshotted from
	Mode Mode

	// Options is the list snapshot taken at start
	Options OptionList
}

// ResultRecord is the winner surfaced to the user
type ResultRecord struct {
	WinningOption string
	WinningIndex  int
	Mode          Mode
}
