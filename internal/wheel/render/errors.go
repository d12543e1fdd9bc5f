package render

// RenderError is a custom error type for rendering errors
type RenderError string

// Error implements the error interface
func (e RenderError) Error() string {
	return string(e)
}

const (
	ErrNoFrames RenderError = "animation has no frames"
)
