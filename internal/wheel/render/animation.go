package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"time"

	xdraw "golang.org/x/image/draw"
)

// gifPalette keeps the wheel colors exact and fills the rest from Plan9
var gifPalette = func() color.Palette {
	p := color.Palette{
		color.RGBA{},
		color.White,
		color.Black,
	}
	for _, c := range Palette {
		p = append(p, c)
	}
	for _, c := range palette.Plan9 {
		if len(p) == 256 {
			break
		}
		p = append(p, c)
	}
	return p
}()

// Animation collects frames of a spin and encodes them as a GIF
type Animation struct {
	size   int
	frames []*image.Paletted
	delays []int
}

// NewAnimation creates an animation whose frames are scaled to size x size
func NewAnimation(size int) *Animation {
	return &Animation{size: size}
}

// AddFrame appends img, shown for delay
func (a *Animation) AddFrame(img image.Image, delay time.Duration) {
	bounds := image.Rect(0, 0, a.size, a.size)

	scaled := image.NewRGBA(bounds)
	xdraw.ApproxBiLinear.Scale(scaled, bounds, img, img.Bounds(), xdraw.Src, nil)

	frame := image.NewPaletted(bounds, gifPalette)
	draw.Draw(frame, bounds, scaled, image.Point{}, draw.Src)

	a.frames = append(a.frames, frame)
	a.delays = append(a.delays, gifDelay(delay))
}

// Len returns the number of frames recorded so far
func (a *Animation) Len() int {
	return len(a.frames)
}

// Encode writes the animation as a GIF that plays once
func (a *Animation) Encode() ([]byte, error) {
	if len(a.frames) == 0 {
		return nil, ErrNoFrames
	}

	disposal := make([]byte, len(a.frames))
	for i := range disposal {
		disposal[i] = gif.DisposalBackground
	}

	var buf bytes.Buffer
	err := gif.EncodeAll(&buf, &gif.GIF{
		Image:     a.frames,
		Delay:     a.delays,
		Disposal:  disposal,
		LoopCount: -1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode animation: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNG encodes a single frame
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// gifDelay converts a duration into GIF delay units of 10ms
func gifDelay(d time.Duration) int {
	delay := int(d / (10 * time.Millisecond))
	if delay < 2 {
		// most viewers clamp anything faster than 20ms
		delay = 2
	}
	return delay
}
