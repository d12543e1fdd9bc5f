package render

import (
	"fmt"
	"image"
	"math"
	"sync"
	"unicode/utf8"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/wheel"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

const (
	labelFontSize      = 32
	smallLabelFontSize = 24

	// labels longer than this many characters use the small font
	shortLabelLimit = 6
)

// Renderer draws the wheel onto a fixed 600x600 surface.
// It holds only font faces; every call repaints from scratch.
// Font faces cache glyphs and are not safe for concurrent use, hence mu.
type Renderer struct {
	mu    sync.Mutex
	large font.Face
	small font.Face
}

// New creates a renderer with the bundled Go Bold font
func New() (*Renderer, error) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}

	return &Renderer{
		large: truetype.NewFace(f, &truetype.Options{Size: labelFontSize}),
		small: truetype.NewFace(f, &truetype.Options{Size: smallLabelFontSize}),
	}, nil
}

// Render paints options at the given rotation. An empty list yields a clear surface.
func (r *Renderer) Render(options models.OptionList, angle float64) image.Image {
	dc := gg.NewContext(wheel.SurfaceSize, wheel.SurfaceSize)

	r.mu.Lock()
	r.draw(dc, options, angle)
	r.mu.Unlock()

	return dc.Image()
}

func (r *Renderer) draw(dc *gg.Context, options models.OptionList, angle float64) {
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()

	if len(options) == 0 {
		return
	}

	cx := float64(wheel.SurfaceSize) / 2
	cy := float64(wheel.SurfaceSize) / 2
	radius := float64(wheel.Radius)

	for _, s := range wheel.Sectors(len(options), angle) {
		dc.SetColor(SectorColor(s.Index))
		dc.NewSubPath()
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, s.Start, s.End)
		dc.ClosePath()
		dc.Fill()

		r.drawLabel(dc, options[s.Index], s, cx, cy, radius)
	}
}

func (r *Renderer) drawLabel(dc *gg.Context, text string, s wheel.Sector, cx, cy, radius float64) {
	mid := s.Bisector()
	x := cx + math.Cos(mid)*radius*wheel.LabelRadiusRatio
	y := cy + math.Sin(mid)*radius*wheel.LabelRadiusRatio

	face := r.large
	if utf8.RuneCountInString(text) > shortLabelLimit {
		face = r.small
	}

	dc.Push()
	defer dc.Pop()

	dc.SetFontFace(face)
	dc.Translate(x, y)
	dc.Rotate(mid + math.Pi/2)

	// soft shadow under white text
	dc.SetRGBA(0, 0, 0, 0.3)
	dc.DrawStringAnchored(text, 1.5, 1.5, 0.5, 0)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(text, 0, 0, 0.5, 0)
}
