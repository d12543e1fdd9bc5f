package render

import (
	"image/color"
)

// Palette is the fill cycle for sectors; sector i uses Palette[i % len(Palette)]
var Palette = []color.RGBA{
	{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF},
	{R: 0xFF, G: 0xD9, B: 0x3D, A: 0xFF},
	{R: 0x6B, G: 0xCB, B: 0x77, A: 0xFF},
	{R: 0x4D, G: 0x96, B: 0xFF, A: 0xFF},
	{R: 0xF4, G: 0x73, B: 0xB9, A: 0xFF},
	{R: 0x84, G: 0x5E, B: 0xC2, A: 0xFF},
	{R: 0xFF, G: 0x96, B: 0x71, A: 0xFF},
}

// SectorColor returns the fill color of sector i
func SectorColor(i int) color.RGBA {
	return Palette[i%len(Palette)]
}
