package wheel

// Sector is one slice of the wheel in the surface's angle frame
type Sector struct {
	Index int
	Start float64
	End   float64
}

// Width returns the angular width of the sector in radians
func (s Sector) Width() float64 {
	return s.End - s.Start
}

// Bisector returns the angle halfway through the sector
func (s Sector) Bisector() float64 {
	return s.Start + s.Width()/2
}

// Sectors partitions the circle into n equal slices starting at rotation
func Sectors(n int, rotation float64) []Sector {
	if n <= 0 {
		return nil
	}

	arc := ArcRadians(n)
	sectors := make([]Sector, n)
	for i := range sectors {
		start := rotation + float64(i)*arc
		sectors[i] = Sector{
			Index: i,
			Start: start,
			End:   start + arc,
		}
	}
	return sectors
}
