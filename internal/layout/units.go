package layout

// PointsPerMM is the number of PDF points in one millimetre
const PointsPerMM = 72.0 / 25.4

// A4 page size
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
)

// MM converts millimetres to points
func MM(v float64) float64 {
	return v * PointsPerMM
}

// ToMM converts points to millimetres
func ToMM(pt float64) float64 {
	return pt / PointsPerMM
}
