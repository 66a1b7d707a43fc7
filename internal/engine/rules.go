package engine

import "github.com/vovakirdan/blockfall/internal/core"

// TSpin classifies the last rotation of a T piece.
type TSpin int

const (
	TSpinNone TSpin = iota
	TSpinMini
	TSpinFull
)

// String returns a display name for the T-spin kind.
func (t TSpin) String() string {
	switch t {
	case TSpinMini:
		return "T-Spin Mini"
	case TSpinFull:
		return "T-Spin"
	default:
		return "None"
	}
}

// SRS offset data, y down. Each orientation holds five (x, y) pairs; a kick
// is the difference between the source and target orientation entries.
var commonOffsets = map[Orientation][]int{
	OrientationUp:    {0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	OrientationLeft:  {0, 0, -1, 0, -1, 1, 0, -2, -1, -2},
	OrientationDown:  {0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	OrientationRight: {0, 0, 1, 0, 1, 1, 0, -2, 1, -2},
}

var offsetData = map[Shape]map[Orientation][]int{
	ShapeI: {
		OrientationUp:    {0, 0, -1, 0, 2, 0, -1, 0, 2, 0},
		OrientationLeft:  {0, -1, 0, -1, 0, -1, 0, 1, 0, -2},
		OrientationDown:  {-1, -1, 1, -1, -2, -1, 1, 0, -2, 0},
		OrientationRight: {-1, 0, 0, 0, 0, 0, 0, -1, 0, 2},
	},
	ShapeO: {
		OrientationUp:    {0, 0},
		OrientationLeft:  {-1, 0},
		OrientationDown:  {-1, 1},
		OrientationRight: {0, 1},
	},
	ShapeJ: commonOffsets,
	ShapeL: commonOffsets,
	ShapeS: commonOffsets,
	ShapeZ: commonOffsets,
	ShapeT: commonOffsets,
}

// KickSeries returns the ordered offsets to test when rotating shape from
// one accumulated rotation to another.
func KickSeries(shape Shape, fromRotation, toRotation int) []Point {
	table, ok := offsetData[shape]
	if !ok {
		return nil
	}
	a := table[OrientationOf(fromRotation)]
	b := table[OrientationOf(toRotation)]

	series := make([]Point, 0, len(a)/2)
	for i := 0; i+1 < len(a); i += 2 {
		series = append(series, Point{X: a[i] - b[i], Y: a[i+1] - b[i+1]})
	}
	return series
}

// GetRotation finds the first kick that lets t rotate by delta without
// obstruction. It returns the delta and the kick, or zero values when every
// kick is blocked.
func GetRotation(delta int, t *Tetromino, m Matrix) (int, Point) {
	for _, kick := range KickSeries(t.Shape, t.Rotation, t.Rotation+delta) {
		if !m.Obstructed(t.PeekPositions(delta, kick.X, kick.Y), 0, 0) {
			return delta, kick
		}
	}
	return 0, Point{}
}

// Corners of the T piece's 3x3 grid, clockwise from top-left.
var tCorners = [4]Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}

// GetTSpin applies the three-corner rule to a T piece that was just rotated
// into place with the given kick. Front corners weigh 4 and back corners 3.
func GetTSpin(t *Tetromino, m Matrix, kick Point) TSpin {
	if t.Shape != ShapeT {
		return TSpinNone
	}

	orientation := int(t.Orientation())
	score := 0
	for i, corner := range tCorners {
		if !m.PointObstructed(corner, t.X, t.Y) {
			continue
		}
		if (i+orientation)%4 < 2 {
			score += 4
		} else {
			score += 3
		}
	}

	if score < 10 {
		return TSpinNone
	}
	if score >= 11 || (core.Abs(kick.Y) == 2 && core.Abs(kick.X) == 1) {
		return TSpinFull
	}
	return TSpinMini
}
