package engine

// Shape identifies one of the seven tetrominoes. ShapeNone marks an empty cell.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeI
	ShapeJ
	ShapeL
	ShapeO
	ShapeS
	ShapeZ
	ShapeT
)

// AllShapes lists the seven playable shapes in identifier order.
var AllShapes = []Shape{ShapeI, ShapeJ, ShapeL, ShapeO, ShapeS, ShapeZ, ShapeT}

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeO:
		return "O"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeT:
		return "T"
	default:
		return "-"
	}
}

// Valid reports whether s is one of the seven playable shapes.
func (s Shape) Valid() bool {
	return s >= ShapeI && s <= ShapeT
}

// Occupancy grids at rotation 0. The I and O grids are padded so that
// rotating them about the grid center matches the SRS offset tables.
var shapeGrids = map[Shape][][]uint8{
	ShapeI: {
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 1},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	},
	ShapeJ: {
		{1, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	ShapeL: {
		{0, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	},
	ShapeO: {
		{0, 1, 1},
		{0, 1, 1},
		{0, 0, 0},
	},
	ShapeS: {
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	},
	ShapeZ: {
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	},
	ShapeT: {
		{0, 1, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
}

// baseMatrix returns the unrotated grid for shape with cells set to the
// shape identifier. Unknown shapes yield an empty matrix.
func baseMatrix(shape Shape) Matrix {
	grid := shapeGrids[shape]
	m := make(Matrix, len(grid))
	for r, row := range grid {
		m[r] = make([]Shape, len(row))
		for c, v := range row {
			if v != 0 {
				m[r][c] = shape
			}
		}
	}
	return m
}
