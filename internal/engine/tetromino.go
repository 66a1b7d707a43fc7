package engine

// Rotation deltas in degrees. Positive turns counter-clockwise.
const (
	RotateLeft  = 90
	RotateRight = -90
)

// Orientation indexes the SRS offset tables.
type Orientation int

const (
	OrientationUp Orientation = iota
	OrientationLeft
	OrientationDown
	OrientationRight
)

// OrientationOf normalizes an accumulated rotation to one of four orientations.
func OrientationOf(rotation int) Orientation {
	return Orientation(((rotation/90)%4 + 4) % 4)
}

// Tetromino is a shape at a rotation and grid position. X and Y anchor the
// top-left corner of the shape's bounding grid. Rotation accumulates and is
// only normalized when tables are indexed.
type Tetromino struct {
	Shape    Shape
	Rotation int
	X, Y     int
}

// NewTetromino creates a tetromino at rotation 0 and the origin.
func NewTetromino(shape Shape) *Tetromino {
	return &Tetromino{Shape: shape}
}

// ShapeMatrix returns the grid for shape rotated by rotation degrees.
func ShapeMatrix(shape Shape, rotation int) Matrix {
	return RotateMatrix(baseMatrix(shape), rotation)
}

// ShapePositions returns the absolute cells occupied by shape at the given
// rotation with its grid anchored at (x, y).
func ShapePositions(shape Shape, rotation, x, y int) []Point {
	points := make([]Point, 0, 4)
	for r, row := range ShapeMatrix(shape, rotation) {
		for c, v := range row {
			if v != ShapeNone {
				points = append(points, Point{X: x + c, Y: y + r})
			}
		}
	}
	return points
}

// MoveToSpawnPosition centers the piece on col and places its grid one row
// above row.
func (t *Tetromino) MoveToSpawnPosition(col, row int) {
	width := len(shapeGrids[t.Shape])
	if width > 0 {
		width = len(shapeGrids[t.Shape][0])
	}
	t.X = col - (width+1)/2
	t.Y = row - 1
}

// Move shifts the piece by (dx, dy).
func (t *Tetromino) Move(dx, dy int) {
	t.X += dx
	t.Y += dy
}

// Rotate adds delta degrees to the rotation.
func (t *Tetromino) Rotate(delta int) {
	t.Rotation += delta
}

// Orientation returns the normalized orientation.
func (t *Tetromino) Orientation() Orientation {
	return OrientationOf(t.Rotation)
}

// Matrix returns the piece's rotated grid.
func (t *Tetromino) Matrix() Matrix {
	return ShapeMatrix(t.Shape, t.Rotation)
}

// Positions returns the cells the piece currently occupies.
func (t *Tetromino) Positions() []Point {
	return ShapePositions(t.Shape, t.Rotation, t.X, t.Y)
}

// PeekPositions returns the cells the piece would occupy after rotating by
// delta and moving by (dx, dy), without changing it.
func (t *Tetromino) PeekPositions(delta, dx, dy int) []Point {
	return ShapePositions(t.Shape, t.Rotation+delta, t.X+dx, t.Y+dy)
}

// Clone returns an independent copy.
func (t *Tetromino) Clone() *Tetromino {
	c := *t
	return &c
}
