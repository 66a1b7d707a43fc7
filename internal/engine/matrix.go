// Package engine implements the guideline ruleset for the falling-block game:
// the playfield state machine, SRS rotation, T-spin detection, scoring and the
// leaderboard. It has no terminal or storage dependencies so the rules can be
// driven and tested without a frontend.
package engine

// Point is a cell offset on the grid. Y grows downward.
type Point struct {
	X, Y int
}

// Matrix is a grid of cell values stored row by row, top to bottom.
// Every row has the same length.
type Matrix [][]Shape

// NewMatrix creates an empty matrix with the given dimensions.
func NewMatrix(cols, rows int) Matrix {
	m := make(Matrix, rows)
	for r := range m {
		m[r] = make([]Shape, cols)
	}
	return m
}

// Cols returns the number of columns.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Clear fills every cell with value, in place.
func (m Matrix) Clear(value Shape) {
	for r := range m {
		for c := range m[r] {
			m[r][c] = value
		}
	}
}

// Clone returns a deep copy. Mutating the copy never affects m.
func (m Matrix) Clone() Matrix {
	clone := make(Matrix, len(m))
	for r, row := range m {
		clone[r] = make([]Shape, len(row))
		copy(clone[r], row)
	}
	return clone
}

// RotateMatrix returns m rotated by a multiple of 90 degrees.
// Positive angles turn counter-clockwise. The input is not modified.
func RotateMatrix(m Matrix, degrees int) Matrix {
	switch ((degrees % 360) + 360) % 360 {
	case 90:
		return reverseRows(transpose(m))
	case 180:
		rotated := reverseRows(m)
		for _, row := range rotated {
			for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
				row[i], row[j] = row[j], row[i]
			}
		}
		return rotated
	case 270:
		return transpose(reverseRows(m))
	default:
		return m.Clone()
	}
}

// transpose returns the matrix transpose as a new matrix.
func transpose(m Matrix) Matrix {
	result := NewMatrix(m.Rows(), m.Cols())
	for r, row := range m {
		for c, v := range row {
			result[c][r] = v
		}
	}
	return result
}

// reverseRows returns a copy of m with the row order reversed.
func reverseRows(m Matrix) Matrix {
	result := make(Matrix, len(m))
	for r, row := range m {
		dst := make([]Shape, len(row))
		copy(dst, row)
		result[len(m)-1-r] = dst
	}
	return result
}

// SetValues writes value at every point shifted by (dx, dy).
// Points outside the matrix are silently skipped.
func (m Matrix) SetValues(points []Point, value Shape, dx, dy int) {
	cols, rows := m.Cols(), m.Rows()
	for _, p := range points {
		x, y := p.X+dx, p.Y+dy
		if x < 0 || x >= cols || y < 0 || y >= rows {
			continue
		}
		m[y][x] = value
	}
}

// PointObstructed reports whether p shifted by (dx, dy) is outside the
// matrix or lands on a non-empty cell.
func (m Matrix) PointObstructed(p Point, dx, dy int) bool {
	x, y := p.X+dx, p.Y+dy
	if x < 0 || x >= m.Cols() || y < 0 || y >= m.Rows() {
		return true
	}
	return m[y][x] != ShapeNone
}

// Obstructed reports whether any of the points is obstructed.
func (m Matrix) Obstructed(points []Point, dx, dy int) bool {
	for _, p := range points {
		if m.PointObstructed(p, dx, dy) {
			return true
		}
	}
	return false
}

// LeadingEmptyRowCount returns how many empty rows precede the first
// non-empty row. It returns 0 when no row has a filled cell.
func (m Matrix) LeadingEmptyRowCount() int {
	for r, row := range m {
		for _, v := range row {
			if v != ShapeNone {
				return r
			}
		}
	}
	return 0
}

// FullRows returns the indices of rows with no empty cell, top to bottom.
func (m Matrix) FullRows() []int {
	var full []int
	for r, row := range m {
		if len(row) == 0 {
			continue
		}
		complete := true
		for _, v := range row {
			if v == ShapeNone {
				complete = false
				break
			}
		}
		if complete {
			full = append(full, r)
		}
	}
	return full
}

// RemoveRows deletes the given rows in place, shifting everything above
// them down and inserting empty rows at the top. Indices must be sorted
// ascending, as returned by FullRows.
func (m Matrix) RemoveRows(rows []int) {
	cols := m.Cols()
	for _, r := range rows {
		if r < 0 || r >= len(m) {
			continue
		}
		copy(m[1:r+1], m[:r])
		m[0] = make([]Shape, cols)
	}
}
