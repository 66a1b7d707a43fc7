package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid builds a Matrix from literal cell values.
func grid(rows ...[]int) Matrix {
	m := make(Matrix, len(rows))
	for r, row := range rows {
		m[r] = make([]Shape, len(row))
		for c, v := range row {
			m[r][c] = Shape(v)
		}
	}
	return m
}

func TestNewMatrix(t *testing.T) {
	m := NewMatrix(4, 3)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
	for _, row := range m {
		assert.Equal(t, []Shape{0, 0, 0, 0}, row)
	}
}

func TestMatrixClear(t *testing.T) {
	m := NewMatrix(4, 4)
	m.Clear(ShapeJ)
	for _, row := range m {
		assert.Equal(t, []Shape{ShapeJ, ShapeJ, ShapeJ, ShapeJ}, row)
	}
}

func TestMatrixCloneIsDeep(t *testing.T) {
	m := grid(
		[]int{1, 2, 3},
		[]int{4, 5, 6},
		[]int{7, 1, 1},
	)
	clone := m.Clone()
	assert.Equal(t, m, clone)

	clone[1][1] = 0
	assert.Equal(t, Shape(5), m[1][1])
	assert.NotEqual(t, m, clone)
}

func TestLeadingEmptyRowCount(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want int
	}{
		{"empty", Matrix{{}}, 0},
		{"no empty rows", grid([]int{0, 0, 1}, []int{0, 1, 0}, []int{1, 0, 0}), 0},
		{"empty bottom rows", grid([]int{0, 0, 1}, []int{0, 1, 0}, []int{0, 0, 0}), 0},
		{"empty top rows", grid([]int{0, 0, 0}, []int{0, 0, 0}, []int{0, 1, 0}), 2},
		{"all empty", NewMatrix(3, 3), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.LeadingEmptyRowCount())
		})
	}
}

func TestSetValues(t *testing.T) {
	m := NewMatrix(4, 4)
	m.SetValues([]Point{{1, 2}}, ShapeI, 0, 0)
	assert.Equal(t, ShapeI, m[2][1])

	m = NewMatrix(4, 4)
	m.SetValues([]Point{{1, 2}}, ShapeI, 1, -1)
	assert.Equal(t, ShapeI, m[1][2])
}

func TestSetValuesIgnoresOutOfBounds(t *testing.T) {
	m := NewMatrix(4, 4)
	m.SetValues([]Point{{4, 0}, {-1, 0}, {0, 4}, {0, -1}}, ShapeT, 0, 0)
	assert.Equal(t, NewMatrix(4, 4), m)
}

func TestObstructed(t *testing.T) {
	m := grid(
		[]int{0, 0, 0},
		[]int{0, 1, 0},
	)

	assert.False(t, m.PointObstructed(Point{0, 0}, 0, 0))
	assert.True(t, m.PointObstructed(Point{0, 0}, 1, 1))
	assert.True(t, m.PointObstructed(Point{2, 0}, 1, 0), "right wall")
	assert.True(t, m.PointObstructed(Point{0, 1}, 0, 1), "floor")
	assert.True(t, m.PointObstructed(Point{0, 0}, 0, -1), "ceiling")

	assert.False(t, m.Obstructed([]Point{{0, 0}, {2, 1}}, 0, 0))
	assert.True(t, m.Obstructed([]Point{{0, 0}, {1, 1}}, 0, 0))
}

func TestRotateMatrix(t *testing.T) {
	l := baseMatrix(ShapeL)

	assert.Equal(t, grid(
		[]int{3, 3, 0},
		[]int{0, 3, 0},
		[]int{0, 3, 0},
	), RotateMatrix(l, 90))

	assert.Equal(t, RotateMatrix(l, 90), RotateMatrix(l, -270))
	assert.Equal(t, RotateMatrix(l, 180), RotateMatrix(l, 540))
	assert.Equal(t, l, RotateMatrix(l, 360))

	rotated := RotateMatrix(l, 90)
	rotated[0][0] = ShapeNone
	assert.Equal(t, grid(
		[]int{0, 0, 3},
		[]int{3, 3, 3},
		[]int{0, 0, 0},
	), l, "input must not change")
}

func TestFullRowsAndRemoveRows(t *testing.T) {
	m := grid(
		[]int{0, 0, 5},
		[]int{1, 1, 1},
		[]int{0, 2, 0},
		[]int{3, 3, 3},
	)
	rows := m.FullRows()
	require.Equal(t, []int{1, 3}, rows)

	m.RemoveRows(rows)
	assert.Equal(t, grid(
		[]int{0, 0, 0},
		[]int{0, 0, 0},
		[]int{0, 0, 5},
		[]int{0, 2, 0},
	), m)
	assert.Empty(t, m.FullRows())
}
