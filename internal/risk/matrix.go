package risk

import "github.com/m-mizutani/goerr/v2"

// Cell is one square of the risk matrix.
type Cell struct {
	Assessment
	Count int
}

// Matrix is indexed [likelihood-1][consequence-1].
type Matrix [MaxScale][MaxScale]Cell

// NewMatrix fills every cell through Compute.
func NewMatrix() Matrix {
	var m Matrix
	for l := MinScale; l <= MaxScale; l++ {
		for c := MinScale; c <= MaxScale; c++ {
			a, err := Compute(l, c)
			if err != nil {
				// unreachable: the loop bounds are the valid domain
				panic(err)
			}
			m[l-1][c-1] = Cell{Assessment: a}
		}
	}
	return m
}

func (m *Matrix) Cell(likelihood, consequence int) (Cell, error) {
	if err := checkScale("likelihood", likelihood); err != nil {
		return Cell{}, err
	}
	if err := checkScale("consequence", consequence); err != nil {
		return Cell{}, err
	}
	return m[likelihood-1][consequence-1], nil
}

// SetCount records how many stored assessments fall in a cell.
func (m *Matrix) SetCount(likelihood, consequence, n int) error {
	if likelihood < MinScale || likelihood > MaxScale || consequence < MinScale || consequence > MaxScale {
		return goerr.Wrap(ErrInvalidArgument, "matrix cell out of range",
			goerr.V("likelihood", likelihood), goerr.V("consequence", consequence))
	}
	m[likelihood-1][consequence-1].Count = n
	return nil
}

// Rows returns the matrix in display order: likelihood 5 on top, consequence
// increasing left to right.
func (m *Matrix) Rows() [][]Cell {
	rows := make([][]Cell, 0, MaxScale)
	for l := MaxScale; l >= MinScale; l-- {
		row := make([]Cell, MaxScale)
		copy(row, m[l-1][:])
		rows = append(rows, row)
	}
	return rows
}
