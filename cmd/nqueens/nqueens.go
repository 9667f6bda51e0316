package nqueens

import (
	"fmt"
	"io"
	"strings"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp/constraint"
)

// Model places n queens on an n x n board, one per column: Queens[i] is
// the row of the queen of column i.
type Model struct {
	Queens []cp.IntVar
}

func NewModel(s *cp.Solver, n int) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid board size %d", n)
	}
	q, err := cp.NewIntVarArray(s, n, 0, n-1)
	if err != nil {
		return nil, err
	}
	var cs []cp.Constraint
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			cs = append(cs,
				constraint.NotEqual(q[i], q[j], 0),
				constraint.NotEqual(q[i], q[j], j-i),
				constraint.NotEqual(q[i], q[j], i-j),
			)
		}
	}
	if err := s.PostAll(cs...); err != nil {
		return nil, err
	}
	return &Model{Queens: q}, nil
}

// Print draws the board. Every queen must be fixed.
func (m *Model) Print(w io.Writer) {
	n := len(m.Queens)
	for row := 0; row < n; row++ {
		line := make([]string, n)
		for col, q := range m.Queens {
			line[col] = "."
			if q.Min() == row {
				line[col] = "Q"
			}
		}
		fmt.Fprintln(w, strings.Join(line, " "))
	}
}
