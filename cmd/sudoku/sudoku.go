package sudoku

import (
	"fmt"
	"io"
	"strings"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp/constraint"
)

const size = 9

// Sudoku is a 9x9 board whose cells hold 1..9, all different on each row,
// column and 3x3 box.
type Sudoku struct {
	cells [size][size]cp.IntVar
}

// NewSudoku posts the rules of the game. puzzle lists the 81 cells row
// by row; '.' and '0' are blanks, and whitespace is ignored. An empty
// puzzle is an empty board.
func NewSudoku(s *cp.Solver, puzzle string) (*Sudoku, error) {
	clues, err := parse(puzzle)
	if err != nil {
		return nil, err
	}
	b := &Sudoku{}
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if b.cells[row][col], err = cp.NewIntVar(s, 1, size); err != nil {
				return nil, err
			}
		}
	}

	var cs []cp.Constraint
	for i := 0; i < size; i++ {
		cs = append(cs, constraint.AllDifferent(b.row(i)...), constraint.AllDifferent(b.col(i)...), constraint.AllDifferent(b.box(i)...))
	}
	if err := s.PostAll(cs...); err != nil {
		return nil, err
	}
	err = s.Apply(func() error {
		for i, v := range clues {
			if v == 0 {
				continue
			}
			if err := b.cells[i/size][i%size].Fix(v); err != nil {
				return err
			}
		}
		return nil
	})
	if cp.IsInconsistency(err) {
		return nil, fmt.Errorf("puzzle has no solution")
	}
	return b, err
}

func parse(puzzle string) ([]int, error) {
	puzzle = strings.Join(strings.Fields(puzzle), "")
	clues := make([]int, size*size)
	if puzzle == "" {
		return clues, nil
	}
	if len(puzzle) != size*size {
		return nil, fmt.Errorf("puzzle has %d cells, expected %d", len(puzzle), size*size)
	}
	for i, c := range puzzle {
		switch {
		case c == '.' || c == '0':
		case c >= '1' && c <= '9':
			clues[i] = int(c - '0')
		default:
			return nil, fmt.Errorf("invalid cell %q at position %d", c, i)
		}
	}
	return clues, nil
}

func (b *Sudoku) row(i int) []cp.IntVar {
	return b.cells[i][:]
}

func (b *Sudoku) col(j int) []cp.IntVar {
	x := make([]cp.IntVar, size)
	for i := range x {
		x[i] = b.cells[i][j]
	}
	return x
}

// box returns the cells of the i-th 3x3 box, numbered row by row.
func (b *Sudoku) box(i int) []cp.IntVar {
	x := make([]cp.IntVar, 0, size)
	r, c := 3*(i/3), 3*(i%3)
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			x = append(x, b.cells[r+dr][c+dc])
		}
	}
	return x
}

// Cells returns the variables row by row.
func (b *Sudoku) Cells() []cp.IntVar {
	x := make([]cp.IntVar, 0, size*size)
	for i := 0; i < size; i++ {
		x = append(x, b.row(i)...)
	}
	return x
}

// Print draws the board, leaving unfixed cells blank.
func (b *Sudoku) Print(w io.Writer) {
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if x := b.cells[row][col]; x.IsFixed() {
				fmt.Fprintf(w, "%d", x.Min())
			} else {
				fmt.Fprintf(w, " ")
			}
			if col != size-1 {
				fmt.Fprintf(w, " ")
			}
		}
		fmt.Fprintf(w, "\n")
	}
}
