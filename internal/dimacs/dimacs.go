// Package dimacs reads CNF problems in the DIMACS format.
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
package dimacs

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Problem is a CNF formula over the variables 1..NumVariables. A literal
// is a variable, or its negation when negative.
type Problem struct {
	NumVariables int
	Clauses      [][]int
}

var (
	commentLine = regexp.MustCompile(`^c(\s.*)?$`)
	headerLine  = regexp.MustCompile(`^p\s+cnf\s+(\d+)\s+(\d+)$`)
	clauseLine  = regexp.MustCompile(`^(-?\d+\s+)*0$`)
)

// Parse reads a DIMACS CNF problem. The header must come before the
// clauses, and its counts must match the clauses that follow.
func Parse(r io.Reader) (*Problem, error) {
	scanner := bufio.NewScanner(r)
	var (
		p          *Problem
		numClauses int
		used       = map[int]struct{}{}
		lineNo     int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || commentLine.MatchString(line):
			continue
		case headerLine.MatchString(line):
			if p != nil {
				return nil, errors.Errorf("line %d: duplicate header", lineNo)
			}
			m := headerLine.FindStringSubmatch(line)
			nv, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: invalid number of variables", lineNo)
			}
			nc, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: invalid number of clauses", lineNo)
			}
			p, numClauses = &Problem{NumVariables: nv, Clauses: make([][]int, 0, nc)}, nc
		case clauseLine.MatchString(line):
			if p == nil {
				return nil, errors.Errorf("line %d: missing header 'p cnf <variables> <clauses>'", lineNo)
			}
			fields := strings.Fields(line)
			clause := make([]int, 0, len(fields)-1)
			for _, f := range fields[:len(fields)-1] {
				lit, err := strconv.Atoi(f)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d: invalid literal %s", lineNo, f)
				}
				v := lit
				if v < 0 {
					v = -v
				}
				if v == 0 || v > p.NumVariables {
					return nil, errors.Errorf("line %d: %d is not a valid variable", lineNo, lit)
				}
				used[v] = struct{}{}
				clause = append(clause, lit)
			}
			p.Clauses = append(p.Clauses, clause)
		default:
			return nil, errors.Errorf("line %d: invalid dimacs command: %s", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading dimacs data")
	}

	if p == nil || p.NumVariables == 0 || numClauses == 0 {
		return nil, errors.New("invalid format: no variables or clauses found")
	}
	if len(p.Clauses) != numClauses {
		return nil, errors.Errorf("invalid format: header declares %d clauses, found %d", numClauses, len(p.Clauses))
	}
	if len(used) != p.NumVariables {
		return nil, errors.Errorf("invalid format: header declares %d variables, clauses use %d", p.NumVariables, len(used))
	}
	return p, nil
}
