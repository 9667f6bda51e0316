package solve

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aia-uclouvain/maxicp-sub001/internal/cli"
	"github.com/aia-uclouvain/maxicp-sub001/internal/dimacs"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp/constraint"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/search"
)

func NewSolveCommand() *cobra.Command {
	var flags cli.SearchFlags
	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves a sat problem given in dimacs format",
		Long: `Solves a sat problem given in dimacs format. For instance:
c
c this is a comment
c header: p cnf <number of variable> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 and not 2)
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "error opening dimacs file (%s)", args[0])
			}
			defer f.Close()
			p, err := dimacs.Parse(f)
			if err != nil {
				return errors.Wrapf(err, "error parsing dimacs file (%s)", args[0])
			}

			env, err := cli.NewEnv(cmd)
			if err != nil {
				return err
			}
			s, err := env.NewSolver()
			if err != nil {
				return err
			}
			x, err := NewModel(s, p)
			out := cmd.OutOrStdout()
			if cp.IsInconsistency(err) {
				fmt.Fprintln(out, "no solution found: unsatisfiable at the root")
				return nil
			}
			if err != nil {
				return err
			}
			dfs, err := env.NewSearch(s, search.StaticOrder(toIntVars(x)...))
			if err != nil {
				return err
			}
			dfs.OnSolution(func() { PrintSolution(out, x) })
			stats, err := dfs.Solve(cmd.Context(), flags.Limits()...)
			if err != nil {
				return err
			}
			if stats.Solutions == 0 {
				fmt.Fprintln(out, "no solution found")
			}
			fmt.Fprintln(out, stats)
			return env.WriteMetrics()
		},
	}
	flags.AddFlags(cmd.Flags())
	return cmd
}

// NewModel creates one boolean variable per DIMACS variable and posts the
// clauses of p over them.
func NewModel(s *cp.Solver, p *dimacs.Problem) ([]cp.BoolVar, error) {
	x := cp.NewBoolVarArray(s, p.NumVariables)
	if err := s.Post(constraint.Clauses(x, p.Clauses)); err != nil {
		return nil, err
	}
	return x, nil
}

// PrintSolution prints the solution as a DIMACS "v" line.
func PrintSolution(w io.Writer, x []cp.BoolVar) {
	lits := make([]string, 0, len(x)+1)
	for i, b := range x {
		if b.IsTrue() {
			lits = append(lits, fmt.Sprint(i+1))
		} else {
			lits = append(lits, fmt.Sprint(-(i + 1)))
		}
	}
	fmt.Fprintf(w, "v %s 0\n", strings.Join(lits, " "))
}

func toIntVars(x []cp.BoolVar) []cp.IntVar {
	y := make([]cp.IntVar, len(x))
	for i, b := range x {
		y[i] = b
	}
	return y
}
