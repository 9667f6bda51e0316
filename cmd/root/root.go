package root

import (
	"github.com/spf13/cobra"

	"github.com/aia-uclouvain/maxicp-sub001/cmd/nqueens"
	"github.com/aia-uclouvain/maxicp-sub001/cmd/solve"
	"github.com/aia-uclouvain/maxicp-sub001/cmd/sudoku"
	"github.com/aia-uclouvain/maxicp-sub001/internal/cli"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "maxicp",
		Short: "maxicp solves constraint programming models",
		Long: `A constraint programming solver written in Go: reversible domains,
propagation to a fixpoint and depth-first search.`,
		SilenceUsage: true,
	}
	cli.AddGlobalFlags(rootCmd.PersistentFlags())

	// add sub-commands
	rootCmd.AddCommand(nqueens.NewNQueensCommand())
	rootCmd.AddCommand(sudoku.NewSudokuCommand())
	rootCmd.AddCommand(solve.NewSolveCommand())

	return rootCmd
}
