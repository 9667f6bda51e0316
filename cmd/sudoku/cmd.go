package sudoku

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aia-uclouvain/maxicp-sub001/internal/cli"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/search"
)

func NewSudokuCommand() *cobra.Command {
	var (
		puzzle string
		flags  cli.SearchFlags
	)
	cmd := &cobra.Command{
		Use:   "sudoku",
		Short: "Returns a solved sudoku board",
		Long: `Returns a solved sudoku board. The puzzle lists the 81 cells row by row,
'.' or '0' for blanks. Without a puzzle, an empty board is filled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.NewEnv(cmd)
			if err != nil {
				return err
			}
			s, err := env.NewSolver()
			if err != nil {
				return err
			}
			board, err := NewSudoku(s, puzzle)
			if err != nil {
				return err
			}
			dfs, err := env.NewSearch(s, search.FirstFail(board.Cells()...))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			dfs.OnSolution(func() {
				board.Print(out)
				fmt.Fprintln(out)
			})
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
	cmd.Flags().StringVar(&puzzle, "puzzle", "", "cells of the puzzle, row by row")
	flags.AddFlags(cmd.Flags())
	return cmd
}
