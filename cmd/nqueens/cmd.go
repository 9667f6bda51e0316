package nqueens

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aia-uclouvain/maxicp-sub001/internal/cli"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/search"
)

func NewNQueensCommand() *cobra.Command {
	var (
		n     int
		flags cli.SearchFlags
	)
	cmd := &cobra.Command{
		Use:   "nqueens",
		Short: "Places n queens on a chess board so that no two queens attack each other",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.NewEnv(cmd)
			if err != nil {
				return err
			}
			s, err := env.NewSolver()
			if err != nil {
				return err
			}
			m, err := NewModel(s, n)
			if err != nil {
				return err
			}
			dfs, err := env.NewSearch(s, search.FirstFail(m.Queens...))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !flags.All {
				dfs.OnSolution(func() { m.Print(out) })
			}
			stats, err := dfs.Solve(cmd.Context(), flags.Limits()...)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, stats)
			return env.WriteMetrics()
		},
	}
	cmd.Flags().IntVar(&n, "n", 8, "size of the board")
	flags.AddFlags(cmd.Flags())
	return cmd
}
