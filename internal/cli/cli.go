// Package cli holds the flags and plumbing shared by the sub-commands.
package cli

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/search"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/search/listener"
)

const (
	LogLevelFlag = "log-level"
	CopyingFlag  = "copying"
	MetricsFlag  = "metrics"
)

// AddGlobalFlags registers the flags inherited by every sub-command.
func AddGlobalFlags(flags *pflag.FlagSet) {
	flags.String(LogLevelFlag, logrus.WarnLevel.String(), "log level (trace, debug, info, warn, error)")
	flags.Bool(CopyingFlag, false, "save states by copying instead of trailing")
	flags.Bool(MetricsFlag, false, "print the search metrics in the prometheus text format when done")
}

// SearchFlags are the limits of a search.
type SearchFlags struct {
	All       bool
	NodeLimit int
	Timeout   time.Duration
}

func (f *SearchFlags) AddFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&f.All, "all", false, "enumerate every solution instead of stopping at the first one")
	flags.IntVar(&f.NodeLimit, "limit-nodes", 0, "stop after this many nodes (0 for no limit)")
	flags.DurationVar(&f.Timeout, "timeout", 0, "stop after this duration (0 for no limit)")
}

func (f *SearchFlags) Limits() []search.Limit {
	var limits []search.Limit
	if !f.All {
		limits = append(limits, search.SolutionLimit(1))
	}
	if f.NodeLimit > 0 {
		limits = append(limits, search.NodeLimit(f.NodeLimit))
	}
	if f.Timeout > 0 {
		limits = append(limits, search.TimeLimit(f.Timeout))
	}
	return limits
}

// Env is what a sub-command needs to build and search a model.
type Env struct {
	Logger   *logrus.Logger
	Registry *prometheus.Registry
	copying  bool
	metrics  bool
	out      io.Writer
}

// NewEnv reads the global flags of cmd.
func NewEnv(cmd *cobra.Command) (*Env, error) {
	flags := cmd.Flags()
	level, err := flags.GetString(LogLevelFlag)
	if err != nil {
		return nil, err
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", LogLevelFlag)
	}
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(lvl)

	env := &Env{Logger: logger, Registry: prometheus.NewRegistry(), out: cmd.OutOrStdout()}
	if env.copying, err = flags.GetBool(CopyingFlag); err != nil {
		return nil, err
	}
	if env.metrics, err = flags.GetBool(MetricsFlag); err != nil {
		return nil, err
	}
	return env, nil
}

func (e *Env) NewSolver() (*cp.Solver, error) {
	options := []cp.Option{cp.WithLogger(e.Logger)}
	if e.copying {
		options = append(options, cp.WithCopying())
	}
	return cp.NewSolver(options...)
}

// NewSearch returns a search reporting to the logger and to the metrics
// registry.
func (e *Env) NewSearch(s *cp.Solver, branching search.Branching) (*search.DFS, error) {
	m, err := listener.NewMetrics(e.Registry, "maxicp")
	if err != nil {
		return nil, err
	}
	return search.New(s, branching,
		search.WithLogger(e.Logger),
		search.WithListener(listener.NewLogging(e.Logger)),
		search.WithListener(m),
	)
}

// WriteMetrics prints the gathered metrics when --metrics is set.
func (e *Env) WriteMetrics() error {
	if !e.metrics {
		return nil
	}
	families, err := e.Registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(e.out, mf); err != nil {
			return err
		}
	}
	return nil
}
