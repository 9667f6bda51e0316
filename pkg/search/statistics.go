package search

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Statistics counts the events of one run of a search.
type Statistics struct {
	// Nodes is the number of alternatives applied.
	Nodes     int
	Failures  int
	Solutions int
	// Completed is false when the search was stopped by a limit or a
	// cancelled context.
	Completed bool
}

func (s Statistics) String() string {
	return fmt.Sprintf("nodes: %d, failures: %d, solutions: %d, completed: %t", s.Nodes, s.Failures, s.Solutions, s.Completed)
}

func (s Statistics) fields() logrus.Fields {
	return logrus.Fields{
		"nodes":     s.Nodes,
		"failures":  s.Failures,
		"solutions": s.Solutions,
		"completed": s.Completed,
	}
}

// Limit stops the search when it returns true. It is checked before each
// action of the search.
type Limit func(Statistics) bool

func NodeLimit(n int) Limit {
	return func(s Statistics) bool { return s.Nodes >= n }
}

func FailureLimit(n int) Limit {
	return func(s Statistics) bool { return s.Failures >= n }
}

func SolutionLimit(n int) Limit {
	return func(s Statistics) bool { return s.Solutions >= n }
}

// TimeLimit stops the search d after its first check. A TimeLimit must
// not be shared between runs.
func TimeLimit(d time.Duration) Limit {
	var deadline time.Time
	return func(Statistics) bool {
		now := time.Now()
		if deadline.IsZero() {
			deadline = now.Add(d)
		}
		return !now.Before(deadline)
	}
}

// AnyOf stops as soon as one of limits does. With no limit it never stops.
func AnyOf(limits ...Limit) Limit {
	switch len(limits) {
	case 0:
		return func(Statistics) bool { return false }
	case 1:
		return limits[0]
	}
	return func(s Statistics) bool {
		for _, l := range limits {
			if l(s) {
				return true
			}
		}
		return false
	}
}
