// Package listener provides search listeners reporting to logrus and
// prometheus.
package listener

import (
	"github.com/sirupsen/logrus"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/search"
)

// Logging logs every search event: state changes at Trace level,
// solutions at Debug level and the final statistics at Info level.
type Logging struct {
	logger logrus.FieldLogger
}

var _ search.Listener = &Logging{}

func NewLogging(logger logrus.FieldLogger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) Branch(depth, n int) {
	l.logger.WithFields(logrus.Fields{"depth": depth, "alternatives": n}).Trace("branch")
}

func (l *Logging) Fail(depth int) {
	l.logger.WithField("depth", depth).Trace("fail")
}

func (l *Logging) Solution(depth int) {
	l.logger.WithField("depth", depth).Debug("solution")
}

func (l *Logging) SaveState(level int) {
	l.logger.WithField("level", level).Trace("save state")
}

func (l *Logging) RestoreState(level int) {
	l.logger.WithField("level", level).Trace("restore state")
}

func (l *Logging) Done(stats search.Statistics) {
	l.logger.WithFields(logrus.Fields{
		"nodes":     stats.Nodes,
		"failures":  stats.Failures,
		"solutions": stats.Solutions,
		"completed": stats.Completed,
	}).Info("search done")
}
