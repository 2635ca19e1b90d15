package progress

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Reporter receives per-service completion events from the processing stage.
type Reporter interface {
	Begin(total int)
	Step(service string)
}

// LogReporter counts completed services and logs each step; safe for
// concurrent use.
type LogReporter struct {
	log   *logrus.Logger
	total int64
	done  int64
}

func NewLogReporter(log *logrus.Logger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) Begin(total int) {
	atomic.StoreInt64(&r.total, int64(total))
	atomic.StoreInt64(&r.done, 0)
	r.log.Infof("processing %d services", total)
}

func (r *LogReporter) Step(service string) {
	done := atomic.AddInt64(&r.done, 1)
	r.log.Infof("[%d/%d] processed %s", done, atomic.LoadInt64(&r.total), service)
}

// Done returns the number of completed steps.
func (r *LogReporter) Done() int {
	return int(atomic.LoadInt64(&r.done))
}

// Nop discards all progress events.
type Nop struct{}

func (Nop) Begin(int)   {}
func (Nop) Step(string) {}
