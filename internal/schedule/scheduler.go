package schedule

import (
	"io"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
)

// Task is anything the scheduler can drive on a declared cadence.
type Task interface {
	Update() error
	UpdateInterval() Ratio
}

// Named lets a task give itself a name for logs and errors.
type Named interface {
	ID() string
}

// Scheduler owns the host base-tick counter. Each Step advances it by one
// and runs every task whose rational interval falls due on that tick.
// It is not safe for concurrent use; the host calls Step from one goroutine.
type Scheduler struct {
	tick uint64
	log  logrus.FieldLogger
}

func NewScheduler(log logrus.FieldLogger) *Scheduler {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Scheduler{log: log}
}

// Tick returns the number of base ticks stepped so far.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Step advances one base tick. A task runs at most MaxPerTick times per
// step. Failures of individual tasks do not stop the
// others; they are combined into the returned error.
func (s *Scheduler) Step(tasks []Task) error {
	s.tick++

	var errs []error
	for _, t := range tasks {
		n := t.UpdateInterval().Pending(s.tick)
		if n > MaxPerTick {
			s.log.WithFields(logrus.Fields{
				"task":    taskName(t),
				"tick":    s.tick,
				"pending": n,
			}).Warn("interval too fast, capping updates")
			n = MaxPerTick
		}
		for i := uint64(0); i < n; i++ {
			if err := t.Update(); err != nil {
				name := taskName(t)
				s.log.WithError(err).WithFields(logrus.Fields{
					"task": name,
					"tick": s.tick,
				}).Warn("update failed")
				errs = append(errs, errors.Wrapf(err, "update %s", name))
				break
			}
		}
	}

	return errors.Combine(errs...)
}

func taskName(t Task) string {
	if n, ok := t.(Named); ok {
		return n.ID()
	}
	return "task"
}
