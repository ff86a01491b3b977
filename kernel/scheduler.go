package kernel

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"
)

const maxTasks = 8

// Task is one unit of scheduled work. A non-nil error stops the scheduler.
type Task interface {
	Step() error
}

// TaskFunc adapts a function to Task.
type TaskFunc func() error

func (f TaskFunc) Step() error { return f() }

// TaskID identifies a registered task.
type TaskID uint8

type taskState struct {
	name    string
	task    Task
	period  uint64
	lastRun uint64
	ran     bool
	runs    uint64
}

// Scheduler runs a fixed, ordered list of periodic tasks against a Clock.
//
// All tasks execute sequentially on the goroutine that calls Step or Run.
type Scheduler struct {
	clock   *Clock
	cadence time.Duration

	tasks     [maxTasks]taskState
	taskCount TaskID
}

// NewScheduler creates a scheduler that Run wakes every cadence.
func NewScheduler(clock *Clock, cadence time.Duration) *Scheduler {
	if cadence <= 0 {
		cadence = time.Millisecond
	}
	return &Scheduler{clock: clock, cadence: cadence}
}

// Cadence returns the Run loop period.
func (s *Scheduler) Cadence() time.Duration { return s.cadence }

// AddTask registers t to run every period of logical time. Tasks run in
// registration order. ok is false when the table is full.
func (s *Scheduler) AddTask(name string, period time.Duration, t Task) (id TaskID, ok bool) {
	if s.taskCount >= maxTasks || t == nil {
		return 0, false
	}
	id = s.taskCount
	s.taskCount++
	s.tasks[id] = taskState{
		name:   name,
		task:   t,
		period: uint64(period / time.Millisecond),
	}
	return id, true
}

// Runs reports how many times task id has executed.
func (s *Scheduler) Runs(id TaskID) uint64 {
	if id >= s.taskCount {
		return 0
	}
	return s.tasks[id].runs
}

// Step runs every task that is due at the current clock reading, in order.
func (s *Scheduler) Step() error {
	now := s.clock.Now()
	for i := TaskID(0); i < s.taskCount; i++ {
		st := &s.tasks[i]
		if st.ran && now-st.lastRun < st.period {
			continue
		}
		st.ran = true
		st.lastRun = now
		st.runs++
		if err := runTask(st); err != nil {
			return err
		}
	}
	return nil
}

// PanicError reports a task that panicked during Step.
type PanicError struct {
	Task  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task %s: panic: %v", e.Task, e.Value)
}

func runTask(st *taskState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Task: st.name, Value: r, Stack: debug.Stack()}
		}
	}()
	if err := st.task.Step(); err != nil {
		return fmt.Errorf("task %s: %w", st.name, err)
	}
	return nil
}

// Run calls Step once per cadence until ctx is done or a task fails.
// Wake-ups are scheduled from the previous deadline so slow steps do not
// accumulate drift.
func (s *Scheduler) Run(ctx context.Context) error {
	next := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if err := s.Step(); err != nil {
			return err
		}

		next = next.Add(s.cadence)
		d := time.Until(next)
		if d < 0 {
			next = time.Now()
			d = 0
		}
		timer.Reset(d)
	}
}
