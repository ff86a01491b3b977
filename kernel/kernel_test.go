package kernel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestClockTickAdvancesByPeriod(t *testing.T) {
	c := NewClock(8 * time.Millisecond)
	if got := c.Now(); got != 0 {
		t.Fatalf("Now() = %d, want 0", got)
	}
	c.Tick()
	c.Tick()
	if got := c.Now(); got != 16 {
		t.Fatalf("Now() = %d, want 16", got)
	}
}

func TestClockSubMillisecondPeriod(t *testing.T) {
	c := NewClock(100 * time.Microsecond)
	if c.Step() != 1 {
		t.Fatalf("Step() = %d, want 1", c.Step())
	}
}

func TestClockConcurrentTicks(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(4)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		tickers = 4
		perTick = 10_000
	)
	c := NewClock(time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(tickers)
	for i := 0; i < tickers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perTick; j++ {
				c.Tick()
			}
		}()
	}
	wg.Wait()

	if got := c.Now(); got != tickers*perTick {
		t.Fatalf("Now() = %d, want %d", got, tickers*perTick)
	}
}

func TestMutexAcquireRelease(t *testing.T) {
	m := NewMutex()
	g, ok := m.Acquire(0)
	if !ok || !g.Held() {
		t.Fatal("expected lock on uncontended mutex")
	}
	if _, ok := m.Acquire(0); ok {
		t.Fatal("second Acquire succeeded while held")
	}
	g.Release()
	g.Release()
	if g.Held() {
		t.Fatal("guard still held after Release")
	}

	g2, ok := m.Acquire(0)
	if !ok {
		t.Fatal("expected lock after release")
	}
	g2.Release()
}

func TestMutexAcquireTimesOut(t *testing.T) {
	m := NewMutex()
	g, _ := m.Acquire(0)
	defer g.Release()

	start := time.Now()
	if _, ok := m.Acquire(5 * time.Millisecond); ok {
		t.Fatal("Acquire succeeded while held")
	}
	if el := time.Since(start); el < 5*time.Millisecond {
		t.Fatalf("Acquire returned after %v, want >= 5ms", el)
	}
}

func TestMutexAcquireWaitsForRelease(t *testing.T) {
	m := NewMutex()
	g, _ := m.Acquire(0)

	go func() {
		time.Sleep(2 * time.Millisecond)
		g.Release()
	}()

	g2, ok := m.Acquire(time.Second)
	if !ok {
		t.Fatal("expected lock once the holder released")
	}
	g2.Release()
}

func TestInertGuardReleaseIsNoop(t *testing.T) {
	var g Guard
	g.Release()
	if g.Held() {
		t.Fatal("zero Guard reports held")
	}
}

func TestSchedulerRunsDueTasksInOrder(t *testing.T) {
	c := NewClock(8 * time.Millisecond)
	s := NewScheduler(c, 16*time.Millisecond)

	var order []string
	rec := func(name string) Task {
		return TaskFunc(func() error {
			order = append(order, name)
			return nil
		})
	}
	fast, _ := s.AddTask("redraw", 16*time.Millisecond, rec("redraw"))
	_, _ = s.AddTask("refresh", 16*time.Millisecond, rec("refresh"))
	slow, _ := s.AddTask("status", time.Second, rec("status"))

	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	want := []string{"redraw", "refresh", "status"}
	if len(order) != len(want) {
		t.Fatalf("first step ran %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("first step ran %v, want %v", order, want)
		}
	}

	// One tick is 8ms: nothing is due yet.
	c.Tick()
	order = order[:0]
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(order) != 0 {
		t.Fatalf("ran %v before period elapsed", order)
	}

	c.Tick()
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(order) != 2 || order[0] != "redraw" || order[1] != "refresh" {
		t.Fatalf("ran %v, want [redraw refresh]", order)
	}
	if s.Runs(fast) != 2 || s.Runs(slow) != 1 {
		t.Fatalf("runs = %d/%d, want 2/1", s.Runs(fast), s.Runs(slow))
	}
}

func TestSchedulerStopsOnTaskError(t *testing.T) {
	c := NewClock(time.Millisecond)
	s := NewScheduler(c, time.Millisecond)

	boom := errors.New("boom")
	ranAfter := false
	_, _ = s.AddTask("refresh", 0, TaskFunc(func() error { return boom }))
	_, _ = s.AddTask("status", 0, TaskFunc(func() error { ranAfter = true; return nil }))

	err := s.Step()
	if !errors.Is(err, boom) {
		t.Fatalf("Step error = %v, want wrapped boom", err)
	}
	if ranAfter {
		t.Fatal("task after the failing one still ran")
	}
}

func TestSchedulerTableFull(t *testing.T) {
	s := NewScheduler(NewClock(time.Millisecond), time.Millisecond)
	noop := TaskFunc(func() error { return nil })
	for i := 0; i < maxTasks; i++ {
		if _, ok := s.AddTask("t", 0, noop); !ok {
			t.Fatalf("AddTask failed at %d", i)
		}
	}
	if _, ok := s.AddTask("overflow", 0, noop); ok {
		t.Fatal("AddTask succeeded past capacity")
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	c := NewClock(time.Millisecond)
	s := NewScheduler(c, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	_, _ = s.AddTask("count", 0, TaskFunc(func() error {
		steps++
		if steps == 3 {
			cancel()
		}
		return nil
	}))

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestSchedulerRecoversTaskPanic(t *testing.T) {
	s := NewScheduler(NewClock(time.Millisecond), time.Millisecond)
	_, _ = s.AddTask("redraw", 0, TaskFunc(func() error { panic("bad edge") }))

	err := s.Step()
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Step error = %v, want *PanicError", err)
	}
	if pe.Task != "redraw" || pe.Value != "bad edge" {
		t.Fatalf("PanicError = %+v", pe)
	}
}
