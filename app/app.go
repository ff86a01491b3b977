package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"oledwire/hal"
	"oledwire/internal/buildinfo"
	"oledwire/internal/logging"
	"oledwire/kernel"
	"oledwire/scene"
	"oledwire/ui"
)

// Config holds every tunable of the program.
type Config struct {
	Width, Height int

	FOV        float32
	TangentFOV bool

	// Tick is the timer period that advances the logical clock.
	Tick time.Duration
	// Cadence is the scheduler period, the redraw/refresh period and the
	// bound on every lock wait.
	Cadence      time.Duration
	StatusPeriod time.Duration

	LogLevel slog.Level
}

// DefaultConfig matches the firmware defaults.
func DefaultConfig() Config {
	return Config{
		Width:        128,
		Height:       64,
		FOV:          float32(scene.DefaultFOV),
		Tick:         8 * time.Millisecond,
		Cadence:      16 * time.Millisecond,
		StatusPeriod: time.Second,
		LogLevel:     slog.LevelInfo,
	}
}

func (c Config) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0 || c.Height%8 != 0:
		return fmt.Errorf("app: panel %dx%d: height must be a positive multiple of 8", c.Width, c.Height)
	case c.Tick <= 0 || c.Cadence <= 0 || c.StatusPeriod <= 0:
		return errors.New("app: periods must be positive")
	case c.FOV <= 0:
		return fmt.Errorf("app: fov %v must be positive", c.FOV)
	}
	return nil
}

// System is the wired program: clock, scheduler and the screen tasks.
type System struct {
	cfg    Config
	log    *slog.Logger
	panel  hal.Panel
	clock  *kernel.Clock
	sched  *kernel.Scheduler
	scene  *scene.Scene
	screen *ui.Screen
	status *ui.Status
}

// New builds the system on h and starts the tick source. Tasks run only when
// Step or Run is called.
func New(h hal.HAL, cfg Config) (*System, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	panel := h.Panel()
	if panel == nil {
		return nil, errors.New("app: no panel")
	}
	if panel.Width() != cfg.Width || panel.Height() != cfg.Height {
		return nil, fmt.Errorf("app: panel is %dx%d, config wants %dx%d",
			panel.Width(), panel.Height(), cfg.Width, cfg.Height)
	}

	log := logging.New(h.Logger(), cfg.LogLevel)

	sc := scene.NewDefault(cfg.Width, cfg.Height)
	sc.FOV = scene.Scalar(cfg.FOV)
	if cfg.TangentFOV {
		sc.Projection = scene.ProjectTangent
	}

	mu := kernel.NewMutex()
	screen, err := ui.NewScreen(ui.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Wait:   cfg.Cadence,
		Mutex:  mu,
		Scene:  sc,
		Panel:  panel,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	s := &System{
		cfg:    cfg,
		log:    log,
		panel:  panel,
		clock:  kernel.NewClock(cfg.Tick),
		scene:  sc,
		screen: screen,
		status: ui.NewStatus(screen, h.Sensors(), log),
	}
	s.sched = kernel.NewScheduler(s.clock, cfg.Cadence)
	for _, t := range []struct {
		name   string
		period time.Duration
		fn     kernel.TaskFunc
	}{
		{"redraw", cfg.Cadence, screen.Redraw},
		{"refresh", cfg.Cadence, screen.Refresh},
		{"status", cfg.StatusPeriod, s.status.Refresh},
	} {
		if _, ok := s.sched.AddTask(t.name, t.period, t.fn); !ok {
			return nil, fmt.Errorf("app: task table full at %s", t.name)
		}
	}

	if tm := h.Timer(); tm != nil {
		tm.Every(cfg.Tick, s.clock.Tick)
	}

	log.Info("boot",
		"version", buildinfo.Short(),
		"panel", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"fov", cfg.FOV,
		"projection", sc.Projection.String(),
		"cadence", cfg.Cadence,
	)
	return s, nil
}

func (s *System) Logger() *slog.Logger         { return s.log }
func (s *System) Clock() *kernel.Clock         { return s.clock }
func (s *System) Scene() *scene.Scene          { return s.scene }
func (s *System) Screen() *ui.Screen           { return s.screen }
func (s *System) Scheduler() *kernel.Scheduler { return s.sched }

// Step runs every task that is due now. A present failure or a task panic
// paints the halt screen and is returned.
func (s *System) Step() error {
	if err := s.sched.Step(); err != nil {
		s.fail(err)
		return err
	}
	return nil
}

// Run steps the scheduler on its cadence until ctx ends or a task fails.
func (s *System) Run(ctx context.Context) error {
	err := s.sched.Run(ctx)
	if err != nil && ctx.Err() == nil {
		s.fail(err)
	}
	return err
}

func (s *System) fail(err error) {
	st := s.screen.Stats()
	s.log.Error("halt", "err", err,
		"rendered", st.Rendered,
		"flushed", st.Flushed,
		"dropped_redraws", st.DroppedRedraws,
		"dropped_flushes", st.DroppedFlushes,
	)
	var pe *kernel.PanicError
	if errors.As(err, &pe) {
		logStack(s.log, pe.Stack)
	}
	if perr := showHalt(s.panel, err); perr != nil {
		s.log.Error("halt screen", "err", perr)
	}
}

// Factory adapts New to the host runners.
func Factory(cfg Config) hal.AppFactory {
	return func(h hal.HAL) (func() error, error) {
		s, err := New(h, cfg)
		if err != nil {
			return nil, err
		}
		return s.Step, nil
	}
}

// Run starts the program and never returns (TinyGo entrypoint).
func Run(h hal.HAL, cfg Config) {
	s, err := New(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("oledwire: " + err.Error())
		}
		if p := h.Panel(); p != nil {
			_ = showHalt(p, err)
		}
		select {}
	}
	_ = s.Run(context.Background())
	select {}
}
