package ui

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"oledwire/hal"
	"oledwire/kernel"
	"oledwire/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePanel struct {
	frames [][]byte
}

func (p *fakePanel) Present(_, _, _, _ int, fb []byte) error {
	p.frames = append(p.frames, append([]byte(nil), fb...))
	return nil
}

type fakeSensors struct {
	st  hal.Stats
	err error
}

func (s *fakeSensors) Sample() (hal.Stats, error) { return s.st, s.err }

func newTestScreen(t *testing.T, sc *scene.Scene) (*Screen, *fakePanel, *kernel.Mutex) {
	t.Helper()
	panel := &fakePanel{}
	mu := kernel.NewMutex()
	s, err := NewScreen(Config{
		Width:  128,
		Height: 64,
		Wait:   2 * time.Millisecond,
		Mutex:  mu,
		Scene:  sc,
		Panel:  panel,
	})
	require.NoError(t, err)
	return s, panel, mu
}

func litPixels(pix []byte) int {
	n := 0
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] == 0xFF {
			n++
		}
	}
	return n
}

func TestRedrawRendersAndAnimates(t *testing.T) {
	sc := scene.NewDefault(128, 64)
	s, _, _ := newTestScreen(t, sc)

	require.NoError(t, s.Redraw())
	assert.Greater(t, litPixels(s.Canvas().Pix()), 100)
	for i, o := range sc.Objects() {
		assert.InDelta(t, 0.1+0.01*float64(i), float64(o.Rotation.X), 1e-6)
	}
	assert.Equal(t, uint64(1), s.Stats().Rendered)
}

func TestRedrawLockTimeoutLeavesCanvasUntouched(t *testing.T) {
	sc := scene.NewDefault(128, 64)
	s, _, mu := newTestScreen(t, sc)
	require.NoError(t, s.Redraw())
	before := append([]byte(nil), s.Canvas().Pix()...)
	rot := sc.Objects()[0].Rotation

	g, ok := mu.Acquire(0)
	require.True(t, ok)
	require.NoError(t, s.Redraw())
	g.Release()

	assert.True(t, bytes.Equal(before, s.Canvas().Pix()), "canvas changed under a held lock")
	assert.Equal(t, rot, sc.Objects()[0].Rotation, "skipped frame must not animate")
	assert.Equal(t, uint64(1), s.Stats().DroppedRedraws)
}

func TestRefreshPresentsLabelOnBlankScene(t *testing.T) {
	sc := scene.New(128, 64, scene.DefaultCamera(), scene.DefaultFOV)
	s, panel, _ := newTestScreen(t, sc)

	require.NoError(t, s.Redraw())
	require.NoError(t, s.Refresh())
	require.Len(t, panel.frames, 1)

	fb := s.Flusher().Framebuffer()
	lit := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 128; x++ {
			if !fb.Get(x, y) {
				continue
			}
			lit++
			assert.Less(t, y, 16, "pixel (%d,%d) outside the label band", x, y)
		}
	}
	assert.Greater(t, lit, 0, "label not drawn")

	st := s.Stats()
	assert.Equal(t, uint64(1), st.Flushed)
	assert.Equal(t, uint64(1), st.Ready)
}

func TestRefreshAlternatesBuffers(t *testing.T) {
	s, panel, _ := newTestScreen(t, scene.NewDefault(128, 64))
	require.NoError(t, s.Redraw())
	require.NoError(t, s.Refresh())
	first := s.active
	require.NoError(t, s.Refresh())
	assert.NotEqual(t, first, s.active)
	require.Len(t, panel.frames, 2)
	assert.Equal(t, panel.frames[0], panel.frames[1], "same canvas, same frame")
}

func TestRefreshLockTimeoutDropsFrame(t *testing.T) {
	s, panel, mu := newTestScreen(t, scene.NewDefault(128, 64))
	g, _ := mu.Acquire(0)
	require.NoError(t, s.Refresh())
	g.Release()

	assert.Empty(t, panel.frames)
	assert.Equal(t, uint64(1), s.Stats().DroppedFlushes)
}

func TestSetStatusTimeoutKeepsText(t *testing.T) {
	s, _, mu := newTestScreen(t, scene.NewDefault(128, 64))
	assert.Equal(t, InitialStatus, s.Status())

	g, _ := mu.Acquire(0)
	assert.False(t, s.SetStatus("M: 1% T: 2C"))
	g.Release()
	assert.Equal(t, InitialStatus, s.Status())

	assert.True(t, s.SetStatus("M: 1% T: 2C"))
	assert.Equal(t, "M: 1% T: 2C", s.Status())
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "M: 42% T: 37C", FormatStatus(hal.Stats{UsedMemPercent: 42, TemperatureC: 36.6}))
	assert.Equal(t, "M: -% T: -C", FormatStatus(hal.Stats{UsedMemPercent: -1, TemperatureC: float32(math.NaN())}))
}

func TestStatusRefresh(t *testing.T) {
	s, _, _ := newTestScreen(t, scene.NewDefault(128, 64))
	sensors := &fakeSensors{st: hal.Stats{UsedMemPercent: 12, TemperatureC: 40}}
	st := NewStatus(s, sensors, nil)

	require.NoError(t, st.Refresh())
	assert.Equal(t, "M: 12% T: 40C", s.Status())

	sensors.err = errors.New("adc busy")
	sensors.st.UsedMemPercent = 99
	require.NoError(t, st.Refresh())
	assert.Equal(t, "M: 12% T: 40C", s.Status())
}
