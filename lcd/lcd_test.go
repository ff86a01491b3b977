package lcd

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"oledwire/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type presentCall struct {
	x, y, w, h int
	fb         []byte
}

type fakePanel struct {
	calls []presentCall
	err   error
}

func (p *fakePanel) Present(x, y, w, h int, fb []byte) error {
	if p.err != nil {
		return p.err
	}
	p.calls = append(p.calls, presentCall{x, y, w, h, append([]byte(nil), fb...)})
	return nil
}

func newTestFlusher(t *testing.T, panel Presenter, mu *kernel.Mutex, ready *int) *Flusher {
	t.Helper()
	f, err := NewFlusher(FlusherConfig{
		Mutex:   mu,
		Wait:    2 * time.Millisecond,
		Panel:   panel,
		Width:   128,
		Height:  64,
		OnReady: func() { *ready++ },
	})
	require.NoError(t, err)
	return f
}

func filledBitmap(w, h int, v byte) []byte {
	b := NewBitmap(w, h).Bytes()
	for i := PaletteSize; i < len(b); i++ {
		b[i] = v
	}
	return b
}

func TestFramebufferPageLayout(t *testing.T) {
	fb, err := NewFramebuffer(128, 64)
	require.NoError(t, err)
	require.Len(t, fb.Bytes(), 1024)

	fb.Set(5, 0, true)
	fb.Set(5, 7, true)
	fb.Set(5, 9, true)
	assert.Equal(t, byte(0x81), fb.Bytes()[5])
	assert.Equal(t, byte(0x02), fb.Bytes()[128+5])
	assert.True(t, fb.Get(5, 9))

	fb.Set(5, 0, false)
	assert.Equal(t, byte(0x80), fb.Bytes()[5])

	fb.Set(-1, 0, true)
	fb.Set(128, 0, true)
	fb.Set(0, 64, true)
	assert.False(t, fb.Get(128, 0))
}

func TestFramebufferRejectsPartialPage(t *testing.T) {
	_, err := NewFramebuffer(128, 60)
	assert.ErrorIs(t, err, ErrBadArea)
}

func TestBitmapPaletteAndBitOrder(t *testing.T) {
	b := NewBitmap(10, 2)
	require.Len(t, b.Bytes(), PaletteSize+2*2)
	assert.Equal(t, palette[:], b.Bytes()[:PaletteSize])

	b.Set(0, 0, true)
	b.Set(9, 1, true)
	rows := b.Bytes()[PaletteSize:]
	assert.Equal(t, []byte{0x80, 0x00, 0x00, 0x40}, rows)
	assert.True(t, b.Get(9, 1))
	assert.False(t, b.Get(1, 0))
}

func TestBitmapDrawImageThreshold(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	img.SetRGBA(1, 0, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF})
	img.SetRGBA(2, 0, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x00})
	img.SetRGBA(3, 0, color.RGBA{G: 0xFF, A: 0xFF})

	b := NewBitmap(4, 1)
	b.Set(1, 0, true)
	b.DrawImage(img)

	assert.True(t, b.Get(0, 0))
	assert.False(t, b.Get(1, 0))
	assert.False(t, b.Get(2, 0), "transparent pixels are off")
	assert.True(t, b.Get(3, 0))
}

func TestFlushAllOnes(t *testing.T) {
	panel := &fakePanel{}
	ready := 0
	f := newTestFlusher(t, panel, nil, &ready)

	require.NoError(t, f.Flush(Full(128, 64), filledBitmap(128, 64, 0xFF)))

	for i, v := range f.Framebuffer().Bytes() {
		require.Equalf(t, byte(0xFF), v, "byte %d", i)
	}
	require.Len(t, panel.calls, 1)
	c := panel.calls[0]
	assert.Equal(t, [4]int{0, 0, 128, 64}, [4]int{c.x, c.y, c.w, c.h})
	assert.Equal(t, 1, ready)
	assert.Equal(t, uint64(1), f.Flushed())
}

func TestFlushAllZerosClearsRegion(t *testing.T) {
	panel := &fakePanel{}
	ready := 0
	f := newTestFlusher(t, panel, nil, &ready)

	require.NoError(t, f.Flush(Full(128, 64), filledBitmap(128, 64, 0xFF)))
	require.NoError(t, f.Flush(Full(128, 64), filledBitmap(128, 64, 0x00)))

	for i, v := range f.Framebuffer().Bytes() {
		require.Equalf(t, byte(0), v, "byte %d", i)
	}
}

func TestFlushIsIdempotent(t *testing.T) {
	panel := &fakePanel{}
	ready := 0
	f := newTestFlusher(t, panel, nil, &ready)

	bm := NewBitmap(128, 64)
	for i := 0; i < 64; i++ {
		bm.Set(i*2, i, true)
		bm.Set(127-i, i, true)
	}
	require.NoError(t, f.Flush(Full(128, 64), bm.Bytes()))
	require.NoError(t, f.Flush(Full(128, 64), bm.Bytes()))

	require.Len(t, panel.calls, 2)
	assert.Equal(t, panel.calls[0].fb, panel.calls[1].fb)
	for i := 0; i < 64; i++ {
		assert.True(t, f.Framebuffer().Get(i*2, i))
	}
}

func TestFlushPartialAreaIsRegionRelative(t *testing.T) {
	panel := &fakePanel{}
	ready := 0
	f := newTestFlusher(t, panel, nil, &ready)

	area := Area{X1: 10, Y1: 8, X2: 19, Y2: 9}
	bm := NewBitmap(area.Width(), area.Height())
	bm.Set(0, 0, true)
	bm.Set(9, 1, true)

	require.NoError(t, f.Flush(area, bm.Bytes()))
	fb := f.Framebuffer()
	assert.True(t, fb.Get(10, 8))
	assert.True(t, fb.Get(19, 9))
	assert.False(t, fb.Get(11, 8))
	assert.Equal(t, byte(0x01), fb.Bytes()[128+10])
	assert.Equal(t, byte(0x02), fb.Bytes()[128+19])

	c := panel.calls[0]
	assert.Equal(t, [4]int{10, 8, 10, 2}, [4]int{c.x, c.y, c.w, c.h})
	assert.Len(t, c.fb, 1024, "the whole framebuffer is presented")
}

func TestFlushRejectsBadInput(t *testing.T) {
	panel := &fakePanel{}
	ready := 0
	f := newTestFlusher(t, panel, nil, &ready)

	err := f.Flush(Area{X1: 0, Y1: 0, X2: 128, Y2: 63}, filledBitmap(129, 64, 0xFF))
	assert.ErrorIs(t, err, ErrBadArea)

	err = f.Flush(Full(128, 64), make([]byte, PaletteSize+10))
	assert.ErrorIs(t, err, ErrShortBitmap)

	assert.Empty(t, panel.calls)
	assert.Zero(t, ready)
}

func TestFlushPresentFailurePropagates(t *testing.T) {
	hwErr := errors.New("i2c nack")
	panel := &fakePanel{err: hwErr}
	mu := kernel.NewMutex()
	ready := 0
	f := newTestFlusher(t, panel, mu, &ready)

	err := f.Flush(Full(128, 64), filledBitmap(128, 64, 0xFF))
	require.ErrorIs(t, err, hwErr)

	g, ok := mu.Acquire(0)
	assert.True(t, ok, "lock released after a failed present")
	g.Release()
}

func TestFlushLockTimeoutDropsFrame(t *testing.T) {
	panel := &fakePanel{}
	mu := kernel.NewMutex()
	ready := 0
	f := newTestFlusher(t, panel, mu, &ready)

	g, ok := mu.Acquire(0)
	require.True(t, ok)
	err := f.Flush(Full(128, 64), filledBitmap(128, 64, 0xFF))
	g.Release()

	require.NoError(t, err)
	assert.Empty(t, panel.calls)
	assert.Equal(t, 1, ready, "frame-ready still fires")
	assert.Equal(t, uint64(1), f.Dropped())
	for _, v := range f.Framebuffer().Bytes() {
		require.Zero(t, v)
	}
}
