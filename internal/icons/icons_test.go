package icons

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeGetter struct {
	data  []byte
	err   error
	gate  chan struct{}
	calls atomic.Int32
}

func (f *fakeGetter) Get(ctx context.Context, _ string, _ int64) ([]byte, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.data, f.err
}

func requestConcurrently(c *Cache, uri string, n int) []CachedImage {
	results := make([]CachedImage, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Load(context.Background(), uri)
		}(i)
	}
	wg.Wait()
	return results
}

func TestDecode(t *testing.T) {
	img, format, err := Decode(pngBytes(t, 4, 3))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	_, _, err = Decode([]byte("<html>not an icon</html>"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	truncated := pngBytes(t, 8, 8)[:40]
	_, _, err = Decode(truncated)
	assert.Error(t, err)
}

func TestRequest_SuccessIsCached(t *testing.T) {
	g := &fakeGetter{data: pngBytes(t, 2, 2)}
	c := NewCache(g, 0, 0)

	_, ok := c.Get("https://icons/a.png")
	assert.False(t, ok)

	res := c.Load(context.Background(), "https://icons/a.png")
	assert.False(t, res.Placeholder())
	assert.Equal(t, "png", res.Format)

	cached, ok := c.Get("https://icons/a.png")
	require.True(t, ok)
	assert.Equal(t, res.Image, cached.Image)

	c.Load(context.Background(), "https://icons/a.png")
	assert.Equal(t, int32(1), g.calls.Load())
}

func TestRequest_ConcurrentRequestersShareOneFetch(t *testing.T) {
	g := &fakeGetter{data: pngBytes(t, 2, 2), gate: make(chan struct{})}
	c := NewCache(g, 0, 0)

	done := make(chan []CachedImage)
	go func() { done <- requestConcurrently(c, "https://icons/a.png", 2) }()

	time.Sleep(30 * time.Millisecond)
	close(g.gate)
	results := <-done

	assert.Equal(t, int32(1), g.calls.Load())
	for _, r := range results {
		assert.False(t, r.Placeholder())
	}
	assert.Equal(t, results[0].Image, results[1].Image)
}

func TestRequest_FailureCachedAsSentinel(t *testing.T) {
	g := &fakeGetter{err: errors.New("connection refused"), gate: make(chan struct{})}
	c := NewCache(g, 0, 0)

	done := make(chan []CachedImage)
	go func() { done <- requestConcurrently(c, "https://icons/broken.png", 2) }()

	time.Sleep(30 * time.Millisecond)
	close(g.gate)
	results := <-done

	assert.Equal(t, int32(1), g.calls.Load())
	for _, r := range results {
		assert.True(t, r.Failed)
		assert.True(t, r.Placeholder())
	}

	cached, ok := c.Get("https://icons/broken.png")
	require.True(t, ok)
	assert.True(t, cached.Failed)

	again := c.Load(context.Background(), "https://icons/broken.png")
	assert.True(t, again.Failed)
	assert.Equal(t, int32(1), g.calls.Load(), "failed URIs are not retried")
}

func TestRequest_DecodeFailureCached(t *testing.T) {
	g := &fakeGetter{data: []byte("not an image")}
	c := NewCache(g, 0, 0)

	res := c.Load(context.Background(), "https://icons/text.png")
	assert.True(t, res.Failed)
	assert.ErrorIs(t, res.Err, ErrUnsupportedImage)
	assert.Equal(t, 1, c.Len())
}

func TestRequest_EmptyURI(t *testing.T) {
	g := &fakeGetter{data: pngBytes(t, 1, 1)}
	c := NewCache(g, 0, 0)

	res := c.Load(context.Background(), "")
	assert.True(t, res.Failed)
	assert.ErrorIs(t, res.Err, ErrNoIcon)
	assert.Zero(t, g.calls.Load())
	assert.Zero(t, c.Len())
}

func TestRequest_CancelledCallerDoesNotPoisonCache(t *testing.T) {
	g := &fakeGetter{data: pngBytes(t, 2, 2), gate: make(chan struct{})}
	c := NewCache(g, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	ch := c.Request(ctx, "https://icons/a.png")
	cancel()

	res := <-ch
	assert.True(t, res.Failed)
	assert.ErrorIs(t, res.Err, context.Canceled)

	close(g.gate)
	final := c.Load(context.Background(), "https://icons/a.png")
	assert.False(t, final.Placeholder())
	assert.Equal(t, int32(1), g.calls.Load())
}

func TestRequest_ChannelClosedAfterValue(t *testing.T) {
	c := NewCache(&fakeGetter{data: pngBytes(t, 1, 1)}, 0, 0)
	ch := c.Request(context.Background(), "https://icons/a.png")
	<-ch
	_, open := <-ch
	assert.False(t, open)
}

func TestCache_TTLEvicts(t *testing.T) {
	g := &fakeGetter{err: errors.New("boom")}
	c := NewCache(g, 0, 50*time.Millisecond)

	c.Load(context.Background(), "https://icons/a.png")
	_, ok := c.Get("https://icons/a.png")
	require.True(t, ok)

	time.Sleep(120 * time.Millisecond)
	_, ok = c.Get("https://icons/a.png")
	assert.False(t, ok)

	c.Load(context.Background(), "https://icons/a.png")
	assert.Equal(t, int32(2), g.calls.Load())
}
