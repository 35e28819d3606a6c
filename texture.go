package wander

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	// Decoders for the formats the asset set uses.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ImageLoadError reports a failed fetch or decode for one asset. It is
// recoverable per-asset: callers substitute a placeholder and continue.
type ImageLoadError struct {
	URL string
	Err error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("load image %q: %v", e.URL, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// FetchFunc retrieves raw image bytes for a URL or file path.
type FetchFunc func(url string) ([]byte, error)

// LoadCallback receives the result of an asynchronous image load. It
// is always invoked on the game-loop thread, during Poll.
type LoadCallback func(Sprite, error)

type pendingUpload struct {
	url string
	img *image.RGBA
	err error
}

// TextureLoader loads images into GPU textures with a URL-keyed cache.
// Repeated loads of the same URL return the same texture handle and
// fetch at most once, including concurrent in-flight loads.
//
// Fetching and decoding happen off-thread for asynchronous loads, but
// GPU uploads only ever happen on the game-loop thread: either inside
// a synchronous LoadImage call or inside Poll. Loads are never
// cancelled or timed out; an unreachable asset stays in flight
// indefinitely.
type TextureLoader struct {
	device Device
	fetch  FetchFunc

	mu       sync.Mutex
	cache    map[string]Sprite
	fetches  map[string]int // per-URL fetch count, for cache accounting
	inflight map[string][]LoadCallback
	pending  []pendingUpload

	owned []TextureID // every texture created, for Dispose
}

// NewTextureLoader creates a loader backed by the given device. If
// fetch is nil, URLs beginning with http:// or https:// are fetched
// over HTTP and everything else is read from the filesystem.
func NewTextureLoader(device Device, fetch FetchFunc) *TextureLoader {
	if fetch == nil {
		fetch = defaultFetch
	}
	return &TextureLoader{
		device:   device,
		fetch:    fetch,
		cache:    make(map[string]Sprite),
		fetches:  make(map[string]int),
		inflight: make(map[string][]LoadCallback),
	}
}

func defaultFetch(url string) ([]byte, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		resp, err := http.Get(url)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(url)
}

// LoadImage fetches, decodes, and uploads an image, returning a sprite
// whose UV spans the full texture. Must be called from the game-loop
// thread. A failed fetch or decode returns an *ImageLoadError; the
// loader never substitutes a placeholder on its own.
//
// If an asynchronous load of the same URL is already in flight, this
// joins it and drives Poll until it completes, so the URL still
// fetches and uploads exactly once.
func (l *TextureLoader) LoadImage(url string) (Sprite, error) {
	l.mu.Lock()
	if s, ok := l.cache[url]; ok {
		l.mu.Unlock()
		return s, nil
	}
	if len(l.inflight[url]) > 0 {
		var (
			done    bool
			result  Sprite
			loadErr error
		)
		l.inflight[url] = append(l.inflight[url], func(s Sprite, err error) {
			result, loadErr = s, err
			done = true
		})
		l.mu.Unlock()
		for !done {
			l.Poll()
			if !done {
				time.Sleep(time.Millisecond)
			}
		}
		return result, loadErr
	}
	l.fetches[url]++
	l.mu.Unlock()

	img, err := l.fetchDecode(url)
	if err != nil {
		return Sprite{}, err
	}
	return l.upload(url, img)
}

// LoadImageAsync starts a load without blocking the frame loop. The
// fetch and decode run on their own goroutine; the GPU upload and the
// callback are deferred to a later Poll on the game-loop thread, so
// the sprite becomes available after an arbitrary number of frames.
// Callers should draw a placeholder or skip drawing until then.
func (l *TextureLoader) LoadImageAsync(url string, cb LoadCallback) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.cache[url]; ok {
		// Already resolved: deliver on the loop thread with everything
		// else rather than invoking the callback reentrantly.
		l.pending = append(l.pending, pendingUpload{url: url})
		l.inflight[url] = append(l.inflight[url], cb)
		return
	}

	waiting := l.inflight[url]
	l.inflight[url] = append(waiting, cb)
	if len(waiting) > 0 {
		return // a fetch for this URL is already in flight
	}

	l.fetches[url]++
	go func() {
		img, err := l.fetchDecode(url)
		l.mu.Lock()
		l.pending = append(l.pending, pendingUpload{url: url, img: img, err: err})
		l.mu.Unlock()
	}()
}

// Poll completes any finished asynchronous loads: uploads decoded
// pixels to the GPU and invokes waiting callbacks. Call once per tick
// from the game-loop thread.
func (l *TextureLoader) Poll() {
	l.mu.Lock()
	done := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, p := range done {
		var s Sprite
		err := p.err
		if err == nil && p.img != nil {
			s, err = l.upload(p.url, p.img)
		} else if err == nil {
			// Cache-hit delivery queued by LoadImageAsync.
			l.mu.Lock()
			s = l.cache[p.url]
			l.mu.Unlock()
		}

		l.mu.Lock()
		waiters := l.inflight[p.url]
		delete(l.inflight, p.url)
		l.mu.Unlock()

		if err != nil {
			logWarnf("image load failed: %v", err)
		}
		for _, cb := range waiters {
			cb(s, err)
		}
	}
}

func (l *TextureLoader) fetchDecode(url string) (*image.RGBA, error) {
	data, err := l.fetch(url)
	if err != nil {
		return nil, &ImageLoadError{URL: url, Err: err}
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageLoadError{URL: url, Err: err}
	}
	return toRGBA(src), nil
}

func (l *TextureLoader) upload(url string, img *image.RGBA) (Sprite, error) {
	tex, err := l.device.CreateTexture(img)
	if err != nil {
		return Sprite{}, &ImageLoadError{URL: url, Err: err}
	}
	b := img.Bounds()
	s := FullTexture(tex, float32(b.Dx()), float32(b.Dy()))

	l.mu.Lock()
	l.cache[url] = s
	l.owned = append(l.owned, tex)
	l.mu.Unlock()
	return s, nil
}

// CreateSolidColor creates a 1x1 sprite of the given color. Always
// succeeds as long as the device can allocate a texture; used for
// art-asset-free development.
func (l *TextureLoader) CreateSolidColor(c Color) (Sprite, error) {
	return l.CreateFromImage(solidImage(1, 1, c))
}

// CreatePlaceholder creates a w x h checkerboard sprite in the given
// color, distinguishable from real art at a glance.
func (l *TextureLoader) CreatePlaceholder(w, h int, c Color) (Sprite, error) {
	img := solidImage(w, h, c)
	dim := Color{R: c.R * 0.6, G: c.G * 0.6, B: c.B * 0.6, A: c.A}
	const cell = 8
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 1 {
				setPixel(img, x, y, dim)
			}
		}
	}
	return l.CreateFromImage(img)
}

// CreateFromImage uploads an already-decoded image. Procedurally
// generated sprites enter through here so entity code never
// distinguishes them from file-loaded assets.
func (l *TextureLoader) CreateFromImage(img *image.RGBA) (Sprite, error) {
	tex, err := l.device.CreateTexture(img)
	if err != nil {
		return Sprite{}, err
	}
	l.mu.Lock()
	l.owned = append(l.owned, tex)
	l.mu.Unlock()
	b := img.Bounds()
	return FullTexture(tex, float32(b.Dx()), float32(b.Dy())), nil
}

// FetchCount returns how many fetches were issued for a URL.
func (l *TextureLoader) FetchCount(url string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fetches[url]
}

// Dispose releases every texture this loader created. Safe to call
// once at shutdown, from the game-loop thread.
func (l *TextureLoader) Dispose() {
	l.mu.Lock()
	owned := l.owned
	l.owned = nil
	l.cache = make(map[string]Sprite)
	l.mu.Unlock()

	for _, tex := range owned {
		l.device.DeleteTexture(tex)
	}
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func solidImage(w, h int, c Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setPixel(img, x, y, c)
		}
	}
	return img
}

func setPixel(img *image.RGBA, x, y int, c Color) {
	i := img.PixOffset(x, y)
	img.Pix[i+0] = uint8(clampf(c.R, 0, 1) * 255)
	img.Pix[i+1] = uint8(clampf(c.G, 0, 1) * 255)
	img.Pix[i+2] = uint8(clampf(c.B, 0, 1) * 255)
	img.Pix[i+3] = uint8(clampf(c.A, 0, 1) * 255)
}
