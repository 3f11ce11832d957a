package markerboard

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/phanxgames/markerboard/internal/logging"
)

// maxImageBytes caps a background download.
const maxImageBytes = 64 << 20

// BackgroundLoader fetches and decodes background images off the caller's
// goroutine and reports each result through done.
type BackgroundLoader interface {
	Load(url string, done func(url string, img image.Image))
}

// HTTPImageLoader loads http(s) URLs, file:// URLs and bare local paths.
// Failures are logged and reported as a nil image.
type HTTPImageLoader struct {
	Client  *http.Client
	Timeout time.Duration
}

// Load implements BackgroundLoader.
func (l *HTTPImageLoader) Load(url string, done func(url string, img image.Image)) {
	go func() {
		img, err := l.fetch(url)
		if err != nil {
			logging.Warn().Err(err).Str("url", url).Msg("background load failed")
			done(url, nil)
			return
		}
		b := img.Bounds()
		logging.Info().Str("url", url).Int("width", b.Dx()).Int("height", b.Dy()).Msg("background loaded")
		done(url, img)
	}()
}

func (l *HTTPImageLoader) fetch(url string) (image.Image, error) {
	rc, err := l.open(url)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, format, err := image.Decode(io.LimitReader(rc, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	logging.Debug().Str("url", url).Str("format", format).Msg("decoded background")
	return img, nil
}

func (l *HTTPImageLoader) open(url string) (io.ReadCloser, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		f, err := os.Open(strings.TrimPrefix(url, "file://"))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", url, err)
		}
		return f, nil
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	ctx := context.Background()
	var cancel context.CancelFunc = func() {}
	if l.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create image request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("fetch %s: %w: %d", url, ErrUnexpectedStatus, resp.StatusCode)
	}
	return cancelOnClose{resp.Body, cancel}, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
