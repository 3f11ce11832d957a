package markerboard

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type loadResult struct {
	url string
	img image.Image
}

func loadSync(t *testing.T, l BackgroundLoader, url string) loadResult {
	t.Helper()
	ch := make(chan loadResult, 1)
	l.Load(url, func(u string, img image.Image) { ch <- loadResult{u, img} })
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatalf("load of %s never completed", url)
		return loadResult{}
	}
}

func TestHTTPImageLoader(t *testing.T) {
	data := encodePNG(t, 4, 3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/map.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(data)
		case "/text":
			_, _ = w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "local.png")
	if err := os.WriteFile(local, data, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		url  string
		ok   bool
	}{
		{"http", srv.URL + "/map.png", true},
		{"local path", local, true},
		{"file url", "file://" + local, true},
		{"not found", srv.URL + "/missing.png", false},
		{"not an image", srv.URL + "/text", false},
		{"missing file", filepath.Join(dir, "nope.png"), false},
	}
	l := &HTTPImageLoader{Client: srv.Client(), Timeout: 5 * time.Second}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := loadSync(t, l, tt.url)
			if r.url != tt.url {
				t.Errorf("callback url = %q, want %q", r.url, tt.url)
			}
			if !tt.ok {
				if r.img != nil {
					t.Error("failed load returned an image")
				}
				return
			}
			if r.img == nil {
				t.Fatal("no image")
			}
			if b := r.img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
				t.Errorf("bounds = %v, want 4x3", b)
			}
		})
	}
}

func TestSessionWithHTTPImageLoader(t *testing.T) {
	data := encodePNG(t, 8, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	s := NewSession(SessionOptions{
		Controls: &FormControls{},
		Pusher:   &recordingPusher{},
		Loader:   &HTTPImageLoader{Client: srv.Client()},
	})
	s.Apply(snapshot(1, srv.URL+"/bg.png", nil))

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if img, _ := s.Background(); img != nil {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("background never loaded")
}
