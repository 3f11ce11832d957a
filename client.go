package markerboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/phanxgames/markerboard/internal/logging"
)

// ErrUnexpectedStatus wraps any non-200 answer from the server.
var ErrUnexpectedStatus = errors.New("unexpected status")

// maxStateBytes caps a listen response body.
const maxStateBytes = 16 << 20

// Client talks to the two document endpoints for one page key.
type Client struct {
	baseURL    string
	pageKey    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL (scheme and host, no trailing
// path) and pageKey. A nil httpClient uses one without a timeout, since
// listen requests are held open by the server.
func NewClient(baseURL, pageKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageKey:    pageKey,
		httpClient: httpClient,
	}
}

// Listen blocks until the server holds a snapshot newer than version and
// returns it.
func (c *Client) Listen(ctx context.Context, version int64) (ViewState, error) {
	u := fmt.Sprintf("%s/listen/%s?p=%s", c.baseURL, url.PathEscape(c.pageKey), strconv.FormatInt(version, 10))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ViewState{}, fmt.Errorf("create listen request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ViewState{}, fmt.Errorf("listen: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return ViewState{}, fmt.Errorf("listen: %w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxStateBytes))
	if err != nil {
		return ViewState{}, fmt.Errorf("read listen response: %w", err)
	}
	st, err := DecodeViewState(body)
	if err != nil {
		return ViewState{}, fmt.Errorf("listen: %w", err)
	}
	return st, nil
}

// Push posts one update and waits for the server to accept it.
func (c *Client) Push(ctx context.Context, u Update) error {
	body, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal %s update: %w", u.UpdateType(), err)
	}
	endpoint := fmt.Sprintf("%s/update/%s", c.baseURL, url.PathEscape(c.pageKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push %s: %w", u.UpdateType(), err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push %s: %w: %d", u.UpdateType(), ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// Pusher sends updates without waiting for them.
type Pusher interface {
	Push(u Update)
}

// AsyncPusher sends each update on its own goroutine. There is no retry and
// no ordering between updates; failures are logged and counted.
type AsyncPusher struct {
	Client  *Client
	Timeout time.Duration
	Metrics *Metrics
}

// Push starts sending u and returns immediately.
func (p *AsyncPusher) Push(u Update) {
	go func() {
		ctx := context.Background()
		if p.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.Timeout)
			defer cancel()
		}
		err := p.Client.Push(ctx, u)
		p.Metrics.push(u.UpdateType(), err)
		if err != nil {
			logging.Warn().Err(err).Str("type", u.UpdateType()).Msg("push failed")
			return
		}
		logging.Debug().Str("type", u.UpdateType()).Msg("pushed update")
	}()
}
