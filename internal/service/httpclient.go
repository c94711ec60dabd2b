package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/altcat/internal/utils"
)

// ErrTooLarge is wrapped by every error for a body above its size cap.
var ErrTooLarge = errors.New("response too large")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// ProgressFunc receives the cumulative bytes written and the expected total
// (-1 when the server did not announce a length).
type ProgressFunc func(written, expected int64)

// DownloadToFile streams url into dst, reporting progress after every chunk.
// The body lands in dst+".part" first and is renamed only once complete. A
// body above maxSize (when > 0) fails and leaves nothing behind.
func DownloadToFile(ctx context.Context, c HTTPClient, url, dst string, maxSize int64, progress ProgressFunc) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return 0, err
	}
	defer utils.Try(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	if maxSize > 0 && resp.ContentLength > maxSize {
		return 0, tooLarge(url, maxSize)
	}

	var src io.Reader = resp.Body
	if maxSize > 0 {
		src = &cappedReader{r: io.LimitReader(resp.Body, maxSize+1), max: maxSize, url: url}
	}
	src = &progressReader{r: src, expected: resp.ContentLength, report: progress}

	return utils.WriteFileAtomic(dst+".part", dst, src)
}

func tooLarge(url string, max int64) error {
	return fmt.Errorf("response from %s exceeds %s: %w", url, utils.HumanSize(max), ErrTooLarge)
}

type progressReader struct {
	r        io.Reader
	written  int64
	expected int64
	report   ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.written += int64(n)
		if p.report != nil {
			p.report(p.written, p.expected)
		}
	}
	return n, err
}

// cappedReader fails as soon as more than max bytes were read.
type cappedReader struct {
	r    io.Reader
	read int64
	max  int64
	url  string
}

func (c *cappedReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	c.read += int64(n)
	if c.read > c.max {
		return n, tooLarge(c.url, c.max)
	}
	return n, err
}

// userAgentTransport sets User-Agent on requests that do not carry one.
type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.agent)
	}
	return t.base.RoundTrip(req)
}
