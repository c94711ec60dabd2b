package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/altcat/internal/utils"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Options configures the shared outbound client.
type Options struct {
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64 // <= 0 means unlimited
}

// Client wraps resty with an optional rate limiter. It never retries:
// callers decide whether to re-issue a request.
type Client struct {
	resty     *resty.Client
	limiter   *rate.Limiter
	userAgent string
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	r := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(0)
	if opts.UserAgent != "" {
		r.SetHeader("User-Agent", opts.UserAgent)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{resty: r, limiter: limiter, userAgent: opts.UserAgent}
}

// Get fetches url and returns at most maxBytes of body (0 = unbounded).
// Non-2xx responses come back as *StatusError; an oversized body is an error.
func (c *Client) Get(ctx context.Context, url string, maxBytes int64) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := c.resty.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, err
	}
	body := resp.RawBody()
	defer utils.Try(body.Close)

	if !resp.IsSuccess() {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}

	var src io.Reader = body
	if maxBytes > 0 {
		src = io.LimitReader(body, maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, tooLarge(url, maxBytes)
	}
	return data, nil
}

// HTTPClient returns a client for streaming downloads. It shares the
// connection pool and User-Agent with Get but has no overall timeout:
// package transfers are bounded by their context instead.
func (c *Client) HTTPClient() HTTPClient {
	rt := c.resty.GetClient().Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	if c.userAgent != "" {
		rt = &userAgentTransport{base: rt, agent: c.userAgent}
	}
	return &http.Client{Transport: rt}
}
