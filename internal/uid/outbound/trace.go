package outbound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkglog"
)

// DefaultTraceURL answers from the nearest edge in a few milliseconds and,
// unlike most endpoints, exposes the time in the body rather than a header.
const DefaultTraceURL = "https://cloudflare.com/cdn-cgi/trace"

const maxTraceBody = 16 * 1024

// ErrNoTimestamp is returned when the trace body has no ts= line.
var ErrNoTimestamp = errors.New("trace: no ts line in response")

var tsLine = regexp.MustCompile(`(?m)^ts=(\d{10}(?:\.\d+)?)\r?$`)

type TraceConfig struct {
	URL         string
	Timeout     time.Duration
	MaxRetries  uint64
	BaseBackoff time.Duration
	Client      *http.Client
}

// TraceClient reads the current Unix time from a Cloudflare trace endpoint.
type TraceClient struct {
	url         string
	timeout     time.Duration
	maxRetries  uint64
	baseBackoff time.Duration
	client      *http.Client
}

func NewTraceClient(cfg TraceConfig) *TraceClient {
	url := cfg.URL
	if url == "" {
		url = DefaultTraceURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 200 * time.Millisecond
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}

	return &TraceClient{
		url:         url,
		timeout:     timeout,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: baseBackoff,
		client:      client,
	}
}

// UnixSeconds returns the remote time in seconds, possibly fractional.
//
// Transport errors and non-2xx answers are retried with exponential backoff;
// a body without a timestamp is not.
func (c *TraceClient) UnixSeconds(ctx context.Context) (float64, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.baseBackoff
	policy.MaxElapsedTime = 0

	var sec float64
	op := func() error {
		v, err := c.fetch(ctx)
		if err != nil {
			return err
		}
		sec = v
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return 0, err
	}
	return sec, nil
}

func (c *TraceClient) fetch(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, backoff.Permanent(err)
	}
	if cid := pkglog.GetCorrelationID(ctx); cid != "" {
		req.Header.Set("X-Correlation-ID", cid)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTraceBody))
	if err != nil {
		return 0, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("trace: unexpected status %d", resp.StatusCode)
	}

	sec, err := ParseTrace(body)
	if err != nil {
		return 0, backoff.Permanent(err)
	}
	return sec, nil
}

// ParseTrace extracts the ts= value of a trace body such as
//
//	fl=29f1
//	h=cloudflare.com
//	ts=1758014351.022
func ParseTrace(body []byte) (float64, error) {
	m := tsLine.FindSubmatch(body)
	if m == nil {
		return 0, ErrNoTimestamp
	}

	sec, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("trace: parse ts: %w", err)
	}
	return sec, nil
}
