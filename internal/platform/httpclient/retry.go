package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jsamuelsen11/consul-registrar/internal/platform/logging"
)

// jitterFraction is the maximum jitter as a fraction of the delay (±25%).
const jitterFraction = 0.25

// Policy selects how many attempts a single request gets.
type Policy int

const (
	// PolicyRetry applies the configured attempts and backoff. Registry
	// reads (service listings, health queries) use it.
	PolicyRetry Policy = iota

	// PolicyOnce sends the request exactly once. Registry writes use it:
	// a failed register, pass or fail is reported to the caller, which owns
	// the recovery (self-heal, the next heartbeat tick).
	PolicyOnce
)

func (p Policy) String() string {
	switch p {
	case PolicyRetry:
		return "retry"
	case PolicyOnce:
		return "once"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

type policyKey struct{}

// WithPolicy returns a copy of ctx that makes [Client.Do] apply p to every
// request sent with it.
func WithPolicy(ctx context.Context, p Policy) context.Context {
	return context.WithValue(ctx, policyKey{}, p)
}

// PolicyFromContext returns the policy carried by ctx, or [PolicyRetry].
func PolicyFromContext(ctx context.Context) Policy {
	if p, ok := ctx.Value(policyKey{}).(Policy); ok {
		return p
	}
	return PolicyRetry
}

// attempts is the number of sends the policy in ctx allows.
func (rc retryConfig) attempts(ctx context.Context) int {
	if PolicyFromContext(ctx) == PolicyOnce {
		return 1
	}
	return rc.maxAttempts
}

// send executes req under the policy carried by ctx. Bodies are buffered so
// a retried request replays them. The result is written to resp rather than
// returned to keep the bodyclose linter quiet; the caller closes the body.
//
// When the last attempt ends in a retryable status, resp holds that response
// with its body open and the returned error describes the status.
func (c *Client) send(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retryCfg.maxAttempts <= 0 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retryCfg.maxAttempts)
	}
	attempts := c.retryCfg.attempts(ctx)

	body, err := bufferRequestBody(req)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := range attempts {
		if attempt > 0 {
			if err := c.waitForRetry(ctx, req, attempt, attempts, lastErr); err != nil {
				return err
			}
		}
		resetRequestBody(req, body)

		r, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			lastErr = err
			if !isRetryable(err) {
				return err
			}
		case !isRetryableStatus(r.StatusCode):
			*resp = r
			return nil
		case attempt == attempts-1:
			*resp = r
			return fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName)
		default:
			lastErr = fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName)
			drainResponseBody(r)
		}
	}

	return lastErr
}

// bufferRequestBody reads and closes the request body so it can be replayed.
// Returns nil if the body is nil.
func bufferRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	_ = req.Body.Close()
	return b, nil
}

// resetRequestBody installs a fresh reader over the buffered bytes.
func resetRequestBody(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
}

// drainResponseBody discards the body so the connection can be reused.
func drainResponseBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// waitForRetry logs the upcoming attempt and sleeps for its backoff, or
// returns early when ctx ends.
func (c *Client) waitForRetry(ctx context.Context, req *http.Request, attempt, attempts int, lastErr error) error {
	delay := c.retryCfg.backoff(attempt)

	logging.FromContext(ctx).WarnContext(ctx, "retrying registry read",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("peer_service", c.serviceName),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", attempts),
		slog.Duration("backoff", delay),
		slog.Any("error", lastErr),
	)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoff returns the delay before retry number attempt (1 is the first
// retry): initialInterval * multiplier^(attempt-1), capped at maxInterval,
// then jittered by ±25%.
func (rc retryConfig) backoff(attempt int) time.Duration {
	delay := float64(rc.initialInterval) * math.Pow(rc.multiplier, float64(attempt-1))
	delay = math.Min(delay, float64(rc.maxInterval))

	jitter := delay * jitterFraction
	delay += jitter * (2*rand.Float64() - 1) //nolint:gosec // jitter does not need a CSPRNG

	return time.Duration(math.Max(delay, 0))
}

// isRetryable reports whether a transport error is worth another attempt.
// Everything except context cancellation and deadline expiry is.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableStatus reports whether the agent's answer is transient: 429 or
// any 5xx.
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}
