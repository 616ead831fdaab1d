package consul

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/httpclient"
)

// Requester centralizes the HTTP request lifecycle for Consul calls:
// request creation, JSON marshaling, the datacenter query parameter,
// execution via httpclient.Client, response body cleanup, status
// validation, error translation, and JSON decoding.
type Requester struct {
	client     *httpclient.Client
	datacenter string
	logger     *slog.Logger
}

// NewRequester creates a Requester backed by the given HTTP client. A
// non-empty datacenter is sent as the "dc" query parameter on every call.
func NewRequester(client *httpclient.Client, datacenter string, logger *slog.Logger) *Requester {
	return &Requester{client: client, datacenter: datacenter, logger: logger}
}

// Send executes a registry write against the configured agent address. The
// request is sent once; retrying a register, pass or fail is left to the
// coordinator and the next heartbeat tick.
//
// reqBody is marshaled to JSON when non-nil. Any 2xx status is success.
// Non-2xx responses go through TranslateHTTPError and network failures wrap
// [domain.ErrTransport].
func (r *Requester) Send(ctx context.Context, method, path string, query url.Values, reqBody any) error {
	ctx = httpclient.WithPolicy(ctx, httpclient.PolicyOnce)
	req, err := r.newRequest(ctx, method, path, query, reqBody)
	if err != nil {
		return err
	}
	return r.execute(req, nil)
}

// Fetch executes a GET under the client's retry policy and decodes the 2xx
// body into respBody. Errors are translated as for [Requester.Send].
func (r *Requester) Fetch(ctx context.Context, path string, query url.Values, respBody any) error {
	req, err := r.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return r.execute(req, respBody)
}

// HealthCheck reports the underlying client's circuit breaker health.
func (r *Requester) HealthCheck(ctx context.Context) error {
	return r.client.HealthCheck(ctx)
}

func (r *Requester) newRequest(ctx context.Context, method, path string, query url.Values, reqBody any) (*http.Request, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if r.datacenter != "" {
		q.Set("dc", r.datacenter)
	}

	target := r.client.BaseURL() + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	if reqBody == nil {
		req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
		}
		return req, nil
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// closeBody is a helper that closes an HTTP response body and logs on failure.
func (r *Requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}

// execute sends the request, checks the status code, and optionally decodes
// the response body. It ensures resp.Body is always closed.
func (r *Requester) execute(req *http.Request, respBody any) error {
	ctx := req.Context()

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		// httpclient.Do returns both resp and err when retries are exhausted
		// on a retryable status; translate the response in that case.
		if resp != nil {
			defer r.closeBody(ctx, resp)
			if !isSuccess(resp.StatusCode) {
				return TranslateHTTPError(resp)
			}
		}
		r.logger.ErrorContext(ctx, "consul request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Path, domain.ErrTransport, err)
	}
	defer r.closeBody(ctx, resp)

	if !isSuccess(resp.StatusCode) {
		translateErr := TranslateHTTPError(resp)
		r.logger.ErrorContext(ctx, "unexpected consul status",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
		)
		return translateErr
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("decoding response from %s %s: %w: %w", req.Method, req.URL.Path, domain.ErrTransport, err)
		}
	}

	return nil
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
