// Package consul implements the registry gateway over the Consul agent HTTP
// API. It translates between registration descriptors and Consul's wire
// DTOs, and maps Consul HTTP failures onto domain errors in one place.
package consul

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 64 << 10 // 64 KB

// TranslateHTTPError maps a non-2xx Consul response to a domain error.
// Consul answers errors with a plain-text body, which is used as detail.
// 404 maps to [domain.ErrNotFound]; every other status maps to
// [domain.ErrTransport].
func TranslateHTTPError(resp *http.Response) error {
	detail := readErrorBody(resp)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("consul: %s: %w", detail, domain.ErrNotFound)
	}
	return fmt.Errorf("consul: status %d: %s: %w", resp.StatusCode, detail, domain.ErrTransport)
}

// readErrorBody returns the trimmed error body, or "" when it cannot be read.
func readErrorBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}
