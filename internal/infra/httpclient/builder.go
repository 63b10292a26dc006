package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

// Request is a transport-level description of one outbound call.
// JSON, when non-nil, is marshalled as the request body.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	JSON    any
}

// BuildRequest builds an *http.Request from a Request.
func BuildRequest(ctx context.Context, spec Request) (*http.Request, error) {
	if strings.TrimSpace(spec.URL) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidConfig,
		}
	}

	method := strings.ToUpper(strings.TrimSpace(spec.Method))
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	contentType := ""
	if spec.JSON != nil {
		payload, err := json.Marshal(spec.JSON)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "httpclient.build",
				Kind: domain.KindInvalidConfig,
				Path: spec.URL,
				Err:  err,
			}
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, spec.URL, body)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: spec.URL,
			Err:  err,
		}
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}
