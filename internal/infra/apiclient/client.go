// Package apiclient is the single outbound surface towards the content backend.
//
// A Client is bound to one base URL at construction and holds no mutable
// per-call state, so one instance is shared by every loader and command.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/httpclient"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

// Response is the transport's response wrapper; the body lives in Data.
type Response struct {
	Status int
	Header http.Header
	Data   []byte
}

// Decode unmarshals the JSON body into v.
func (r Response) Decode(v any) error {
	if len(r.Data) == 0 {
		return io.ErrUnexpectedEOF
	}
	return json.Unmarshal(r.Data, v)
}

type Client struct {
	base *url.URL
	exec *httpclient.Executor
	log  *slog.Logger
}

type Option func(*Client)

// WithExecutor replaces the default transport executor.
func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) { c.exec = e }
}

// WithHTTPClient runs requests through a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.exec = httpclient.NewExecutor(httpclient.WithClient(hc)) }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New validates baseURL and returns a ready client.
func New(baseURL string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		raw = domain.DefaultBaseURL
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if err == nil {
			err = fmt.Errorf("base url %q must be absolute", raw)
		}
		return nil, &domain.OpError{
			Op:   "apiclient.new",
			Kind: domain.KindInvalidConfig,
			Path: raw,
			Err:  err,
		}
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	c := &Client{
		base: u,
		exec: httpclient.NewExecutor(),
		log:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ ports.CollectionsAPI = (*Client)(nil)

// BaseURL returns the configured base address.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Get issues GET base+path.
func (c *Client) Get(ctx context.Context, path string) (Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues POST base+path; a nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, body any) (Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Delete issues DELETE base+path.
func (c *Client) Delete(ctx context.Context, path string) (Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// Seeding returns the grouped seeding operations bound to this client.
func (c *Client) Seeding() *Seeding {
	return &Seeding{c: c}
}

// ListSchemas fetches every registered collection schema (GET /schema).
func (c *Client) ListSchemas(ctx context.Context) ([]domain.ModelSchema, error) {
	var out []domain.ModelSchema
	if err := c.getJSON(ctx, "/schema", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.ModelSchema{}
	}
	return out, nil
}

// GetSchema fetches one collection schema (GET /schema/{collection}).
func (c *Client) GetSchema(ctx context.Context, collection string) (domain.ModelSchema, error) {
	var out domain.ModelSchema
	if err := c.getJSON(ctx, "/schema/"+url.PathEscape(collection), &out); err != nil {
		return domain.ModelSchema{}, err
	}
	return out, nil
}

// ListContent fetches the items of a collection (GET /content/{collection}).
func (c *Client) ListContent(ctx context.Context, collection string) ([]domain.ContentItem, error) {
	var out []domain.ContentItem
	if err := c.getJSON(ctx, "/content/"+url.PathEscape(collection), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.ContentItem{}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	return decodeInto(resp, path, v)
}

func decodeInto(resp Response, path string, v any) error {
	if err := resp.Decode(v); err != nil {
		return &domain.OpError{
			Op:   "apiclient.decode",
			Kind: domain.KindDecode,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// resolve joins the base path with path, keeping any query string on path.
func (c *Client) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(ref.Path, "/")
	if ref.RawPath != "" {
		u.RawPath = c.base.EscapedPath() + "/" + strings.TrimLeft(ref.RawPath, "/")
	}
	u.RawQuery = ref.RawQuery
	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (Response, error) {
	op := "apiclient." + strings.ToLower(method)

	target, err := c.resolve(path)
	if err != nil {
		return Response{}, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	req, err := httpclient.BuildRequest(ctx, httpclient.Request{
		Method: method,
		URL:    target,
		JSON:   body,
	})
	if err != nil {
		return Response{}, err
	}

	data, err := c.exec.Do(ctx, req)
	if err != nil {
		c.log.Warn("api.request.failed",
			"method", method,
			"path", path,
			"kind", string(domain.ClassifyTransportError(err)),
			"err", err,
			"duration_ms", data.Duration.Milliseconds(),
		)
		return Response{}, &domain.OpError{Op: op, Kind: domain.KindTransport, Path: path, Err: err}
	}

	c.log.Debug("api.request",
		"method", method,
		"path", path,
		"status", data.Status,
		"bytes", len(data.BodyBytes),
		"duration_ms", data.Duration.Milliseconds(),
	)

	resp := Response{Status: data.Status, Header: data.Headers, Data: data.BodyBytes}
	if data.Status < 200 || data.Status > 299 {
		return resp, &domain.OpError{
			Op:   op,
			Kind: domain.KindHTTPStatus,
			Path: path,
			Err: &domain.HTTPStatusError{
				Method: method,
				Path:   path,
				Status: data.Status,
				Body:   data.BodyBytes,
			},
		}
	}
	return resp, nil
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *domain.HTTPStatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}
