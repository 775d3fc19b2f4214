// Package backend reads equipment, training and technician records from the
// hospital REST API. The API owns validation and persistence; this package
// only fetches and decodes.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/lvillar/hospreport/reports"
	"github.com/lvillar/hospreport/stats"
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("backend: record not found")

// StatusError is an unexpected non-2xx answer.
type StatusError struct {
	Status int
	Path   string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: GET %s: status %d: %s", e.Path, e.Status, e.Body)
}

// Source resolves the records a report is built from.
type Source interface {
	Equipment(ctx context.Context, id string) (reports.Equipment, error)
	Training(ctx context.Context, id string) (reports.Training, error)
	TechnicianOrders(ctx context.Context, id string) (stats.Technician, error)
}

type tokenKey struct{}

// WithToken attaches a caller's bearer token to ctx. It takes precedence
// over the client's configured token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the token set by WithToken, if any.
func TokenFrom(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey{}).(string)
	return s
}

// Client is a Source over HTTP.
type Client struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	HTTP    *fasthttp.Client
}

// New returns a client for the API at baseURL.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Timeout: timeout,
		HTTP: &fasthttp.Client{
			Name:                "hospreport",
			MaxIdleConnDuration: 30 * time.Second,
		},
	}
}

// Equipment fetches one equipment record with its work orders.
func (c *Client) Equipment(ctx context.Context, id string) (reports.Equipment, error) {
	var e reports.Equipment
	err := c.get(ctx, "/equipamentos/"+url.PathEscape(id), &e)
	return e, err
}

// Training fetches one training record with its attendees.
func (c *Client) Training(ctx context.Context, id string) (reports.Training, error) {
	var t reports.Training
	err := c.get(ctx, "/capacitacoes/"+url.PathEscape(id), &t)
	return t, err
}

// TechnicianOrders fetches a technician and the work orders assigned to them.
func (c *Client) TechnicianOrders(ctx context.Context, id string) (stats.Technician, error) {
	var t stats.Technician
	err := c.get(ctx, "/tecnicos/"+url.PathEscape(id)+"/ordens-servico", &t)
	return t, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.BaseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	token := TokenFrom(ctx)
	if token == "" {
		token = c.Token
	}
	if token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	}

	deadline := time.Now().Add(c.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.HTTP.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("backend: GET %s: %w", path, err)
	}

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case status < 200 || status >= 300:
		return &StatusError{Status: status, Path: path, Body: snippet(resp.Body())}
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("backend: decoding %s: %w", path, err)
	}
	return nil
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
