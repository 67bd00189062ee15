package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	dashboardmapper "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/adapters/http/mapper"
	dashboarddomain "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/domain"
	designmapper "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/http/mapper"
	designports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	meetingmapper "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/http/mapper"
	apierrors "github.com/Apurer/go-gin-design-library/internal/shared/errors"
)

const (
	// CacheBustParam is the query parameter that makes every list request URL unique.
	CacheBustParam = "t"

	idempotencyKeyHeader = "Idempotency-Key"
	defaultTimeout       = 10 * time.Second
)

// HttpRequestDoer performs HTTP requests.
type HttpRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestEditorFn is the function signature for the RequestEditor callback function.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// ClientOption allows setting custom parameters during construction.
type ClientOption func(*Client) error

// Client talks to the design library API.
type Client struct {
	server         string
	client         HttpRequestDoer
	requestEditors []RequestEditorFn
	now            func() time.Time
	lastBust       atomic.Int64
}

// WithHTTPClient allows overriding the default Doer.
func WithHTTPClient(doer HttpRequestDoer) ClientOption {
	return func(c *Client) error {
		c.client = doer
		return nil
	}
}

// WithRequestEditorFn allows setting up a callback function, which will be
// called right before sending the request.
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		c.requestEditors = append(c.requestEditors, fn)
		return nil
	}
}

// WithClock overrides the time source of the cache-busting parameter.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}
		c.now = now
		return nil
	}
}

// NewClient builds a client for the API rooted at baseURL. Without WithHTTPClient it uses an
// otelhttp-instrumented http.Client with a 10s timeout.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("library API base URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("library API base URL: %w", err)
	}
	c := &Client{server: strings.TrimSuffix(baseURL, "/"), now: time.Now}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.client == nil {
		c.client = &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return c, nil
}

// ListDesigns fetches the full library, bypassing every cache on the way.
// Order is preserved as returned by the server.
func (c *Client) ListDesigns(ctx context.Context) ([]*designports.DesignProjection, error) {
	const op = "list designs"
	query, err := runtime.StyleParamWithLocation("form", true, CacheBustParam, runtime.ParamLocationQuery, c.cacheBust())
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/api/designs?"+query, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	payload, err := doEnvelope[[]designmapper.Design](c, op, req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	result := make([]*designports.DesignProjection, 0, len(payload))
	for i, d := range payload {
		p, err := designmapper.ToProjection(d)
		if err != nil {
			return nil, &ParseError{Op: op, Err: fmt.Errorf("design %d: %w", i, err)}
		}
		result = append(result, p)
	}
	return result, nil
}

// DeleteDesign deletes one design. Any non-2xx answer is a ServerError.
func (c *Client) DeleteDesign(ctx context.Context, id int64) error {
	const op = "delete design"
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/designs/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	resp, err := c.do(ctx, req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(op, resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Stats fetches fresh dashboard counts.
func (c *Client) Stats(ctx context.Context) (dashboarddomain.Stats, error) {
	const op = "stats"
	req, err := c.newRequest(ctx, http.MethodGet, "/api/stats", nil)
	if err != nil {
		return dashboarddomain.Stats{}, &TransportError{Op: op, Err: err}
	}
	stats, err := doEnvelope[dashboardmapper.Stats](c, op, req, http.StatusOK)
	if err != nil {
		return dashboarddomain.Stats{}, err
	}
	return stats.ToDomain(), nil
}

// ListMeetings fetches recent meetings with their design counts.
func (c *Client) ListMeetings(ctx context.Context) ([]meetingmapper.MeetingSummary, error) {
	const op = "list meetings"
	req, err := c.newRequest(ctx, http.MethodGet, "/api/meetings", nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return doEnvelope[[]meetingmapper.MeetingSummary](c, op, req, http.StatusOK)
}

// RecordOption configures RecordMeeting.
type RecordOption func(*recordOptions)

type recordOptions struct {
	idempotencyKey string
}

// WithIdempotencyKey sets the Idempotency-Key header; by default a random key is generated.
func WithIdempotencyKey(key string) RecordOption {
	return func(opts *recordOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// RecordMeeting creates a meeting with its designs.
func (c *Client) RecordMeeting(ctx context.Context, payload meetingmapper.RecordMeetingRequest, optFns ...RecordOption) (*meetingmapper.MeetingDetail, error) {
	const op = "record meeting"
	opts := recordOptions{idempotencyKey: uuid.NewString()}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/meetings", bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.idempotencyKey != "" {
		req.Header.Set(idempotencyKeyHeader, opts.idempotencyKey)
	}
	detail, err := doEnvelope[meetingmapper.MeetingDetail](c, op, req, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// cacheBust returns a strictly increasing nanosecond stamp so two requests never share a URL.
func (c *Client) cacheBust() int64 {
	stamp := c.now().UnixNano()
	for {
		last := c.lastBust.Load()
		if stamp <= last {
			stamp = last + 1
		}
		if c.lastBust.CompareAndSwap(last, stamp) {
			return stamp
		}
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, c.server+path, body)
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	for _, editor := range c.requestEditors {
		if err := editor(ctx, req); err != nil {
			return nil, err
		}
	}
	return c.client.Do(req)
}

type envelope[T any] struct {
	Success *bool `json:"success"`
	Data    T     `json:"data"`
}

func doEnvelope[T any](c *Client, op string, req *http.Request, want int) (T, error) {
	var zero T
	resp, err := c.do(req.Context(), req)
	if err != nil {
		return zero, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		return zero, serverError(op, resp)
	}
	var body envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return zero, &ParseError{Op: op, Err: err}
	}
	if body.Success == nil {
		return zero, &ParseError{Op: op, Err: errors.New("missing success flag")}
	}
	if !*body.Success {
		return zero, &ServerError{Op: op, Status: resp.StatusCode}
	}
	return body.Data, nil
}

func serverError(op string, resp *http.Response) *ServerError {
	serr := &ServerError{Op: op, Status: resp.StatusCode}
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == apierrors.ContentTypeProblemJSON {
		var problem apierrors.ProblemDetail
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&problem); err == nil {
			serr.Problem = &problem
		}
	}
	return serr
}
