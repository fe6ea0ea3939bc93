package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/logging"
)

const (
	// DefaultBaseURL is the address of a locally running service.
	DefaultBaseURL = "http://127.0.0.1:8000"

	// RequestIDHeader carries the per-call correlation ID.
	RequestIDHeader = "X-Request-ID"

	// maxResponseBytes bounds JSON bodies read into memory.
	maxResponseBytes = 8 << 20

	tracerName = "github.com/agbru/txt2pptx/internal/transport"
)

// Client talks to the txt2pptx service. It implements orchestration.Transport.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	labels     *generation.Dictionary
	logger     logging.Logger
	tracer     trace.Tracer
	newID      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLabels sets the dictionary used for fallback error messages.
func WithLabels(d *generation.Dictionary) Option {
	return func(c *Client) { c.labels = d }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "txt2pptx",
		labels:     generation.LabelsFor(generation.LanguageEnglish),
		logger:     logging.Nop(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string { return c.baseURL }

// Send submits req to POST /api/generate.
func (c *Client) Send(ctx context.Context, req generation.Request) (generation.Outcome, error) {
	body, err := json.Marshal(newGenerateRequest(req))
	if err != nil {
		return generation.Outcome{}, fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.do(ctx, "generate", http.MethodPost, "/api/generate", bytes.NewReader(body))
	if err != nil {
		return generation.Outcome{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return generation.Outcome{}, c.protocolError(resp)
	}

	var out generateResponse
	if err := c.decode(resp, &out); err != nil {
		return generation.Outcome{}, err
	}
	if !out.Success {
		msg := strings.TrimSpace(out.Message)
		if msg == "" {
			msg = c.labels.Message(generation.MsgGenerationFailed)
		}
		return generation.Outcome{}, apperrors.ProtocolError{Status: resp.StatusCode, Message: msg}
	}
	return out.outcome(), nil
}

// DownloadURL returns the address of a generated deck.
func (c *Client) DownloadURL(filename string) string {
	return c.baseURL + "/api/download/" + url.PathEscape(filename)
}

// Download streams the deck named filename to w and returns the number of
// bytes written.
func (c *Client) Download(ctx context.Context, filename string, w io.Writer) (int64, error) {
	if strings.TrimSpace(filename) == "" {
		return 0, apperrors.ValidationError{Field: "filename", Message: "filename must not be empty"}
	}
	resp, err := c.do(ctx, "download", http.MethodGet, "/api/download/"+url.PathEscape(filename), nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, c.protocolError(resp)
	}

	body, err := decompressed(resp)
	if err != nil {
		return 0, apperrors.DecodeError{Cause: err}
	}
	defer body.Close()

	n, err := io.Copy(w, body)
	if err != nil {
		return n, apperrors.NetworkError{Op: "download", Cause: err}
	}
	c.logger.Debug("download complete", logging.String("filename", filename), logging.Int("bytes", int(n)))
	return n, nil
}

// Health queries GET /api/health.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	resp, err := c.do(ctx, "health", http.MethodGet, "/api/health", nil)
	if err != nil {
		return HealthStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{}, c.protocolError(resp)
	}
	var h HealthStatus
	if err := c.decode(resp, &h); err != nil {
		return HealthStatus{}, err
	}
	return h, nil
}

// do issues a request with tracing, correlation and compression headers.
// Failures to obtain a response are returned as NetworkError.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader) (*http.Response, error) {
	ctx, span := c.tracer.Start(ctx, "transport."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := c.newID()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	c.logger.Debug("service request",
		logging.String("method", method),
		logging.String("path", path),
		logging.String("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.logger.Error("service request failed", err,
			logging.String("path", path),
			logging.String("request_id", requestID),
			logging.Duration("elapsed", elapsed),
		)
		return nil, apperrors.NetworkError{Op: op, Cause: err}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, resp.Status)
	}
	c.logger.Debug("service response",
		logging.String("path", path),
		logging.String("request_id", requestID),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", elapsed),
	)
	return resp, nil
}

// decode reads a JSON body into v. Read failures are NetworkError, parse
// failures are DecodeError.
func (c *Client) decode(resp *http.Response, v any) error {
	raw, err := readBody(resp)
	if err != nil {
		return apperrors.NetworkError{Op: "read response", Cause: err}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		c.logger.Debug("malformed response", logging.String("body", truncate(string(raw), 200)))
		return apperrors.DecodeError{Cause: err}
	}
	return nil
}

// protocolError builds the error for a non-success status. The message is
// the service's detail when present, "HTTP <status>" when the body has no
// detail, and the generic unknown-error label when the body is unreadable.
func (c *Client) protocolError(resp *http.Response) error {
	raw, err := readBody(resp)
	if err != nil {
		return apperrors.ProtocolError{Status: resp.StatusCode, Message: c.labels.Message(generation.MsgUnknownError)}
	}
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return apperrors.ProtocolError{Status: resp.StatusCode, Message: c.labels.Message(generation.MsgUnknownError)}
	}
	if msg := eb.message(); msg != "" {
		return apperrors.ProtocolError{Status: resp.StatusCode, Message: msg}
	}
	return apperrors.ProtocolError{Status: resp.StatusCode, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
}

func readBody(resp *http.Response) ([]byte, error) {
	body, err := decompressed(resp)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(io.LimitReader(body, maxResponseBytes))
}

// decompressed returns the response body, gunzipping it when the server
// honoured Accept-Encoding. Setting the header explicitly disables the
// standard transport's transparent decompression.
func decompressed(resp *http.Response) (io.ReadCloser, error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return io.NopCloser(resp.Body), nil
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return zr, nil
}
