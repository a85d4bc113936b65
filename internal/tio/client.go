// Package tio is a small client for the Tenable.io scan endpoints the
// smuggler consumes: run history and scan export.
package tio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog"
)

// DefaultURL is the Tenable.io cloud endpoint.
const DefaultURL = "https://cloud.tenable.com"

// ExportFormat is the only export format the smuggler requests.
const ExportFormat = "nessus"

const (
	exportReady = "ready"
	exportError = "error"
)

var errExportPending = errors.New("export not ready")

// Client talks to the Tenable.io REST API.
type Client struct {
	baseURL      string
	accessKey    string
	secretKey    string
	httpClient   *http.Client
	pollInterval time.Duration
	userAgent    string
	logger       zerolog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides DefaultURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPollInterval sets how often export status is checked.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Tenable.io client authenticated with an API key pair.
func New(accessKey, secretKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultURL,
		accessKey:    accessKey,
		secretKey:    secretKey,
		httpClient:   http.DefaultClient,
		pollInterval: 2 * time.Second,
		userAgent:    "scan-smuggler",
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// History returns up to limit runs of scanID, most recent first.
func (c *Client) History(ctx context.Context, scanID string, limit int) ([]ScanRun, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", "0")
	q.Set("sort", "start_date:desc")

	resp, err := c.do(ctx, http.MethodGet, scanPath(scanID, "history"), q, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var hr historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return nil, fmt.Errorf("decode history for scan %s: %w", scanID, err)
	}
	return hr.History, nil
}

// Export requests a nessus export of the given run, waits for it to be
// prepared, and streams it into w.
func (c *Client) Export(ctx context.Context, scanID string, historyID int64, w io.Writer) error {
	fileID, err := c.requestExport(ctx, scanID, historyID)
	if err != nil {
		return err
	}
	if err := c.waitForExport(ctx, scanID, fileID); err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodGet, scanPath(scanID, "export", fileID, "download"), nil, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("download export %s of scan %s: %w", fileID, scanID, err)
	}
	c.logger.Debug().Str("scan_id", scanID).Str("file_id", fileID).Int64("bytes", n).Msg("export downloaded")
	return nil
}

func (c *Client) requestExport(ctx context.Context, scanID string, historyID int64) (string, error) {
	q := url.Values{}
	if historyID > 0 {
		q.Set("history_id", strconv.FormatInt(historyID, 10))
	}
	body, err := json.Marshal(exportRequest{Format: ExportFormat})
	if err != nil {
		return "", err
	}

	resp, err := c.do(ctx, http.MethodPost, scanPath(scanID, "export"), q, body)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var er exportResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return "", fmt.Errorf("decode export response for scan %s: %w", scanID, err)
	}
	if er.File == "" {
		return "", fmt.Errorf("export of scan %s returned no file id", scanID)
	}
	return er.File.String(), nil
}

func (c *Client) waitForExport(ctx context.Context, scanID, fileID string) error {
	b := backoff.WithContext(backoff.NewConstantBackOff(c.pollInterval), ctx)

	operation := func() error {
		resp, err := c.do(ctx, http.MethodGet, scanPath(scanID, "export", fileID, "status"), nil, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		defer func() { _ = resp.Body.Close() }()

		var st exportStatusResponse
		if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
			return backoff.Permanent(fmt.Errorf("decode export status: %w", err))
		}
		switch st.Status {
		case exportReady:
			return nil
		case exportError:
			return backoff.Permanent(fmt.Errorf("export %s of scan %s failed on tenable.io", fileID, scanID))
		default:
			c.logger.Debug().Str("scan_id", scanID).Str("file_id", fileID).Str("status", st.Status).Msg("export pending")
			return errExportPending
		}
	}

	if err := backoff.Retry(operation, b); err != nil {
		if errors.Is(err, errExportPending) && ctx.Err() != nil {
			return fmt.Errorf("waiting for export %s of scan %s: %w", fileID, scanID, ctx.Err())
		}
		return err
	}
	return nil
}

// do sends the request and returns the response for any 2xx status. The
// caller owns the body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-ApiKeys", fmt.Sprintf("accessKey=%s; secretKey=%s;", c.accessKey, c.secretKey))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("tenable.io request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tenable.io %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}
	return resp, nil
}

func scanPath(scanID string, parts ...string) string {
	segs := append([]string{"", "scans", url.PathEscape(scanID)}, parts...)
	return strings.Join(segs, "/")
}
