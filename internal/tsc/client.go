// Package tsc is a small client for the Tenable.sc endpoints used to import
// scan results: file upload and scanResult import.
package tsc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// ImportOptions are the repository settings applied when importing a scan.
type ImportOptions struct {
	RepositoryID int
	// HostTracking tracks hosts that have been issued new IP addresses (DHCP).
	HostTracking bool
	// VirtualHosts scans virtual hosts such as Apache VirtualHosts.
	VirtualHosts bool
	// DeadHostsWait is the number of days before vulnerabilities on hosts that
	// did not reply are removed. Zero removes them immediately.
	DeadHostsWait int
}

// Client talks to the Tenable.sc REST API.
type Client struct {
	baseURL    string
	accessKey  string
	secretKey  string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
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

// New creates a client for the console at host. host is either a bare
// hostname (https is assumed) or a URL with scheme.
func New(host, accessKey, secretKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    BaseURL(host),
		accessKey:  accessKey,
		secretKey:  secretKey,
		httpClient: http.DefaultClient,
		userAgent:  "scan-smuggler",
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the REST root for host.
func BaseURL(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return host + "/rest"
}

// ImportScan uploads the scan file read from r under name and imports it into
// the repository named in opts.
func (c *Client) ImportScan(ctx context.Context, name string, r io.Reader, opts ImportOptions) error {
	stored, err := c.Upload(ctx, name, r)
	if err != nil {
		return err
	}

	payload := importRequest{
		Filename:             stored,
		Repository:           idRef{ID: strconv.Itoa(opts.RepositoryID)},
		DHCPTracking:         strconv.FormatBool(opts.HostTracking),
		ScanningVirtualHosts: strconv.FormatBool(opts.VirtualHosts),
		ClassifyMitigatedAge: strconv.Itoa(opts.DeadHostsWait),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := c.do(ctx, http.MethodPost, "/scanResult/import", "application/json", bytes.NewReader(body)); err != nil {
		return fmt.Errorf("import %s into repository %d: %w", name, opts.RepositoryID, err)
	}
	c.logger.Debug().Str("file", stored).Int("repository_id", opts.RepositoryID).Msg("scan imported")
	return nil
}

// Upload sends r to the console's file store and returns the server-side
// filename. The body is streamed so large archives are never held in memory.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("Filedata", name)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	env, err := c.do(ctx, http.MethodPost, "/file/upload", mw.FormDataContentType(), pr)
	// Unblocks the writer if the request ended before consuming the body.
	_ = pr.Close()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	var up uploadResponse
	if err := json.Unmarshal(env.Response, &up); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if up.Filename == "" {
		return "", fmt.Errorf("upload %s: console returned no filename", name)
	}
	return up.Filename, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-apikey", fmt.Sprintf("accesskey=%s; secretkey=%s;", c.accessKey, c.secretKey))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("tenable.sc request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tenable.sc %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tenable.sc response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Code, apiErr.Message = env.ErrorCode, env.ErrorMsg
		} else {
			apiErr.Message = excerpt(raw)
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode tenable.sc response: %w", decodeErr)
	}
	if env.ErrorCode != 0 {
		return nil, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Code: env.ErrorCode, Message: env.ErrorMsg}
	}
	return &env, nil
}

func excerpt(b []byte) string {
	if len(b) > 512 {
		b = b[:512]
	}
	return strings.TrimSpace(string(b))
}
