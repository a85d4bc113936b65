package tsc

import (
	"encoding/json"
	"fmt"
)

// envelope is the wrapper Tenable.sc puts around every response.
type envelope struct {
	Type      string          `json:"type"`
	Response  json.RawMessage `json:"response"`
	ErrorCode int             `json:"error_code"`
	ErrorMsg  string          `json:"error_msg"`
	Warnings  []any           `json:"warnings"`
	Timestamp int64           `json:"timestamp"`
}

type uploadResponse struct {
	Filename         string `json:"filename"`
	OriginalFilename string `json:"originalFilename"`
}

type idRef struct {
	ID string `json:"id"`
}

type importRequest struct {
	Filename             string `json:"filename"`
	Repository           idRef  `json:"repository"`
	DHCPTracking         string `json:"dhcpTracking"`
	ScanningVirtualHosts string `json:"scanningVirtualHosts"`
	ClassifyMitigatedAge string `json:"classifyMitigatedAge"`
}

// APIError is returned for non-2xx responses and for envelopes carrying a
// non-zero error_code.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tenable.sc %s %s: status %d, error_code %d: %s", e.Method, e.Path, e.StatusCode, e.Code, e.Message)
}
