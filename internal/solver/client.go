// Package solver talks to a solve service over HTTP.
//
// The contract is a single endpoint:
//
//	POST /solve  {"state": "<54 chars>"}  ->  200 {"moves": "R U R' ..."}
//
// Anything else (transport failure, non-2xx status, a body without moves)
// is reported as *cubestudio.SolveRequestError.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubestudio"
)

// Request is the body of POST /solve.
type Request struct {
	State string `json:"state"`
}

// Response is a successful answer.
type Response struct {
	Moves string `json:"moves"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// DefaultTimeout bounds a solve request when the caller's context has no
// deadline.
const DefaultTimeout = 30 * time.Second

// Client calls a remote solve service. It implements cubestudio.Solver.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *log.Logger
}

// New creates a client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		Logger: log.New(io.Discard),
	}
}

// SetTimeout changes the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.HTTPClient.Timeout = d
	}
}

// Solve posts the state and returns the move string.
func (c *Client) Solve(ctx context.Context, state string) (string, error) {
	body, err := json.Marshal(Request{State: state})
	if err != nil {
		return "", &cubestudio.SolveRequestError{Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/solve", bytes.NewReader(body))
	if err != nil {
		return "", &cubestudio.SolveRequestError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.Logger.Debug("solve request", "url", req.URL.String(), "state", state)
	started := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Warn("solve request failed", "err", err)
		return "", &cubestudio.SolveRequestError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &cubestudio.SolveRequestError{Status: resp.StatusCode, Message: "read response", Err: err}
	}
	c.Logger.Debug("solve response", "status", resp.StatusCode, "took", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		var errResp ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
			if errResp.Details != "" {
				msg += ": " + errResp.Details
			}
		}
		return "", &cubestudio.SolveRequestError{Status: resp.StatusCode, Message: msg}
	}

	var out struct {
		Moves *string `json:"moves"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", &cubestudio.SolveRequestError{Status: resp.StatusCode, Message: "malformed response", Err: err}
	}
	if out.Moves == nil {
		return "", &cubestudio.SolveRequestError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("response has no moves: %.80s", string(respBody)),
		}
	}
	return *out.Moves, nil
}
