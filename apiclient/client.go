// Package apiclient is a typed JSON client for the mill tender business API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when the caller does not configure one.
const DefaultTimeout = 15 * time.Second

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the remote API rooted at BaseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL. A zero timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API origin the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Companies fetches GET /companieslist.
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	var out []Company
	if err := c.do(ctx, http.MethodGet, "/companieslist", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SystemMaster fetches GET /get_system_master.
func (c *Client) SystemMaster(ctx context.Context) ([]SystemMasterEntry, error) {
	var out []SystemMasterEntry
	if err := c.do(ctx, http.MethodGet, "/get_system_master", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PublishResale posts listings to /publishlist-tender. The API expects an
// array even for a single listing.
func (c *Client) PublishResale(ctx context.Context, listings []ResaleListing) error {
	return c.do(ctx, http.MethodPost, "/publishlist-tender", listings, nil)
}

// UpdateMillTender sends the full tender to /update_mill_tender and returns
// the record as confirmed by the server.
func (c *Client) UpdateMillTender(ctx context.Context, tender MillTender) (MillTender, error) {
	path := "/update_mill_tender?MillTenderId=" + url.QueryEscape(strconv.Itoa(tender.MillTenderID))

	var resp struct {
		MillTender MillTender `json:"MillTender"`
	}
	if err := c.do(ctx, http.MethodPut, path, tender, &resp); err != nil {
		return MillTender{}, err
	}
	if resp.MillTender.MillTenderID == 0 {
		return MillTender{}, fmt.Errorf("%s %s: decode response: no MillTender in body", http.MethodPut, path)
	}
	return resp.MillTender, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
