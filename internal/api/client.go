package api

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
)

// Client talks to the Public Utility Platform REST API. Every method performs
// exactly one HTTP request, decodes the body against a typed schema, and
// returns a normalized *Error on any failure. Phone numbers are always passed
// explicitly; the session layer owns the cached identity.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type serverMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return NetworkError(fmt.Sprintf("marshal %s body", path), err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return NetworkError(fmt.Sprintf("build %s request", path), err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return NetworkError(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return NetworkError(fmt.Sprintf("read %s response", path), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg serverMessage
		_ = json.Unmarshal(raw, &msg)
		text := msg.Message
		if text == "" {
			text = msg.Error
		}
		return ServerError(resp.StatusCode, text)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return DecodeError(fmt.Sprintf("decode %s response", path), err)
	}
	return nil
}
