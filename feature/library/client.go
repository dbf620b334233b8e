package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the library manager's command API. Every call is a
// GET of the form /api?cmd=<command>&apikey=<key>&..., answered with
// either JSON or the literal text "OK".
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a manager API client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		baseURL: cfg.BaseURL(),
		apiKey:  cfg.ApiKey,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:  logger,
	}
}

// apiResult is a manager response with the plaintext and JSON shapes
// folded together.
type apiResult struct {
	// OK is true for plaintext acknowledgements.
	OK bool
	// Message carries non-JSON response text.
	Message string
	// Data holds the raw JSON body when the response was JSON.
	Data json.RawMessage
}

func (c *Client) call(ctx context.Context, cmd string, params map[string]string, wait bool) (*apiResult, error) {
	values := url.Values{}
	values.Set("cmd", cmd)
	values.Set("apikey", c.apiKey)
	for k, v := range params {
		values.Set(k, v)
	}
	if wait {
		values.Set("wait", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("manager command %s: %w", cmd, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("manager command %s: %w", cmd, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("manager command %s returned status %d: %s", cmd, resp.StatusCode, body)
	}

	text := strings.TrimSpace(string(body))
	if text == "OK" {
		return &apiResult{OK: true, Message: "OK"}, nil
	}
	if json.Valid([]byte(text)) {
		return &apiResult{OK: true, Data: json.RawMessage(text)}, nil
	}

	// Some commands answer with free text; treat it as an
	// acknowledgement like the manager's own UI does.
	c.logger.Debug("Manager returned non-JSON response",
		zap.String("cmd", cmd),
		zap.String("body", text),
	)
	return &apiResult{OK: true, Message: text}, nil
}

// records decodes a JSON response body into raw book records. The
// manager answers either with a bare array or with nothing at all.
func (r *apiResult) records() ([]map[string]any, error) {
	if len(r.Data) == 0 {
		return nil, nil
	}
	var out []map[string]any
	if err := json.Unmarshal(r.Data, &out); err != nil {
		return nil, fmt.Errorf("decoding manager records: %w", err)
	}
	return out, nil
}

// GetAllBooks returns every book record the manager tracks.
func (c *Client) GetAllBooks(ctx context.Context) ([]Candidate, error) {
	result, err := c.call(ctx, "getAllBooks", nil, false)
	if err != nil {
		return nil, err
	}
	records, err := result.records()
	if err != nil {
		return nil, err
	}
	return candidatesFromRecords(records), nil
}

// GetWanted returns the manager's request queue.
func (c *Client) GetWanted(ctx context.Context) ([]Candidate, error) {
	result, err := c.call(ctx, "getWanted", nil, false)
	if err != nil {
		return nil, err
	}
	records, err := result.records()
	if err != nil {
		return nil, err
	}
	return candidatesFromRecords(records), nil
}

// FindBook searches the manager's metadata providers for a book.
func (c *Client) FindBook(ctx context.Context, name string) ([]Candidate, error) {
	result, err := c.call(ctx, "findBook", map[string]string{"name": name}, false)
	if err != nil {
		return nil, err
	}
	records, err := result.records()
	if err != nil {
		return nil, err
	}
	return candidatesFromRecords(records), nil
}

// QueueBook marks a book as wanted in the given format.
func (c *Client) QueueBook(ctx context.Context, bookID string, format Format) error {
	_, err := c.call(ctx, "queueBook", map[string]string{"id": bookID, "type": string(format)}, false)
	return err
}

// UnqueueBook marks a book as skipped in the given format.
func (c *Client) UnqueueBook(ctx context.Context, bookID string, format Format) error {
	_, err := c.call(ctx, "unqueueBook", map[string]string{"id": bookID, "type": string(format)}, false)
	return err
}

// SearchBook triggers a download search for a specific book.
func (c *Client) SearchBook(ctx context.Context, bookID string, format Format) error {
	_, err := c.call(ctx, "searchBook", map[string]string{"id": bookID, "type": string(format)}, false)
	return err
}
