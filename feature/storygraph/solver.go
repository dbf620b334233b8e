package storygraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// solverRequest is the FlareSolverr command envelope.
type solverRequest struct {
	Cmd        string `json:"cmd"`
	Session    string `json:"session,omitempty"`
	URL        string `json:"url,omitempty"`
	MaxTimeout int    `json:"maxTimeout,omitempty"`
}

type solverSolution struct {
	URL      string `json:"url"`
	Status   int    `json:"status"`
	Response string `json:"response"`
}

type solverResponse struct {
	Status   string         `json:"status"`
	Message  string         `json:"message"`
	Session  string         `json:"session"`
	Solution solverSolution `json:"solution"`
}

func (c *Client) solve(ctx context.Context, reqBody solverRequest) (*solverResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.SolverURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solver returned status %d: %s", resp.StatusCode, body)
	}

	var out solverResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding solver response: %w", err)
	}
	return &out, nil
}

// createSession opens a browser session on the solver and returns its ID.
func (c *Client) createSession(ctx context.Context) (string, error) {
	resp, err := c.solve(ctx, solverRequest{
		Cmd:        "sessions.create",
		MaxTimeout: c.cfg.SolverTimeoutMS,
	})
	if err != nil {
		return "", err
	}
	if resp.Session == "" {
		return "", fmt.Errorf("solver created no session: %s", resp.Message)
	}
	return resp.Session, nil
}

// destroySession tears down a solver session. Failures are logged, not
// returned: the session times out on the solver side eventually anyway.
func (c *Client) destroySession(session string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.http.Timeout)
	defer cancel()

	if _, err := c.solve(ctx, solverRequest{Cmd: "sessions.destroy", Session: session}); err != nil {
		c.logger.Warn("Failed to destroy solver session", zap.String("session", session), zap.Error(err))
	}
}

// fetchPage retrieves one page through the solver session and returns
// the rendered HTML together with the upstream status code.
func (c *Client) fetchPage(ctx context.Context, session, url string) (int, string, error) {
	resp, err := c.solve(ctx, solverRequest{
		Cmd:     "request.get",
		Session: session,
		URL:     url,
	})
	if err != nil {
		return 0, "", err
	}
	return resp.Solution.Status, resp.Solution.Response, nil
}
