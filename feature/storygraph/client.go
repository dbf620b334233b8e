package storygraph

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client retrieves want-to-read lists from the source site through a
// FlareSolverr instance. It performs no caching; callers go through
// Service for that.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a scraper client for the configured solver.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}
}

func (c *Client) listURL(username string) string {
	return c.cfg.BaseURL + "/to-read/" + username
}

// Books scrapes the complete want-to-read list for username. A solver
// session is created for the run and destroyed afterwards. Failures are
// reported as *RetrievalError with a reason the caller can map.
func (c *Client) Books(ctx context.Context, username string) ([]Book, error) {
	session, err := c.createSession(ctx)
	if err != nil {
		return nil, c.retrievalError(username, err)
	}
	defer c.destroySession(session)

	listURL := c.listURL(username)
	status, html, err := c.fetchPage(ctx, session, listURL)
	if err != nil {
		return nil, c.retrievalError(username, err)
	}
	if err := classifyStatus(status); err != nil {
		return nil, &RetrievalError{Username: username, Reason: reasonForStatus(status), Err: err}
	}

	seen := make(map[string]struct{})

	count, ok := parseResultsCount(html)
	if ok {
		c.logger.Debug("Found result count",
			zap.String("username", username),
			zap.Int("count", count),
		)
		books, err := c.fetchCountedPages(ctx, session, listURL, username, count, seen)
		if err != nil {
			return nil, err
		}
		return books, nil
	}

	// No count marker: paginate until a page yields nothing new.
	c.logger.Debug("No result count marker, paginating iteratively",
		zap.String("username", username),
	)
	books, err := c.fetchUncountedPages(ctx, session, listURL, username, seen)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, &RetrievalError{
			Username: username,
			Reason:   ReasonNotFound,
			Err:      errors.New("no books found on list page"),
		}
	}
	return books, nil
}

// fetchCountedPages walks ceil(count/10) pages, the site's fixed page
// size. Individual page failures are logged and skipped so one bad page
// does not lose the rest of the list.
func (c *Client) fetchCountedPages(ctx context.Context, session, listURL, username string, count int, seen map[string]struct{}) ([]Book, error) {
	pages := count / 10
	if count%10 != 0 {
		pages++
	}

	books := make([]Book, 0, count)
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, c.retrievalError(username, err)
		}

		pageURL := fmt.Sprintf("%s?page=%d", listURL, page)
		status, html, err := c.fetchPage(ctx, session, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, c.retrievalError(username, err)
			}
			c.logger.Warn("Failed to fetch list page",
				zap.String("username", username),
				zap.Int("page", page),
				zap.Error(err),
			)
			continue
		}
		if status != http.StatusOK {
			c.logger.Warn("List page returned unexpected status",
				zap.String("username", username),
				zap.Int("page", page),
				zap.Int("status", status),
			)
			continue
		}

		found, err := parseBooks(html, c.cfg.BaseURL, seen)
		if err != nil {
			return nil, c.retrievalError(username, err)
		}
		books = append(books, found...)
	}

	c.logger.Info("Extracted books",
		zap.String("username", username),
		zap.Int("count", len(books)),
	)
	return books, nil
}

// fetchUncountedPages paginates until no new books appear, capped at
// MaxPages as a safety bound.
func (c *Client) fetchUncountedPages(ctx context.Context, session, listURL, username string, seen map[string]struct{}) ([]Book, error) {
	maxPages := c.cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 50
	}

	var books []Book
	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, c.retrievalError(username, err)
		}

		pageURL := fmt.Sprintf("%s?page=%d", listURL, page)
		status, html, err := c.fetchPage(ctx, session, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, c.retrievalError(username, err)
			}
			break
		}
		if status != http.StatusOK {
			break
		}

		found, err := parseBooks(html, c.cfg.BaseURL, seen)
		if err != nil {
			return nil, c.retrievalError(username, err)
		}
		if len(found) == 0 {
			break
		}
		books = append(books, found...)
	}

	return books, nil
}

// retrievalError wraps transport-level failures, distinguishing
// timeouts from general unavailability.
func (c *Client) retrievalError(username string, err error) *RetrievalError {
	reason := ReasonUnavailable
	if errors.Is(err, context.DeadlineExceeded) {
		reason = ReasonTimeout
	}
	return &RetrievalError{Username: username, Reason: reason, Err: err}
}

func classifyStatus(status int) error {
	switch status {
	case http.StatusOK:
		return nil
	default:
		return fmt.Errorf("list page returned status %d", status)
	}
}

func reasonForStatus(status int) Reason {
	switch status {
	case http.StatusForbidden:
		return ReasonBlocked
	case http.StatusNotFound:
		return ReasonNotFound
	default:
		return ReasonUnavailable
	}
}
