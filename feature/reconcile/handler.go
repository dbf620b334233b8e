package reconcile

import (
	"errors"
	"strings"

	"storygrabber/core/logger"
	"storygrabber/feature/library"
	"storygrabber/feature/storygraph"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the reconcile routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Get("/:username", h.HandleReconcile)
	group.Get("/:username/history", h.HandleHistory)
}

// HandleReconcile reconciles a user's want-to-read list against the library.
// @Summary Reconcile a want-to-read list
// @Description Match every book of the user's want-to-read list against the library manager's holdings and queue.
// @Tags reconcile
// @Produce json
// @Param username path string true "Source-site username"
// @Param formats query string false "Comma-separated formats (eBook,AudioBook)"
// @Param refresh query bool false "Bypass fresh cache entries"
// @Param max_books query int false "Truncate the list to its first N books"
// @Success 200 {object} reconcile.Report "Match report"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Unknown user"
// @Failure 502 {object} map[string]string "Source list retrieval failed"
// @Router /api/reconcile/{username} [get]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	username := c.Params("username")
	l := logger.WithRayID(h.logger, c)

	formats, err := parseFormats(c.Query("formats"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	report, err := h.service.Reconcile(c.Context(), username, Options{
		Formats:      formats,
		ForceRefresh: c.QueryBool("refresh"),
		MaxBooks:     c.QueryInt("max_books"),
		Trigger:      "api",
	})
	if err != nil {
		l.Error("Reconciliation failed", zap.String("username", username), zap.Error(err))
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleHistory returns recent reconciliation runs for a user.
// @Summary Get reconciliation history
// @Description List recent reconciliation runs for a user, newest first.
// @Tags reconcile
// @Produce json
// @Param username path string true "Source-site username"
// @Param limit query int false "Maximum rows (default 20)"
// @Success 200 {array} reconcile.RunRecord "Run records"
// @Failure 503 {object} map[string]string "Run history not configured"
// @Router /api/reconcile/{username}/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	username := c.Params("username")
	l := logger.WithRayID(h.logger, c)

	records, err := h.service.History(c.Context(), username, c.QueryInt("limit"))
	if err != nil {
		if errors.Is(err, ErrHistoryDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("History lookup failed", zap.String("username", username), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(records)
}

func parseFormats(raw string) ([]library.Format, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var formats []library.Format
	for _, part := range strings.Split(raw, ",") {
		f, ok := library.ParseFormat(part)
		if !ok {
			return nil, errors.New("unknown format " + strings.TrimSpace(part))
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func statusForError(err error) int {
	var rerr *storygraph.RetrievalError
	if errors.As(err, &rerr) {
		switch rerr.Reason {
		case storygraph.ReasonNotFound:
			return fiber.StatusNotFound
		case storygraph.ReasonTimeout:
			return fiber.StatusGatewayTimeout
		default:
			return fiber.StatusBadGateway
		}
	}
	return fiber.StatusInternalServerError
}
