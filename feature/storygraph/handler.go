package storygraph

import (
	"errors"

	"storygrabber/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for want-to-read lists.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the storygraph routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/storygraph")
	group.Get("/:username/books", h.HandleGetBooks)
}

// HandleGetBooks returns a user's want-to-read list.
// @Summary Get want-to-read list
// @Description Get the scraped want-to-read list for a user, served from cache when fresh.
// @Tags storygraph
// @Produce json
// @Param username path string true "Source-site username"
// @Param refresh query bool false "Bypass a fresh cache entry"
// @Success 200 {object} storygraph.BookList "Want-to-read list"
// @Failure 404 {object} map[string]string "Unknown user"
// @Failure 502 {object} map[string]string "Retrieval failed"
// @Router /api/storygraph/{username}/books [get]
func (h *Handler) HandleGetBooks(c *fiber.Ctx) error {
	username := c.Params("username")
	force := c.QueryBool("refresh")
	l := logger.WithRayID(h.logger, c)

	list, err := h.service.Books(c.Context(), username, force)
	if err != nil {
		l.Error("List retrieval failed", zap.String("username", username), zap.Error(err))
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(list)
}

func statusForError(err error) int {
	var rerr *RetrievalError
	if errors.As(err, &rerr) {
		switch rerr.Reason {
		case ReasonNotFound:
			return fiber.StatusNotFound
		case ReasonTimeout:
			return fiber.StatusGatewayTimeout
		default:
			return fiber.StatusBadGateway
		}
	}
	return fiber.StatusInternalServerError
}
