package library

import (
	"context"

	"storygrabber/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the library manager.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/library")
	group.Get("/search", h.HandleSearch)
	group.Get("/wanted", h.HandleGetWanted)
	group.Post("/wanted", h.HandleMarkWanted)
	group.Post("/search", h.HandleForceSearch)
}

// bookActionRequest is the body of the queue-mutation endpoints.
type bookActionRequest struct {
	BookID string `json:"book_id"`
	Format string `json:"format"`
}

// HandleSearch searches for candidates.
// @Summary Search library candidates
// @Description Fuzzy-search the holdings snapshot, or the manager's metadata providers with remote=true.
// @Tags library
// @Produce json
// @Param title query string false "Book title"
// @Param author query string false "Book author"
// @Param remote query bool false "Search the manager's metadata providers"
// @Success 200 {array} library.SearchResult "Ranked candidates"
// @Failure 400 {object} map[string]string "Missing query"
// @Failure 502 {object} map[string]string "Manager unreachable"
// @Router /api/library/search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	title := c.Query("title")
	author := c.Query("author")
	l := logger.WithRayID(h.logger, c)

	if title == "" && author == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title or author is required",
		})
	}

	results, err := h.service.Search(c.Context(), title, author, c.QueryBool("remote"))
	if err != nil {
		l.Error("Library search failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(results)
}

// HandleGetWanted returns the manager's request queue.
// @Summary Get wanted books
// @Description List the books the manager is currently trying to obtain.
// @Tags library
// @Produce json
// @Success 200 {array} library.Candidate "Wanted books"
// @Failure 502 {object} map[string]string "Manager unreachable"
// @Router /api/library/wanted [get]
func (h *Handler) HandleGetWanted(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	wanted, err := h.service.Wanted(c.Context())
	if err != nil {
		l.Error("Wanted list retrieval failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(wanted)
}

// HandleMarkWanted queues a book and triggers a search for it.
// @Summary Mark a book wanted
// @Description Queue the book in the given format and immediately search for it.
// @Tags library
// @Accept json
// @Produce json
// @Param request body library.bookActionRequest true "Book and format"
// @Success 200 {object} map[string]string "Queued"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 502 {object} map[string]string "Manager rejected the request"
// @Router /api/library/wanted [post]
func (h *Handler) HandleMarkWanted(c *fiber.Ctx) error {
	return h.handleBookAction(c, h.service.MarkWanted, "queued")
}

// HandleForceSearch triggers a download search for a book.
// @Summary Force a book search
// @Description Trigger a download search without touching the queue.
// @Tags library
// @Accept json
// @Produce json
// @Param request body library.bookActionRequest true "Book and format"
// @Success 200 {object} map[string]string "Search triggered"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 502 {object} map[string]string "Manager rejected the request"
// @Router /api/library/search [post]
func (h *Handler) HandleForceSearch(c *fiber.Ctx) error {
	return h.handleBookAction(c, h.service.ForceSearch, "searching")
}

func (h *Handler) handleBookAction(c *fiber.Ctx, action func(context.Context, string, Format) error, status string) error {
	var req bookActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.BookID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "book_id is required",
		})
	}
	format, ok := ParseFormat(req.Format)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown format " + req.Format,
		})
	}

	l := logger.WithRayID(h.logger, c)
	if err := action(c.Context(), req.BookID, format); err != nil {
		l.Error("Book action failed",
			zap.String("book_id", req.BookID),
			zap.String("format", string(format)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": status, "book_id": req.BookID})
}
