package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/smbsocial/postpilot/internal/service"
)

type PostHandler struct {
	s service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{s: s}
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	clientID := QueryInt64(c, "client_id")
	status := c.Query("status")

	posts, err := h.s.List(c.Context(), clientID, status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (h *PostHandler) ResetPost(c *fiber.Ctx) error {
	postID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	if err := h.s.ResetFailed(c.Context(), postID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "pending"})
}

func (h *PostHandler) MonthlyReport(c *fiber.Ctx) error {
	clientID := QueryInt64(c, "client_id")
	month := c.Query("month")

	if clientID == 0 || month == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id and month are required"})
	}

	report, err := h.s.MonthlyReport(c.Context(), clientID, month)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

func (h *PostHandler) ListConnections(c *fiber.Ctx) error {
	clientID := QueryInt64(c, "client_id")

	connections, err := h.s.ListConnections(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"connections": connections})
}
