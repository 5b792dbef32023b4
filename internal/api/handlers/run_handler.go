package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/smbsocial/postpilot/internal/service"
)

// RunHandler exposes operator-triggered QA and dispatch runs.
type RunHandler struct {
	qa service.QAService
	ds service.DispatchService
}

func NewRunHandler(qa service.QAService, ds service.DispatchService) *RunHandler {
	return &RunHandler{qa: qa, ds: ds}
}

type qaRunRequest struct {
	ClientID int64  `json:"client_id"`
	Month    string `json:"month"`
	DryRun   bool   `json:"dry_run"`
}

func (h *RunHandler) RunQA(c *fiber.Ctx) error {
	var req qaRunRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.ClientID == 0 || req.Month == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id and month are required"})
	}

	summary, err := h.qa.Review(c.Context(), req.ClientID, req.Month, req.DryRun)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

func (h *RunHandler) RunDispatch(c *fiber.Ctx) error {
	result, err := h.ds.Dispatch(c.Context(), time.Now().UTC())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// The batch as a whole is unhealthy only when there was eligible work
	// and nothing succeeded.
	if result.AllFailed() {
		return c.Status(fiber.StatusBadGateway).JSON(result)
	}
	return c.JSON(result)
}
