package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/smbsocial/postpilot/internal/service"
)

type AssetHandler struct {
	media service.MediaService
}

func NewAssetHandler(media service.MediaService) *AssetHandler {
	return &AssetHandler{media: media}
}

func (h *AssetHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}

	url, err := h.media.UploadImage(c.Context(), file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"image_url": url})
}
