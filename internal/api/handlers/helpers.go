package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func QueryInt64(c *fiber.Ctx, key string) int64 {
	value, _ := strconv.ParseInt(c.Query(key), 10, 64)
	return value
}
