package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func parseSkipLimit(c *fiber.Ctx, defLimit int) (skip, limit int) {
	skip = 0
	limit = defLimit
	if v := strings.TrimSpace(c.Query("skip")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	return skip, limit
}
