package api

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

func validEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// idParam parses a numeric path parameter. Zero and false on anything that
// is not a positive integer.
func idParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Params(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
