package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// SharerHeader carries the caller's user id. The id is trusted as is;
// authentication happens in front of this service.
const SharerHeader = "X-Sharer-User-Id"

// UserIDKey is the echo context key the caller id is stored under.
const UserIDKey = "user_id"

// RequireSharer rejects requests without a positive numeric
// X-Sharer-User-Id and stores the id in the context as uint64.
func RequireSharer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(SharerHeader))
			if raw == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": SharerHeader + " header is required"})
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": SharerHeader + " must be a positive integer"})
			}
			c.Set(UserIDKey, id)
			return next(c)
		}
	}
}

// sharerID returns the caller id as a string for keys and logs, or
// "anon" when the request carries none.
func sharerID(c echo.Context) string {
	if id, ok := c.Get(UserIDKey).(uint64); ok && id > 0 {
		return strconv.FormatUint(id, 10)
	}
	raw := strings.TrimSpace(c.Request().Header.Get(SharerHeader))
	if _, err := strconv.ParseUint(raw, 10, 64); err == nil && raw != "0" {
		return raw
	}
	return "anon"
}
