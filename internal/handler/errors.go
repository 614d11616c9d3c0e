package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/service"
)

// statusOf maps a service error kind to its HTTP status. Forbidden is
// reported as 404 to callers that may not see the resource.
func statusOf(kind service.Kind) int {
	switch kind {
	case service.KindNotFound, service.KindForbidden:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindInvalidOperation, service.KindValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError renders err as {"error": message} and logs it once.
func writeError(c echo.Context, log *slog.Logger, err error) error {
	var se *service.Error
	if !errors.As(err, &se) {
		log.Error("request failed",
			"method", c.Request().Method, "path", c.Path(), "req_id", requestID(c), "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	status := statusOf(se.Kind)
	log.Info("request rejected",
		"method", c.Request().Method, "path", c.Path(), "req_id", requestID(c),
		"kind", se.Kind, "status", status, "msg", se.Message)

	body := echo.Map{"error": se.Message}
	if se.Kind == service.KindValidation && len(se.Fields) > 0 {
		body["fields"] = se.Fields
	}
	return c.JSON(status, body)
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
