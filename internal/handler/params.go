package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/middleware"
	"github.com/iliyamo/shareit/internal/service"
)

var errNoCaller = service.Invalid(middleware.SharerHeader, "header is required")

// getUserID returns the caller id put in the context by the identity
// middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(middleware.UserIDKey).(uint64); ok && id > 0 {
		return id, nil
	}
	return 0, errNoCaller
}

func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.Invalid(name, "must be an integer")
	}
	return n, nil
}

// pageParams reads from and size, defaulting to the first page of ten.
func pageParams(c echo.Context) (service.Page, error) {
	from, err := queryInt(c, "from", service.DefaultPage.From)
	if err != nil {
		return service.Page{}, err
	}
	size, err := queryInt(c, "size", service.DefaultPage.Size)
	if err != nil {
		return service.Page{}, err
	}
	return service.Page{From: from, Size: size}, nil
}

// bind decodes the JSON body into v.
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		msg := "malformed request body"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		}
		return service.Invalid("body", msg)
	}
	return nil
}
