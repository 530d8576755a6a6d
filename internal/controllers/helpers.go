package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "inventory-system/pkg/errors"
)

func parseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError(map[string]string{
			name: "must be a positive integer",
		})
	}
	return id, nil
}
