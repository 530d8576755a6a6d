package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:           make(map[string]string),
		Filter:         make(map[string]interface{}),
		Limit:          DefaultLimit,
		Page:           1,
		WithPagination: true,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit

	if values.Get("withPagination") == "false" {
		filterReq.WithPagination = false
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			filterReq.Filter[field] = vals[0]
		}
	}

	return filterReq
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	if len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = (int(total[0]) + filter.Limit - 1) / filter.Limit
		}
		pagination := map[string]interface{}{
			"total_count": total[0],
			"page":        filter.Page,
			"limit":       filter.Limit,
			"total_pages": totalPages,
		}
		response.Body = map[string]interface{}{"list": body, "pagination": pagination}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("http error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = map[string]interface{}{"errors": httpErr.Details}
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			details[strings.ToLower(e.Field())] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
		}
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"status":  false,
			"message": "validation failed",
			"body":    map[string]interface{}{"errors": details},
		})
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]interface{}{"status": false, "message": apperrors.ErrNotFound.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]interface{}{"status": false, "message": apperrors.ErrForbidden.Error()})
	case errors.Is(err, apperrors.ErrJoNumberTaken),
		errors.Is(err, apperrors.ErrSerialNumberTaken),
		errors.Is(err, apperrors.ErrLaterHistoryExists),
		errors.Is(err, apperrors.ErrAllocationExhausted),
		errors.Is(err, apperrors.ErrOfficeInUse):
		return c.JSON(http.StatusConflict, map[string]interface{}{"status": false, "message": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{"status": false, "message": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrSessionRevoked),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader):
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{"status": false, "message": err.Error()})
	}

	logger.Error("unexpected error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "internal server error, please try again",
	})
}
