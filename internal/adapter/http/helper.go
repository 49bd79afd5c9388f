package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"student-lending-core/pkg/apperr"

	"github.com/labstack/echo/v4"
)

// HeaderUserID carries the authenticated principal, set by the gateway.
const HeaderUserID = "X-User-Id"

var errNoPrincipal = errors.New("missing or invalid " + HeaderUserID)

func principal(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
	if !reHex32.MatchString(id) {
		return "", errNoPrincipal
	}
	return id, nil
}

// statusOf maps an apperr code to its HTTP status.
func statusOf(code string) int {
	switch code {
	case apperr.CodeInvalidInput:
		return http.StatusBadRequest
	case apperr.CodeNotOwner:
		return http.StatusForbidden
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeInsufficientFunds, apperr.CodeInvalidState:
		return http.StatusConflict
	case apperr.CodeInvalidAmount:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes a usecase error. Internal errors are logged by the request
// logger; the body carries only a generic message.
func fail(c echo.Context, err error) error {
	code := apperr.CodeOf(err)
	status := statusOf(code)
	msg := err.Error()
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	if status == http.StatusInternalServerError {
		c.Set("error", err)
		msg = "internal error"
	}
	return c.JSON(status, ErrorResponse{Error: msg, Code: code})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: apperr.CodeInvalidInput})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: errNoPrincipal.Error()})
}

// bind decodes and validates the body; it has already written the response when ok is false.
func bind(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func queryLimit(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		return 0
	}
	return n
}
