package common

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response wrapper every endpoint returns.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendSuccess writes a success envelope with the given status code.
func SendSuccess(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Envelope{Success: true, Message: message, Data: data})
}

// HTTPErrorHandler converts every error escaping a handler into the envelope.
// Unmatched routes and recovered panics land here too, so nothing reaches the
// client outside the uniform shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		case error:
			message = m.Error()
		default:
			message = fmt.Sprintf("%v", m)
		}
	}

	if err := c.JSON(code, Envelope{Success: false, Message: message, Data: nil}); err != nil {
		c.Logger().Error(err)
	}
}

// Pagination is the list metadata block returned alongside collection items.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

// NewPagination computes page counts from a total row count.
func NewPagination(total int64, page, limit int) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Total: total, Page: page, Pages: pages, Limit: limit}
}

// NormalizePageLimit applies the 1/10 defaults and the 100-item cap.
func NormalizePageLimit(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// BindStrict decodes a JSON body rejecting unknown fields. Partial-update
// payloads go through this so clients cannot smuggle fields outside the
// declared patch structure.
func BindStrict(c echo.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
