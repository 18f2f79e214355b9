package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"rentease/internal/common"
	"rentease/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// parseUUIDParam extracts and validates a UUID path parameter.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID format")
	}
	return id, nil
}

// parseUUIDQuery extracts an optional UUID query parameter. A missing
// parameter yields uuid.Nil without error.
func parseUUIDQuery(c echo.Context, name string) (uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" format")
	}
	return id, nil
}

// parsePageLimit reads page/limit query parameters and returns the
// normalized page, limit and the resulting offset.
func parsePageLimit(c echo.Context) (int, int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, limit = common.NormalizePageLimit(page, limit)
	return page, limit, (page - 1) * limit
}

// ownerFromContext resolves the authenticated account ID or fails with 401.
func ownerFromContext(c echo.Context) (uuid.UUID, error) {
	ownerID, ok := common.GetAccountIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Account not authenticated")
	}
	return ownerID, nil
}

// mapServiceError translates service sentinel errors into HTTP errors.
// Unrecognized errors pass through and surface as a 500 envelope.
func mapServiceError(err error, notFoundMsg string) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	case errors.Is(err, services.ErrInvalidProperty):
		return echo.NewHTTPError(http.StatusBadRequest, "Property not found")
	case errors.Is(err, services.ErrNoDocument):
		return echo.NewHTTPError(http.StatusNotFound, "No document attached to this lease agreement")
	}
	return err
}
