package http

import (
	"errors"
	"net/http"

	domainLoan "autolend-backend/internal/domain/loan"
	domainOffer "autolend-backend/internal/domain/offer"
	domainUser "autolend-backend/internal/domain/user"
	domainVehicle "autolend-backend/internal/domain/vehicle"
	ucValuation "autolend-backend/internal/usecase/valuation"
	ucVehicle "autolend-backend/internal/usecase/vehicle"

	"github.com/labstack/echo/v4"
)

// writeError maps the usecase error taxonomy onto HTTP statuses:
// not-found 404, invalid input 400, state conflicts 409, the rest 500.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domainLoan.ErrNotFound),
		errors.Is(err, domainOffer.ErrNotFound),
		errors.Is(err, domainVehicle.ErrNotFound),
		errors.Is(err, domainUser.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, ucVehicle.ErrSearchTermTooShort),
		errors.Is(err, ucValuation.ErrEmptyVINList):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainLoan.ErrInvalidTransition),
		errors.Is(err, domainVehicle.ErrVINExists),
		errors.Is(err, domainVehicle.ErrInUse):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// bindAndValidate binds and validates req, writing the 400 itself on
// failure. The bool reports whether the handler may proceed.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}
