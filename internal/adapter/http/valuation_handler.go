package http

import (
	"net/http"

	"autolend-backend/internal/usecase/valuation"

	"github.com/labstack/echo/v4"
)

type ValuationHandler struct{ uc *valuation.Usecase }

func NewValuationHandler(uc *valuation.Usecase) *ValuationHandler {
	return &ValuationHandler{uc: uc}
}

type valuationReq struct {
	VIN string `json:"vin" validate:"required,vin"`
}

type batchValuationReq struct {
	VINs []string `json:"vins" validate:"required,min=1,dive,vin"`
}

func (h *ValuationHandler) Estimate(c echo.Context) error {
	var req valuationReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	v := h.uc.Estimate(c.Request().Context(), req.VIN)
	return c.JSON(http.StatusOK, v)
}

func (h *ValuationHandler) EstimateBatch(c echo.Context) error {
	var req batchValuationReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	results, err := h.uc.EstimateBatch(c.Request().Context(), req.VINs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

func (h *ValuationHandler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.History(c.Param("vin")))
}

func (h *ValuationHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.RecentStats())
}
