package http

import (
	"net/http"

	"autolend-backend/internal/usecase/offer"

	"github.com/labstack/echo/v4"
)

type OfferHandler struct{ uc *offer.Usecase }

func NewOfferHandler(uc *offer.Usecase) *OfferHandler { return &OfferHandler{uc: uc} }

// createOfferReq is deliberately exhaustive: nothing outside these fields
// reaches the ledger.
type createOfferReq struct {
	Amount       float64 `json:"amount" validate:"required,gt=0,dec2"`
	InterestRate float64 `json:"interest_rate" validate:"required,gt=0,lte=100"`
	TenureMonths int     `json:"tenure_months" validate:"required,gte=1,lte=120"`
}

func (h *OfferHandler) Create(c echo.Context) error {
	var req createOfferReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateForLoan(c.Request().Context(), c.Param("id"), offer.CreateInput{
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TenureMonths: req.TenureMonths,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// ListForLoan treats a loan with zero offers as 404, matching the consumer
// contract; the ledger itself does not consider empty an error.
func (h *OfferHandler) ListForLoan(c echo.Context) error {
	dtos, err := h.uc.ListForLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	if len(dtos) == 0 {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no offers found"})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *OfferHandler) Accept(c echo.Context) error {
	dto, err := h.uc.Accept(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
