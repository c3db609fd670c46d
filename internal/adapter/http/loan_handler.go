package http

import (
	"net/http"

	"autolend-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type submitLoanReq struct {
	VehicleID       string  `json:"vehicle_id" validate:"required,hex32"`
	UserID          string  `json:"user_id" validate:"omitempty,hex32"`
	ApplicantName   string  `json:"applicant_name" validate:"required"`
	ApplicantEmail  string  `json:"applicant_email" validate:"required,email"`
	RequestedAmount float64 `json:"requested_amount" validate:"required,gt=0,dec2"`
	TermMonths      int     `json:"term_months" validate:"required,gte=1,lte=120"`
}

type updateLoanStatusReq struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected offered disbursed cancelled"`
}

func (h *LoanHandler) Submit(c echo.Context) error {
	var req submitLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Submit(c.Request().Context(), loan.SubmitInput{
		VehicleID:       req.VehicleID,
		UserID:          req.UserID,
		ApplicantName:   req.ApplicantName,
		ApplicantEmail:  req.ApplicantEmail,
		RequestedAmount: req.RequestedAmount,
		TermMonths:      req.TermMonths,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) ListByApplicant(c echo.Context) error {
	dtos, err := h.uc.ListByApplicant(c.Request().Context(), c.Param("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	var req updateLoanStatusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.SetStatus(c.Request().Context(), c.Param("loan_id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Summary(c echo.Context) error {
	s, err := h.uc.Summarize(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
