package http

import (
	"net/http"
	"strconv"

	domainVehicle "autolend-backend/internal/domain/vehicle"
	"autolend-backend/internal/usecase/vehicle"

	"github.com/labstack/echo/v4"
)

type VehicleHandler struct{ uc *vehicle.Usecase }

func NewVehicleHandler(uc *vehicle.Usecase) *VehicleHandler { return &VehicleHandler{uc: uc} }

type createVehicleReq struct {
	VIN     string `json:"vin" validate:"omitempty,vin"`
	Make    string `json:"make" validate:"required"`
	Model   string `json:"model" validate:"required"`
	Year    int    `json:"year" validate:"required,gte=1900,lte=2100"`
	Mileage int    `json:"mileage" validate:"gte=0"`
}

type updateVehicleReq struct {
	Make    *string `json:"make" validate:"omitempty,min=1"`
	Model   *string `json:"model" validate:"omitempty,min=1"`
	Year    *int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Mileage *int    `json:"mileage" validate:"omitempty,gte=0"`
}

func (h *VehicleHandler) Create(c echo.Context) error {
	var req createVehicleReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), vehicle.CreateInput{
		VIN:     req.VIN,
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		Mileage: req.Mileage,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *VehicleHandler) List(c echo.Context) error {
	f := domainVehicle.Filter{
		Make:  c.QueryParam("make"),
		Model: c.QueryParam("model"),
	}
	if y := c.QueryParam("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid year"})
		}
		f.Year = n
	}
	dtos, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *VehicleHandler) Search(c echo.Context) error {
	dtos, err := h.uc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *VehicleHandler) Get(c echo.Context) error {
	dto, err := h.uc.GetByIDOrVIN(c.Request().Context(), c.Param("id_or_vin"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *VehicleHandler) Update(c echo.Context) error {
	var req updateVehicleReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("id_or_vin"), vehicle.UpdateInput{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		Mileage: req.Mileage,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *VehicleHandler) Delete(c echo.Context) error {
	if err := h.uc.Remove(c.Request().Context(), c.Param("id_or_vin")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *VehicleHandler) ValuationByVIN(c echo.Context) error {
	res, err := h.uc.ValuationByVIN(c.Request().Context(), c.Param("id_or_vin"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *VehicleHandler) ManufacturerStats(c echo.Context) error {
	stats, err := h.uc.ManufacturerStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
