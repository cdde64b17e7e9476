package handler

import (
	"net/http"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/dto"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/middleware"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/service"

	"github.com/gin-gonic/gin"
)

type SuppliersHandler struct{ svc service.SupplierService }

func NewSuppliersHandler(svc service.SupplierService) *SuppliersHandler {
	return &SuppliersHandler{svc: svc}
}

// List godoc
// @Summary Active suppliers of the caller's org, by name
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SupplierResponse
// @Router /v1/suppliers [get]
func (h *SuppliersHandler) List(c *gin.Context) {
	resp, err := h.svc.ListActive(c.Request.Context(), middleware.GetProfile(c).OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Creates a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SupplierRequest true "Supplier"
// @Success 201 {object} dto.SupplierResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/suppliers [post]
func (h *SuppliersHandler) Create(c *gin.Context) {
	var req dto.SupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetProfile(c).OrgID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Updates a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Param body body dto.SupplierRequest true "Supplier"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/suppliers/{id} [put]
func (h *SuppliersHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.GetProfile(c).OrgID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary Deactivates a supplier
// @Tags suppliers
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/suppliers/{id} [delete]
func (h *SuppliersHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), middleware.GetProfile(c).OrgID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
