package handler

import (
	"net/http"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/apierror"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/dto"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/middleware"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterHandler struct{ svc service.RegisterService }

func NewRegisterHandler(svc service.RegisterService) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// Access godoc
// @Summary Tells the client whether the caller may close the register
// @Tags register
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AccessResponse
// @Router /v1/register/access [get]
func (h *RegisterHandler) Access(c *gin.Context) {
	p := middleware.GetProfile(c)
	resp := dto.AccessResponse{HasAccess: p.CanCloseRegister, Username: p.Username, RoleID: p.RoleID}
	if p.CanCloseRegister {
		resp.Message = "Access granted"
	} else {
		resp.Message = "You are not allowed to close the register"
	}
	c.JSON(http.StatusOK, resp)
}

// OpeningFloat godoc
// @Summary Opening float carried over from the previous closing
// @Tags register
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OpeningFloatResponse
// @Router /v1/register/opening-float [get]
func (h *RegisterHandler) OpeningFloat(c *gin.Context) {
	resp, err := h.svc.GetOpeningFloatCarryover(c.Request.Context(), middleware.GetProfile(c).OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Today godoc
// @Summary Whether today's register has already been closed
// @Tags register
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClosedTodayResponse
// @Router /v1/register/today [get]
func (h *RegisterHandler) Today(c *gin.Context) {
	resp, err := h.svc.CheckAlreadyClosedToday(c.Request.Context(), middleware.GetProfile(c).OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Submits the daily register closing
// @Tags register
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitClosingRequest true "Closing"
// @Success 201 {object} dto.ClosingResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/register/closings [post]
func (h *RegisterHandler) Submit(c *gin.Context) {
	var req dto.SubmitClosingRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.SubmitClosing(c.Request.Context(), middleware.GetProfile(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lists closings inside a period or date range
// @Tags register
// @Produce json
// @Security BearerAuth
// @Param mode query string false "period | range"
// @Param days query int false "Look-back days for period mode"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} dto.ClosingListResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/register/closings [get]
func (h *RegisterHandler) List(c *gin.Context) {
	sel, ok := bindSelector(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListClosings(c.Request.Context(), middleware.GetProfile(c).OrgID, sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Gets one closing with its supplier payments and expenses
// @Tags register
// @Produce json
// @Security BearerAuth
// @Param id path int true "Closing ID"
// @Success 200 {object} dto.ClosingResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/register/closings/{id} [get]
func (h *RegisterHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetClosing(c.Request.Context(), middleware.GetProfile(c).OrgID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Review godoc
// @Summary Advances a closing's review status
// @Tags register
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Closing ID"
// @Param body body dto.ReviewClosingRequest false "Target status"
// @Success 200 {object} dto.ClosingResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/register/closings/{id}/review [patch]
func (h *RegisterHandler) Review(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ReviewClosingRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.ReviewClosing(c.Request.Context(), middleware.GetProfile(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Deletes a closing and its line items
// @Tags register
// @Security BearerAuth
// @Param id path int true "Closing ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/register/closings/{id} [delete]
func (h *RegisterHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteClosing(c.Request.Context(), middleware.GetProfile(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SupplierPaymentsReport godoc
// @Summary Supplier payments of closings in a period or range
// @Tags register
// @Produce json
// @Security BearerAuth
// @Param mode query string false "period | range"
// @Param days query int false "Look-back days for period mode"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} dto.SupplierPaymentsReport
// @Router /v1/register/reports/supplier-payments [get]
func (h *RegisterHandler) SupplierPaymentsReport(c *gin.Context) {
	sel, ok := bindSelector(c)
	if !ok {
		return
	}
	resp, err := h.svc.SupplierPaymentsReport(c.Request.Context(), middleware.GetProfile(c).OrgID, sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExpensesReport godoc
// @Summary Expenses of closings in a period or range
// @Tags register
// @Produce json
// @Security BearerAuth
// @Param mode query string false "period | range"
// @Param days query int false "Look-back days for period mode"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} dto.ExpensesReport
// @Router /v1/register/reports/expenses [get]
func (h *RegisterHandler) ExpensesReport(c *gin.Context) {
	sel, ok := bindSelector(c)
	if !ok {
		return
	}
	resp, err := h.svc.ExpensesReport(c.Request.Context(), middleware.GetProfile(c).OrgID, sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func bindSelector(c *gin.Context) (dto.DateSelector, bool) {
	var sel dto.DateSelector
	if err := c.ShouldBindQuery(&sel); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeInvalidRequest, "Invalid query: "+err.Error()))
		return sel, false
	}
	return sel, true
}
