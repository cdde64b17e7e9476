package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/apierror"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/service"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func init() {
	// Request bodies are closed structs: an unexpected key is a client bug.
	binding.EnableDecoderDisallowUnknownFields = true
}

// bindJSON decodes the body into req, answering 400 on malformed JSON or
// unknown fields. The caller should return immediately when it reports false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeInvalidRequest, "Invalid JSON: "+err.Error()))
		return false
	}
	return true
}

// bindAndValidate binds JSON body and runs the validator tags.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if !bindJSON(c, req) {
		return false
	}
	if v := validation.Struct(req); !v.Empty() {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(v))
		return false
	}
	return true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeInvalidRequest, "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto the API envelope. Anything unknown is
// attached to the context so ErrorHandler logs it and answers a bare 500.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(verr.Fields))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, apierror.New(apierror.CodeForbidden, err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(apierror.CodeNotFound, err.Error()))
	case errors.Is(err, service.ErrAlreadyClosed):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeAlreadyClosed, err.Error()))
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeInvalidTransition, err.Error()))
	case errors.Is(err, service.ErrDuplicateSupplier):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeDuplicateSupplier, err.Error()))
	default:
		_ = c.Error(err)
	}
}
