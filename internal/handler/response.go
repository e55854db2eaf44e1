package handler

import (
	"context"
	"errors"
	"net/http"

	"sprint2/internal/model"
	"sprint2/internal/service"
	"sprint2/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrDuplicate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a {message} body. Client errors carry their own
// text; anything else is logged and answered with fallback.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	status := statusFor(err)
	if status != http.StatusInternalServerError {
		c.JSON(status, model.NewMessageResponse(err.Error()))
		return
	}

	message := fallback
	if errors.Is(err, context.DeadlineExceeded) {
		message = "request timed out"
	}
	_ = c.Error(err)
	logger.Error(fallback,
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(status, model.NewMessageResponse(message))
}

// bindJSON decodes the request body into v and checks its binding tags,
// answering 400 when either fails.
func bindJSON(c *gin.Context, v any) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, model.NewMessageResponse(util.ValidationMessage(err).Error()))
		return false
	}
	c.JSON(http.StatusBadRequest, model.NewMessageResponse("Invalid request body: "+err.Error()))
	return false
}

// accountFields identifies an account in log entries without exposing its password.
func accountFields(a model.Account) []zap.Field {
	return []zap.Field{
		zap.String("id", a.GetID().Hex()),
		zap.String("username", a.GetUsername()),
		zap.String("role", a.GetRole()),
	}
}
