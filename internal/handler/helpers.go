package handler

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/apierror"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/middleware"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// envelope is the success wrapper for every 2xx JSON response.
type envelope struct {
	Data      interface{} `json:"data"`
	Message   string      `json:"message,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, envelope{Data: data, Timestamp: time.Now().UTC().Format(time.RFC3339)})
}

func respondMsg(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, envelope{Data: data, Message: message, Timestamp: time.Now().UTC().Format(time.RFC3339)})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode("Invalid JSON: "+err.Error(), apierror.CodeValidation))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQuery binds and validates query parameters the same way.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode(err.Error(), apierror.CodeValidation))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// userID extracts the authenticated user's id from the JWT claims.
func userID(c *gin.Context) uuid.UUID {
	claims := middleware.GetClaims(c)
	id, _ := uuid.Parse(claims.UserID)
	return id
}

// pathID parses the :id path parameter, writing the 400 response on failure.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode("Invalid id", apierror.CodeValidation))
		return uuid.Nil, false
	}
	return id, true
}

// fail maps service errors to HTTP responses. Unknown errors become an
// opaque 500 — the details stay in the server log.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.WithCode("Resource not found", apierror.CodeNotFound))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.Unauthorized())
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrOrderFinal),
		errors.Is(err, service.ErrRecordProtected):
		c.JSON(http.StatusUnprocessableEntity, apierror.WithCode(err.Error(), apierror.CodeValidation))
	case errors.Is(err, service.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, apierror.WithCode(err.Error(), apierror.CodeUpstreamAI))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.WithCode("Internal server error", apierror.CodeDatabase))
	}
}
