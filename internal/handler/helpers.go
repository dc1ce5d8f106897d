package handler

import (
	"net/http"
	"reflect"

	"github.com/Zar-ufo/Pentagon/internal/apierror"
	"github.com/Zar-ufo/Pentagon/internal/middleware"
	"github.com/Zar-ufo/Pentagon/internal/service"

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

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewEnvelope("invalid JSON: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindQueryAndValidate does the same for query-string filters.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewEnvelope("invalid query: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		msg := "validation failed"
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			msg = "validation failed on field " + errs[0].Field()
		}
		c.JSON(http.StatusBadRequest, apierror.NewEnvelope(msg))
		return false
	}
	return true
}

// respond writes the canonical success envelope {success, message, data}.
func respond(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondExtra writes a success envelope with additional top-level fields.
func respondExtra(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError maps a service error to its HTTP status via the apierror
// taxonomy and writes the failure envelope.
func respondError(c *gin.Context, err error) {
	apiErr := apierror.From(err)
	c.JSON(apiErr.Status(), apierror.NewEnvelope(apiErr.Message))
}

// paramUUID parses a :param path segment as a UUID, writing a 400 on failure.
func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewEnvelope("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// currentActor resolves the authenticated caller from the JWT claims.
func currentActor(c *gin.Context) (service.Actor, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.NewEnvelope("authentication required"))
		return service.Actor{}, false
	}
	id, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.NewEnvelope("invalid token subject"))
		return service.Actor{}, false
	}
	return service.Actor{ID: id, Role: claims.Role}, true
}
