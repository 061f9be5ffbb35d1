package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"book-catalog/internal/domain"
	"book-catalog/internal/repository"
	"book-catalog/internal/service"
)

const (
	msgUnauthorized     = "could not validate credentials"
	msgBadLogin         = "invalid username or password"
	msgForbidden        = "You do not have permission to access this resource"
	msgNotFound         = "Book not found"
	msgValidationFailed = "validation failed"
	msgInternal         = "internal server error"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName reports validation failures under their wire names.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msgValidationFailed, "fields": verr.Fields})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": msgForbidden})
	case errors.Is(err, service.ErrExportDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}

// bindingError turns a gin binding failure into per-field messages.
func bindingError(err error) *domain.ValidationError {
	verr := &domain.ValidationError{}

	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), fieldMessage(fe))
		}
	case errors.Is(err, domain.ErrInvalidDate):
		verr.Add("published_date", "must be a date in YYYY-MM-DD format")
	case errors.As(err, &typeErr):
		verr.Add(typeErr.Field, "must be of type "+typeErr.Type.String())
	case errors.As(err, &syntaxErr):
		verr.Add("body", "is not valid JSON")
	case errors.Is(err, io.EOF):
		verr.Add("body", "is required")
	default:
		verr.Add("body", err.Error())
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
