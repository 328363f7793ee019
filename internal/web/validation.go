package web

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/letterpack/letterpack/internal/logger"
	"github.com/letterpack/letterpack/internal/model"
)

var setupOnce sync.Once

// setupValidator makes binding errors report form field names
func setupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
		}
	})
}

// FieldError is one invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every 4xx/5xx response
type ErrorResponse struct {
	Error     string       `json:"error"`
	RequestID string       `json:"request_id,omitempty"`
	Fields    []FieldError `json:"fields,omitempty"`
	Rows      []RowDetail  `json:"rows,omitempty"`
}

// RowDetail is one invalid CSV row
type RowDetail struct {
	Row     int    `json:"row"`
	Side    string `json:"side,omitempty"`
	Message string `json:"message"`
}

// fieldErrors converts binding and address validation errors. ok is false
// for any other error.
func fieldErrors(err error) ([]FieldError, bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, e := range verrs {
			out = append(out, FieldError{Field: e.Field(), Message: getValidationMessage(e)})
		}
		return out, true
	}

	var aerr *model.ValidationError
	if errors.As(err, &aerr) {
		out := make([]FieldError, 0, len(aerr.Fields))
		for _, f := range aerr.Fields {
			out = append(out, FieldError{Field: formField(aerr.Side, f), Message: "This field is required"})
		}
		return out, true
	}
	return nil, false
}

// formField maps an address field to its form name, e.g. to + postal_code -> to_postal
func formField(side, field string) string {
	switch field {
	case "postal_code":
		field = "postal"
	}
	if side == "" {
		return field
	}
	return side + "_" + field
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Must be at most " + e.Param() + " characters"
	case "oneof":
		return "Must be one of: " + e.Param()
	default:
		return "Invalid value"
	}
}

func abortError(c *gin.Context, status int, resp ErrorResponse) {
	resp.RequestID = logger.GetRequestID(c.Request.Context())
	c.AbortWithStatusJSON(status, resp)
}

// handleValidationError answers 400 listing each invalid field
func handleValidationError(c *gin.Context, err error) bool {
	fields, ok := fieldErrors(err)
	if !ok {
		return false
	}
	abortError(c, http.StatusBadRequest, ErrorResponse{Error: "Request validation failed", Fields: fields})
	return true
}
