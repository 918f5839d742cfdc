// Package response renders use case errors as JSON bodies with a status
// code picked from the error taxonomy in model.
package response

import (
	"context"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gin-gonic/gin"

	"github.com/jith-01/Billing-Software-amd/internal/model"
)

type Err struct {
	HTTPStatusCode int               `json:"-"`
	Message        string            `json:"error"`
	Field          string            `json:"field,omitempty"`
	Fields         map[string]string `json:"fields,omitempty"`
}

func (e *Err) Error() string { return e.Message }

func ErrBadRequest(err error) *Err {
	return &Err{HTTPStatusCode: http.StatusBadRequest, Message: err.Error()}
}

// FromError maps err onto a status. Unknown errors are 500 with a generic
// message so driver text never reaches the client.
func FromError(err error) *Err {
	var (
		verr  *model.ValidationError
		verrs validation.Errors
	)
	switch {
	case errors.As(err, &verr):
		return &Err{HTTPStatusCode: http.StatusBadRequest, Message: verr.Message, Field: verr.Field}
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for k, v := range verrs {
			fields[k] = v.Error()
		}
		return &Err{HTTPStatusCode: http.StatusBadRequest, Message: verrs.Error(), Fields: fields}
	case errors.Is(err, model.ErrEmptyBill), errors.Is(err, model.ErrNothingToPrint):
		return &Err{HTTPStatusCode: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, model.ErrDuplicateItem):
		return &Err{HTTPStatusCode: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, model.ErrBillNotFound):
		return &Err{HTTPStatusCode: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, model.ErrPrint):
		return &Err{HTTPStatusCode: http.StatusBadGateway, Message: err.Error()}
	case errors.Is(err, model.ErrStore):
		return &Err{HTTPStatusCode: http.StatusServiceUnavailable, Message: "the store is unavailable, try again"}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &Err{HTTPStatusCode: http.StatusServiceUnavailable, Message: "the terminal is busy, try again"}
	}
	return &Err{HTTPStatusCode: http.StatusInternalServerError, Message: "internal error"}
}

func RenderErr(c *gin.Context, err error) {
	var e *Err
	if !errors.As(err, &e) {
		e = FromError(err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(e.HTTPStatusCode, e)
}
