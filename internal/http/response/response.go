package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondAppError maps a coded error onto its HTTP status. Uncoded errors are
// opaque 500s so internals never leak into a response body.
func RespondAppError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status, known := statusForCode(code)
	if !known {
		RespondError(c, http.StatusInternalServerError, string(apperr.CodeInternal), nil)
		return
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: apperr.MessageOf(err),
			Code:    string(code),
		},
	})
}

func statusForCode(code apperr.Code) (int, bool) {
	switch code {
	case apperr.CodeOrderNotFound, apperr.CodePaymentNotFound:
		return http.StatusNotFound, true
	case apperr.CodeIdempotencyConflict:
		return http.StatusConflict, true
	case apperr.CodeInvalidSignature:
		return http.StatusUnauthorized, true
	case apperr.CodeInvalidOrderState, apperr.CodeMalformedEvent, apperr.CodeValidation:
		return http.StatusBadRequest, true
	case apperr.CodePaymentGateway:
		return http.StatusBadGateway, true
	}
	return 0, false
}
