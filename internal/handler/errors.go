package handler

import (
	"net/http"

	customError "github.com/segyhp/school-fee-engine/pkg/errors"
	"github.com/segyhp/school-fee-engine/pkg/response"

	"go.uber.org/zap"
)

// statusFor maps business error codes to HTTP status codes
func statusFor(err error) int {
	switch code := customError.Code(err); {
	case code == customError.ErrCodeStudentNotFound:
		return http.StatusNotFound
	case customError.IsPrecondition(err), code == customError.ErrCodeNoOutstandingBalance:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *FeeHandler) writeServiceError(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	}
	response.ErrorWithCode(w, status, customError.Code(err), message, err)
}
