package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medhubhq/medhub/internal/account"
	"github.com/medhubhq/medhub/internal/hospital"
	"github.com/medhubhq/medhub/internal/patient"
)

// Result is the structured shape every operation resolves to. Failures
// carry a short human-readable reason; nothing crosses this boundary as
// a raw error.
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Result{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Result{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Result{Success: false, Error: message})
}

// respondServiceError maps domain errors onto HTTP statuses. Anything
// outside the known taxonomy is an infrastructure failure: it is logged
// in full and surfaced as a generic message.
func (h *Handler) respondServiceError(c *gin.Context, err error) {
	var validationErr *patient.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, account.ErrInvalidRole):
		respondError(c, http.StatusBadRequest, account.ErrInvalidRole.Error())
	case errors.Is(err, patient.ErrInvalidHospitalRef):
		respondError(c, http.StatusBadRequest, patient.ErrInvalidHospitalRef.Error())
	case errors.Is(err, patient.ErrDuplicateUHN):
		respondError(c, http.StatusConflict, patient.ErrDuplicateUHN.Error())
	case errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, patient.ErrHospitalNotFound),
		errors.Is(err, hospital.ErrProfileNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, patient.ErrUHNExhausted):
		respondError(c, http.StatusServiceUnavailable, patient.ErrUHNExhausted.Error())
	default:
		h.logger.Error("request failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
		)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
