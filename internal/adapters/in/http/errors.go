package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petify/reservation-slots-service/internal/core/domain"
)

// ProblemResponse is the error body returned to API callers: a stable
// machine-readable code plus a human-readable title and detail. Internal
// errors never leak their cause.
type ProblemResponse struct {
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

var errorStatuses = map[string]int{
	domain.ErrInvalidTimeRange.Code:      http.StatusBadRequest,
	domain.ErrSlotNotFound.Code:          http.StatusNotFound,
	domain.ErrPetNotFound.Code:           http.StatusNotFound,
	domain.ErrSlotAlreadyExists.Code:     http.StatusConflict,
	domain.ErrSlotNotAvailable.Code:      http.StatusConflict,
	domain.ErrUnauthorizedOperation.Code: http.StatusForbidden,
	domain.ErrPetServiceUnavailable.Code: http.StatusServiceUnavailable,
}

var errorTitles = map[string]string{
	domain.ErrInvalidTimeRange.Code:      "Invalid Time Range",
	domain.ErrSlotNotFound.Code:          "Slot Not Found",
	domain.ErrPetNotFound.Code:           "Pet Not Found",
	domain.ErrSlotAlreadyExists.Code:     "Slot Already Exists",
	domain.ErrSlotNotAvailable.Code:      "Slot Not Available",
	domain.ErrUnauthorizedOperation.Code: "Unauthorized Operation",
	domain.ErrPetServiceUnavailable.Code: "Pet Service Unavailable",
}

func writeError(ctx *gin.Context, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		ctx.JSON(http.StatusInternalServerError, ProblemResponse{
			Code:      "internal_error",
			Title:     "Internal Server Error",
			Detail:    "an unexpected error occurred",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	status, ok := errorStatuses[domainErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	ctx.JSON(status, ProblemResponse{
		Code:      domainErr.Code,
		Title:     errorTitles[domainErr.Code],
		Detail:    domainErr.Message,
		Timestamp: time.Now().UTC(),
	})
}

func writeBadRequest(ctx *gin.Context, detail string) {
	ctx.JSON(http.StatusBadRequest, ProblemResponse{
		Code:      "invalid_parameter",
		Title:     "Invalid Request Parameter",
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
