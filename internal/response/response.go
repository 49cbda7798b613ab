// Package response renders service results and domain errors as HTTP
// responses with a uniform JSON envelope.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimbus-rentals/service-rental/internal/domain"
)

// ErrorResponse is the JSON error envelope returned for every failure.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// Paginated writes a 200 response with items and paging metadata.
func Paginated(c *gin.Context, items any, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// BadRequest writes a 400 error envelope with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:      http.StatusBadRequest,
		Message:   message,
		ErrorType: string(domain.KindBadRequest),
	})
}

// Unauthorized writes a 401 error envelope.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:      http.StatusUnauthorized,
		Message:   "authentication required",
		ErrorType: string(domain.KindUnauthorized),
	})
}

// Error maps a domain error to its HTTP status and error envelope.
// Internal errors keep their detail out of the response body.
func Error(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := statusFor(kind)

	message := "Internal Server Error"
	if kind != domain.KindInternal {
		var derr *domain.Error
		if errors.As(err, &derr) {
			message = derr.Message
		} else {
			message = err.Error()
		}
	}

	c.JSON(status, ErrorResponse{
		Code:      status,
		Message:   message,
		ErrorType: string(kind),
	})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
