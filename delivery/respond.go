package delivery

import (
	"errors"
	"net/http"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/middleware"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgconn"
)

// statusFor maps domain sentinel errors to HTTP status codes. Constraint
// violations that slipped past service-level checks map to 409; anything
// unrecognized is a 500.
func statusFor(err error) int {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return http.StatusConflict
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrOTPNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited), errors.Is(err, domain.ErrOTPRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrOTPExpired), errors.Is(err, domain.ErrOTPMismatch):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs and writes the JSON error body for a failed service call.
// Unexpected errors keep their detail server-side.
func respondError(c *gin.Context, caller *string, functionName, message string, err error) {
	status := statusFor(err)
	utils.PrintLogInfo(caller, status, functionName, &err)

	body := gin.H{
		"success": false,
		"message": message,
	}
	if status != http.StatusInternalServerError {
		body["error"] = utils.TranslateDBError(err)
	}
	c.JSON(status, body)
}

// callerName returns the resolved identity's name for log lines.
func callerName(c *gin.Context) *string {
	if identity, ok := middleware.IdentityFrom(c); ok {
		return &identity.Name
	}
	return nil
}
