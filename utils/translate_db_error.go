package utils

import (
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// TranslateDBError turns database errors into messages safe to return to
// clients.
func TranslateDBError(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique violation
			if strings.Contains(pgErr.Message, "users_email_key") {
				return "Email already exists"
			}
			return "Duplicate value, please use another"
		case "23503":
			return "This record is referenced by another table"
		case "23502":
			return "Some required fields are missing"
		case "22P02":
			return "Invalid data format"
		}
		return "A database error occurred"
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "Record not found"
	}

	lowerErr := strings.ToLower(err.Error())
	if strings.Contains(lowerErr, "context deadline exceeded") {
		return "Request timeout"
	}
	if strings.Contains(lowerErr, "context canceled") {
		return "Request was cancelled"
	}

	return err.Error()
}
