package utils

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

func ColorText(text, color string) string {
	return color + text + Reset
}

func ColorStatus(code int) string {
	switch {
	case code >= 200 && code < 300:
		return ColorText(fmt.Sprintf("%d", code), Green)
	case code >= 400 && code < 500:
		return ColorText(fmt.Sprintf("%d", code), Yellow)
	case code >= 500:
		return ColorText(fmt.Sprintf("%d", code), Red)
	default:
		return fmt.Sprintf("%d", code)
	}
}

// PrintLogInfo emits one structured line per handler invocation.
func PrintLogInfo(username *string, statusCode int, functionName string, err *error) {
	user := "Unknown"
	if username != nil {
		user = *username
	}

	ev := log.Info()
	if statusCode >= http.StatusInternalServerError {
		ev = log.Error()
	} else if statusCode >= http.StatusBadRequest {
		ev = log.Warn()
	}

	ev = ev.Str("user", user).Int("status", statusCode).Str("function", functionName)
	if err != nil && *err != nil {
		ev = ev.Err(*err)
	}
	ev.Send()
}
