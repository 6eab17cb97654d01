// internal/app/system/apierr/errorlogger.go
package apierr

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs a server-side log line with the client-facing JSON
// error, so handlers never log and respond in two separate steps.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger backed by the given zap logger.
func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: log}
}

// LogServerError logs the failure with request context and responds 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	e.log.Error(logMsg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	Internal(w)
}

// LogBadRequest logs a malformed request at warn level and responds
// with a validation error on the named field.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, field, userMsg string) {
	e.log.Warn(logMsg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	Validation(w, map[string]string{field: userMsg})
}
