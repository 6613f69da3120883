package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirtansukhadiya/logified-prod/internal/delivery/http/response"
	"github.com/kirtansukhadiya/logified-prod/pkg/apperror"
)

// MessageUnexpected is the only thing a client learns about an unexpected failure.
const MessageUnexpected = "An unexpected error occurred. Please try again later."

// ErrorHandler turns the last error pushed with c.Error into the JSON
// envelope. Wrapped causes are logged, never sent to the client. Handlers
// that already wrote a response (e.g. an HTML page) only get the logging.
func ErrorHandler(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		ctx := c.Request.Context()
		requestID := c.GetString(RequestIDKey)

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				level := slog.LevelInfo
				if appErr.Code >= http.StatusInternalServerError {
					level = slog.LevelError
				}
				log.Log(ctx, level, "request failed",
					slog.Int("status", appErr.Code),
					slog.String("path", c.Request.URL.Path),
					slog.String("request_id", requestID),
					slog.String("error", appErr.Err.Error()),
				)
			}
			if !c.Writer.Written() {
				response.Error(c, appErr.Code, appErr.Message, nil)
			}
			return
		}

		log.ErrorContext(ctx, "internal server error",
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		if !c.Writer.Written() {
			response.Error(c, http.StatusInternalServerError, MessageUnexpected, nil)
		}
	}
}
