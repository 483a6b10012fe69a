package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"leave-api/internal/apperror"
	"leave-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the terminal error boundary. Handlers and middleware record
// failures with c.Error; the last one is rendered here. Panics are recovered
// and reported as internal errors.
func ErrorHandler(logger *slog.Logger, exposeStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err := &apperror.Error{
					Kind:    apperror.KindInternal,
					Message: fmt.Sprint(rec),
					Stack:   debug.Stack(),
				}
				render(c, logger, err, exposeStack)
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		render(c, logger, c.Errors.Last().Err, exposeStack)
	}
}

func render(c *gin.Context, logger *slog.Logger, err error, exposeStack bool) {
	status := http.StatusInternalServerError
	message := err.Error()
	var stack []byte

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		status = appErr.Kind.StatusCode()
		message = appErr.Message
		if message == "" {
			message = appErr.Error()
		}
		stack = appErr.Stack
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}

	body := response.Error(status, message)
	if exposeStack {
		if stack == nil {
			stack = []byte(fmt.Sprintf("%+v", err))
		}
		body = body.WithStack(string(stack))
	}
	c.JSON(status, body)
}
