package httpx

import (
	"net/http"

	"spice-catalog-backend/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Envelope is the JSON body shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Fail records err on the context and stops the handler chain. ErrorHandler writes
// the response.
func Fail(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the last recorded error as an Envelope. Unclassified errors
// are logged and answered with a generic 500.
func ErrorHandler(log *zap.Logger, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		if last == nil {
			return
		}

		status, body := render(last.Err)
		if status >= http.StatusInternalServerError {
			fields := []zap.Field{
				zap.Error(last.Err),
				zap.String("request_id", c.GetString(RequestIDKey)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			}
			if debug {
				fields = append(fields, zap.Stack("stack"))
			}
			log.Error("request failed", fields...)
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// Recovery turns a handler panic into the standard 500 envelope.
func Recovery(log *zap.Logger, debug bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		fields := []zap.Field{
			zap.Any("panic", recovered),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		}
		if debug {
			fields = append(fields, zap.Stack("stack"))
		}
		log.Error("panic recovered", fields...)

		status, body := render(nil)
		c.AbortWithStatusJSON(status, body)
	})
}

// NotFoundRoute answers unknown routes with the standard envelope.
func NotFoundRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, Envelope{
		Success: false,
		Message: "Route " + c.Request.URL.Path + " not found",
		Error:   apperr.CodeNotFound,
	})
}

func render(err error) (int, Envelope) {
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind == apperr.KindInternal {
		return http.StatusInternalServerError, Envelope{
			Success: false,
			Message: "Server error",
			Error:   apperr.CodeServerError,
		}
	}

	body := Envelope{
		Success: false,
		Message: appErr.Message,
		Error:   appErr.Code,
	}
	if len(appErr.Fields) > 0 {
		body.Data = gin.H{"fields": appErr.Fields}
	}
	return appErr.Kind.Status(), body
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"
