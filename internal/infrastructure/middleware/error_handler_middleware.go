package middleware

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"streampulse/internal/core/domain"
	"streampulse/pkg/errors"
)

// domainErrorMap translates sentinel errors from the core into
// transport-level responses.
var domainErrorMap = map[error]*errors.AppError{
	domain.ErrUserNotFound:       errors.NewNotFoundError("user"),
	domain.ErrEmailTaken:         errors.NewConflictError("user already exists with this email"),
	domain.ErrInvalidCredentials: errors.NewUnauthorizedError("invalid credentials"),
	domain.ErrChannelNotFound:    errors.NewNotFoundError("channel"),
	domain.ErrNotOwner:           errors.NewForbiddenError("you do not own this resource"),
	domain.ErrStreamNotFound:     errors.NewNotFoundError("stream"),
	domain.ErrStreamAlreadyLive:  errors.NewInvalidStateError("stream is already live"),
	domain.ErrStreamNotLive:      errors.NewInvalidStateError("stream is not live"),
	domain.ErrStreamEnded:        errors.NewInvalidStateError("stream has already ended"),
	domain.ErrViewerNotFound:     errors.NewNotFoundError("viewer"),
}

func resolveAppError(err error) *errors.AppError {
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr
	}
	for sentinel, appErr := range domainErrorMap {
		if stderrors.Is(err, sentinel) {
			return appErr
		}
	}
	return nil
}

// ErrorHandlerMiddleware converts errors attached by handlers into the
// response envelope. Internal error detail reaches the client only in
// development.
func ErrorHandlerMiddleware(logger *zap.SugaredLogger, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appErr := resolveAppError(err); appErr != nil {
			if appErr.HTTPStatus >= 500 {
				logger.Errorw("application error",
					"code", appErr.Code,
					"message", appErr.Message,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
			} else {
				logger.Debugw("request rejected",
					"code", appErr.Code,
					"message", appErr.Message,
					"path", c.Request.URL.Path,
				)
			}

			body := gin.H{
				"success": false,
				"error":   string(appErr.Code),
				"message": appErr.Message,
			}
			if fieldErrs, ok := appErr.Context["errors"]; ok {
				body["errors"] = fieldErrs
			}
			c.JSON(appErr.HTTPStatus, body)
			return
		}

		logger.Errorw("unhandled error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)

		message := "internal server error"
		if development {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   string(errors.ErrCodeInternal),
			"message": message,
		})
	}
}

// RecoveryMiddleware recovers from panics and returns proper error responses
func RecoveryMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorw("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   string(errors.ErrCodeInternal),
					"message": "internal server error",
				})
				c.Abort()
			}
		}()

		c.Next()
	}
}
