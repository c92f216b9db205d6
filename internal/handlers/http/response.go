package http

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"streampulse/pkg/errors"
)

// Every success body carries the same envelope; lists add a count.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// pathUUID parses a :param path segment; a malformed id is a client
// error, never a 404.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.Error(errors.NewInvalidInputError("invalid " + name + " format"))
		return uuid.Nil, false
	}
	return id, true
}

// bindingError turns a BindJSON failure into an invalid-input error,
// carrying per-field complaints when the validator produced them.
func bindingError(err error) *errors.AppError {
	appErr := errors.NewInvalidInputError("invalid request format")

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field())+": failed "+fe.Tag()+" validation")
		}
		appErr.WithContext("errors", fields)
	}
	return appErr
}

// parseUUIDField parses a uuid carried in a request body field.
func parseUUIDField(value, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.NewInvalidInputError("invalid " + name + " format")
	}
	return id, nil
}

// callerID reads the authenticated user id placed by the auth middleware.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		c.Error(errors.NewUnauthorizedError("authentication required"))
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		c.Error(errors.NewUnauthorizedError("authentication required"))
		return uuid.Nil, false
	}
	return id, true
}
