package httputil

import (
	"github.com/gin-gonic/gin"

	appErrors "gatorkeys/pkg/errors"
)

// Error writes the JSON error body with the status mapped from the
// error's code.
func Error(c *gin.Context, err error) {
	c.JSON(appErrors.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"code":  appErrors.CodeOf(err),
	})
}
