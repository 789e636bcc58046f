package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope shared by the table and booking endpoints.
type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(code int) bool {
	return code >= 200 && code < 300
}

// RespondJSON writes data under the envelope; status follows the HTTP code.
func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{Status: success(code), Message: message, Data: data})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{Message: err.Error()})
}

// AbortWithError is RespondError for middlewares: later handlers are skipped.
func AbortWithError(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, JSONResponse{Message: err.Error()})
}
