package response

import "github.com/gin-gonic/gin"

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// AbortWithError writes the standard error body and stops the handler chain
func AbortWithError(c *gin.Context, code int, message string) {
	RespondJSON(c, StatusError, code, message, nil, nil)
	c.Abort()
}
