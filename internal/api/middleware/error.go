package middleware

import (
	"net/http"

	"quote-simulator/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from panics and renders the standard error
// envelope. The evaluator itself never panics on bad formulas; this is
// the last line for everything else.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			msg = s
		} else if err, ok := recovered.(error); ok {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: msg,
			},
		})
		c.Abort()
	})
}
