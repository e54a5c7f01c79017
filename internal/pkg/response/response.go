package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MousScales/Momsites/internal/domain"
)

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}

// FromError writes err as {"error": message} with the status of its kind.
// Untagged errors are reported as a generic internal error.
func FromError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(kind)
	msg := err.Error()
	if kind == domain.KindInternal {
		msg = "internal server error"
	}
	_ = c.Error(err)
	Error(c, status, msg)
}

func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidAmount, domain.KindMissingParameter, domain.KindInvalidRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
