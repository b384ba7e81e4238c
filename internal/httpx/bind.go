package httpx

import (
	"spice-catalog-backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

// BindJSON decodes the request body into dst.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidField, "Invalid request body", err)
	}
	return nil
}
