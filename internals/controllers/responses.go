package controllers

import (
	"github.com/gin-gonic/gin"

	"library-service/internals/apperrors"
)

// respondError translates a service error into the API error shape:
// {"detail": <message or violation list>} with the status from the taxonomy.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{"detail": apperrors.Detail(err)})
}
