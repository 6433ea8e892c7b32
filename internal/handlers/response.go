package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
)

// respondError maps a service error onto the wire. Every error body is
// {"error": message, "code": code} with the status from the taxonomy.
func respondError(c *gin.Context, err error) {
  c.JSON(apierr.StatusOf(err), gin.H{
    "error": err.Error(),
    "code":  apierr.CodeOf(err),
  })
}
