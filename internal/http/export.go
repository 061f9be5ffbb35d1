package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) exportBooks(c *gin.Context) {
	result, err := h.exports.Export(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.WithField("location", result.Location).WithField("count", result.Count).Info("catalog exported")
	c.JSON(http.StatusCreated, gin.H{
		"location": result.Location,
		"count":    result.Count,
	})
}
