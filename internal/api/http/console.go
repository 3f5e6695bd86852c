package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExecuteRequest is the body of POST /console/execute
type ExecuteRequest struct {
	Script string `json:"script" binding:"required"`
}

// ReconcileRequest is the body of POST /explorer/reconcile
type ReconcileRequest struct {
	Output string `json:"output"`
}

// Execute runs a script against the backend and reconciles its output
func (h *Handlers) Execute(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "script is required"})
		return
	}
	if h.tooLarge(c, len(req.Script)) {
		return
	}

	res, err := h.service.Execute(c.Request.Context(), req.Script, nil)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch_id": res.BatchID,
		"output":   res.Output,
		"model":    res.Model,
		"report":   res.Report,
	})
}

// GetOutput returns the output of the last batch
func (h *Handlers) GetOutput(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"output": h.service.Output()})
}

// ClearOutput discards the last output
func (h *Handlers) ClearOutput(c *gin.Context) {
	h.service.ClearOutput()
	c.Status(http.StatusNoContent)
}

func (h *Handlers) tooLarge(c *gin.Context, n int) bool {
	if h.limits.MaxScriptBytes > 0 && int64(n) > h.limits.MaxScriptBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("script exceeds %d bytes", h.limits.MaxScriptBytes),
		})
		return true
	}
	return false
}
