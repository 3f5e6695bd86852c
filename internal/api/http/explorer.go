package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/godisk/internal/shared/hash"
)

// GetExplorer returns the whole model as JSON, or YAML with ?format=yaml.
// Responses carry an ETag; a matching If-None-Match yields 304.
func (h *Handlers) GetExplorer(c *gin.Context) {
	snap := h.service.Snapshot()

	tag, err := hash.ETag(snap)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("ETag", tag)
	if etagMatches(c.GetHeader("If-None-Match"), tag) {
		c.Status(http.StatusNotModified)
		return
	}

	if c.Query("format") == "yaml" {
		out, err := yaml.Marshal(snap)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", out)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// etagMatches reports whether an If-None-Match header names tag. Weak
// validators compare equal to their strong form.
func etagMatches(header, tag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == tag {
			return true
		}
	}
	return false
}

// ResetExplorer empties the model
func (h *Handlers) ResetExplorer(c *gin.Context) {
	if err := h.service.Reset(); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reconcile applies raw backend output to the model
func (h *Handlers) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if h.tooLarge(c, len(req.Output)) {
		return
	}

	res, err := h.service.Apply(c.Request.Context(), req.Output)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Refresh rebuilds the model from the last output
func (h *Handlers) Refresh(c *gin.Context) {
	res, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListDisks returns the disks with their partitions
func (h *Handlers) ListDisks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"disks": h.service.Disks()})
}

// GetTree returns the directory tree
func (h *Handlers) GetTree(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Tree())
}

// FindNodes matches tree nodes against a glob pattern
func (h *Handlers) FindNodes(c *gin.Context) {
	pattern := c.Query("pattern")
	if pattern == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pattern is required"})
		return
	}

	matches, err := h.service.Find(pattern)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pattern": pattern,
		"matches": matches,
		"count":   len(matches),
	})
}
