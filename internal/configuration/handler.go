package configuration

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfons-cm/community-management-backend/internal/web"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// List - GET /settings/configuration?offset=&limit=&filter=
func (h *Handler) List(c *gin.Context) {
	page, ok := web.ParsePage(c)
	if !ok {
		return
	}
	rows, err := h.Service.List(page, c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list configuration"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Get - GET /settings/configuration/:key
func (h *Handler) Get(c *gin.Context) {
	row, err := h.Service.Get(c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load configuration entry"})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "configuration entry not found"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// Create - POST /settings/configuration
func (h *Handler) Create(c *gin.Context) {
	h.save(c, "")
}

// Update - PUT /settings/configuration/:key
func (h *Handler) Update(c *gin.Context) {
	h.save(c, c.Param("key"))
}

func (h *Handler) save(c *gin.Context, key string) {
	var req SaveConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	saved, err := h.Service.Save(c.Request.Context(), key, &req)
	if err != nil {
		web.WriteSaveError(c, err)
		return
	}
	status := http.StatusOK
	if key == "" {
		status = http.StatusCreated
	}
	c.JSON(status, saved)
}

// Delete - DELETE /settings/configuration/:key
func (h *Handler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("key")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete configuration entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "configuration entry deleted"})
}
