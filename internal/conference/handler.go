package conference

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alfons-cm/community-management-backend/internal/export"
	"github.com/alfons-cm/community-management-backend/internal/web"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// List - GET /conferences?offset=&limit=&filter= or /conferences?future=true
func (h *Handler) List(c *gin.Context) {
	if c.Query("future") == "true" {
		conferences, err := h.Service.ListFuture()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list conferences"})
			return
		}
		c.JSON(http.StatusOK, conferences)
		return
	}
	page, ok := web.ParsePage(c)
	if !ok {
		return
	}
	conferences, err := h.Service.List(page, c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list conferences"})
		return
	}
	c.JSON(http.StatusOK, conferences)
}

// Get - GET /conferences/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conference ID"})
		return
	}
	conf, err := h.Service.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conference"})
		return
	}
	if conf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "conference not found"})
		return
	}
	c.JSON(http.StatusOK, conf)
}

// Create - POST /conferences
func (h *Handler) Create(c *gin.Context) {
	h.save(c, 0)
}

// Update - PUT /conferences/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conference ID"})
		return
	}
	h.save(c, uint(id))
}

func (h *Handler) save(c *gin.Context, id uint) {
	var req SaveConferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	saved, err := h.Service.Save(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		web.WriteSaveError(c, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, saved)
}

// Delete - DELETE /conferences/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conference ID"})
		return
	}
	if err := h.Service.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete conference"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conference deleted"})
}

// Export - GET /conferences/export?format=csv|xlsx|pdf&filter=
func (h *Handler) Export(c *gin.Context) {
	table, err := h.Service.ExportTable(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export conferences"})
		return
	}
	data, filename, contentType, err := export.Render(
		export.Format(c.DefaultQuery("format", "csv")), "conferences", table)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
