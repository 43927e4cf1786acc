package mailtemplate

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

// List - GET /settings/mail-templates?offset=&limit=&filter=
func (h *Handler) List(c *gin.Context) {
	page, ok := web.ParsePage(c)
	if !ok {
		return
	}
	rows, err := h.Service.List(page, c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list mail templates"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Get - GET /settings/mail-templates/:id
func (h *Handler) Get(c *gin.Context) {
	row, err := h.Service.Get(ID(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load mail template"})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mail template not found"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// Missing - GET /settings/mail-templates/missing
func (h *Handler) Missing(c *gin.Context) {
	missing, err := h.Service.MissingIDs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check mail templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"missing": missing})
}

// Create - POST /settings/mail-templates
func (h *Handler) Create(c *gin.Context) {
	h.save(c, "")
}

// Update - PUT /settings/mail-templates/:id
func (h *Handler) Update(c *gin.Context) {
	h.save(c, ID(c.Param("id")))
}

func (h *Handler) save(c *gin.Context, id ID) {
	var req SaveMailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	saved, err := h.Service.Save(c.Request.Context(), id, &req)
	if err != nil {
		web.WriteSaveError(c, err)
		return
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	c.JSON(status, saved)
}

// Delete - DELETE /settings/mail-templates/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.Service.Delete(ID(c.Param("id"))); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete mail template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "mail template deleted"})
}
