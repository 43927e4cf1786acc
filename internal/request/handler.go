package request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alfons-cm/community-management-backend/internal/employee"
	"github.com/alfons-cm/community-management-backend/internal/export"
	"github.com/alfons-cm/community-management-backend/internal/web"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// effectiveFilter defaults the list to the current employee's own records
// when no explicit filter parameter is present: non-admins start with their
// full name, admins see everything. An explicit (even empty) filter wins.
func effectiveFilter(c *gin.Context, current *employee.Employee) string {
	if filter, ok := c.GetQuery("filter"); ok {
		return filter
	}
	if current.Admin {
		return ""
	}
	return current.FullName()
}

// List - GET /requests?offset=&limit=&filter=
func (h *Handler) List(c *gin.Context) {
	current, ok := employee.CurrentFromContext(c)
	if !ok {
		return
	}
	page, ok := web.ParsePage(c)
	if !ok {
		return
	}
	rows, err := h.Service.List(page, effectiveFilter(c, current))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func pairParams(c *gin.Context) (uint, uint, bool) {
	employeeID, err := strconv.Atoi(c.Param("employee_id"))
	if err != nil || employeeID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee ID"})
		return 0, 0, false
	}
	conferenceID, err := strconv.Atoi(c.Param("conference_id"))
	if err != nil || conferenceID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conference ID"})
		return 0, 0, false
	}
	return uint(employeeID), uint(conferenceID), true
}

// Create - POST /requests
func (h *Handler) Create(c *gin.Context) {
	current, ok := employee.CurrentFromContext(c)
	if !ok {
		return
	}
	var req SaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	saved, err := h.Service.Create(c.Request.Context(), current, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case errors.Is(err, ErrUnknownEmployee),
			errors.Is(err, ErrUnknownConference),
			errors.Is(err, ErrConferenceStarted):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		web.WriteSaveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// Update - PUT /requests/:employee_id/:conference_id
func (h *Handler) Update(c *gin.Context) {
	employeeID, conferenceID, ok := pairParams(c)
	if !ok {
		return
	}
	var req SaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	saved, err := h.Service.Update(c.Request.Context(), employeeID, conferenceID, &req)
	if err != nil {
		web.WriteSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Delete - DELETE /requests/:employee_id/:conference_id
func (h *Handler) Delete(c *gin.Context) {
	current, ok := employee.CurrentFromContext(c)
	if !ok {
		return
	}
	employeeID, conferenceID, ok := pairParams(c)
	if !ok {
		return
	}
	err := h.Service.Delete(c.Request.Context(), current, employeeID, conferenceID)
	if err != nil {
		if errors.Is(err, ErrNotSubmitted) || errors.Is(err, ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "request deleted"})
}

// SetStatus - POST /requests/:employee_id/:conference_id/status (admin only)
func (h *Handler) SetStatus(c *gin.Context) {
	employeeID, conferenceID, ok := pairParams(c)
	if !ok {
		return
	}
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	saved, err := h.Service.SetStatus(c.Request.Context(), employeeID, conferenceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update request status"})
		}
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Export - GET /requests/export?format=csv|xlsx|pdf&filter=
func (h *Handler) Export(c *gin.Context) {
	current, ok := employee.CurrentFromContext(c)
	if !ok {
		return
	}
	table, err := h.Service.ExportTable(effectiveFilter(c, current))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export requests"})
		return
	}
	data, filename, contentType, err := export.Render(
		export.Format(c.DefaultQuery("format", "csv")), "requests", table)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
