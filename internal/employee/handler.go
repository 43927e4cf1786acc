package employee

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(r *Repository) *Handler {
	return &Handler{Repo: r}
}

// CurrentFromContext returns the authenticated employee placed into the gin
// context by the auth middleware.
func CurrentFromContext(c *gin.Context) (*Employee, bool) {
	raw, exists := c.Get("employee")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, false
	}
	current, ok := raw.(*Employee)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authentication context"})
		return nil, false
	}
	return current, true
}

// List - GET /employees (admin only, ordered by first then last name)
func (h *Handler) List(c *gin.Context) {
	employees, err := h.Repo.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

// Me - GET /me
func (h *Handler) Me(c *gin.Context) {
	current, ok := CurrentFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         current.ID,
		"first_name": current.FirstName,
		"last_name":  current.LastName,
		"full_name":  current.FullName(),
		"email":      current.Email,
		"roles":      current.Roles(),
		"theme":      current.Theme,
	})
}

type updateThemeRequest struct {
	Theme Theme `json:"theme"`
}

// UpdateTheme - PUT /me/theme
func (h *Handler) UpdateTheme(c *gin.Context) {
	current, ok := CurrentFromContext(c)
	if !ok {
		return
	}
	var req updateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	if !req.Theme.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be light or dark"})
		return
	}
	current.Theme = req.Theme
	if err := h.Repo.Store(current); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "theme updated"})
}
