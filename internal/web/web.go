// Package web holds the small request/response helpers shared by all list
// and edit handlers.
package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alfons-cm/community-management-backend/internal/editform"
	"github.com/alfons-cm/community-management-backend/internal/paging"
)

const defaultLimit = 50

// ParsePage reads offset/limit query parameters. Negative values are a
// client error and answered with 400; the paging contract itself would
// panic on them.
func ParsePage(c *gin.Context) (paging.Page, bool) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return paging.Page{}, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return paging.Page{}, false
	}
	return paging.NewPage(offset, limit), true
}

// WriteSaveError answers an edit-form save failure: validation failures are
// field-scoped data (422), everything else is fatal for the operation (500).
func WriteSaveError(c *gin.Context, err error) {
	var failures editform.ValidationErrors
	if errors.As(err, &failures) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": failures})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
