package request

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfons-cm/community-management-backend/internal/employee"
)

func listRequests(t *testing.T, service *Service, current *employee.Employee, url string) []ListEntity {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/requests", func(c *gin.Context) {
		c.Set("employee", current)
	}, NewHandler(service).List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var rows []ListEntity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	return rows
}

func TestListDefaultsFilterByRole(t *testing.T) {
	db, _, service := setupService(t)
	jane := storeEmployee(t, db, "Jane", "Doe")
	john := storeEmployee(t, db, "John", "Smith")
	admin := storeEmployee(t, db, "Ada", "Admin")
	admin.Admin = true
	require.NoError(t, employee.NewRepository(db).Store(admin))
	gopherCon := storeConference(t, db, "GopherCon")

	_, err := service.Create(context.Background(), jane, &SaveRequestRequest{
		ConferenceID: gopherCon.ID, Role: RoleAttendee, Reason: validReason,
	})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), john, &SaveRequestRequest{
		ConferenceID: gopherCon.ID, Role: RoleSpeaker, Reason: validReason,
	})
	require.NoError(t, err)

	// without a filter parameter a non-admin sees only their own requests
	rows := listRequests(t, service, jane, "/requests")
	require.Len(t, rows, 1)
	assert.Equal(t, jane.ID, rows[0].EmployeeID)

	// an admin defaults to the unfiltered list
	rows = listRequests(t, service, admin, "/requests")
	assert.Len(t, rows, 2)

	// an explicit filter always wins, even an empty one
	rows = listRequests(t, service, jane, "/requests?filter=")
	assert.Len(t, rows, 2)

	rows = listRequests(t, service, jane, "/requests?filter=John+Smith")
	require.Len(t, rows, 1)
	assert.Equal(t, john.ID, rows[0].EmployeeID)
}
