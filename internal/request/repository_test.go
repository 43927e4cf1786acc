package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alfons-cm/community-management-backend/internal/conference"
	"github.com/alfons-cm/community-management-backend/internal/employee"
	"github.com/alfons-cm/community-management-backend/internal/paging"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&employee.Employee{}, &conference.Conference{}, &Request{}))
	return db
}

func storeEmployee(t *testing.T, db *gorm.DB, first, last string) *employee.Employee {
	t.Helper()
	emp := &employee.Employee{
		FirstName: first,
		LastName:  last,
		Email:     first + "." + last + "@example.org",
	}
	require.NoError(t, employee.NewRepository(db).Store(emp))
	return emp
}

func storeConference(t *testing.T, db *gorm.DB, name string) *conference.Conference {
	t.Helper()
	begin := time.Now().AddDate(0, 6, 0)
	return storeConferenceAt(t, db, name, &begin)
}

func storeConferenceAt(t *testing.T, db *gorm.DB, name string, begin *time.Time) *conference.Conference {
	t.Helper()
	cost := 100
	c := &conference.Conference{
		Name:          name,
		Website:       "https://" + name + ".example.org",
		BeginDate:     begin,
		EndDate:       begin,
		Ticket:        &cost,
		Travel:        &cost,
		Accommodation: &cost,
	}
	require.NoError(t, conference.NewRepository(db).Store(c))
	return c
}

func storeRequest(t *testing.T, repo *Repository, employeeID, conferenceID uint, requested time.Time) {
	t.Helper()
	require.NoError(t, repo.Store(&Request{
		EmployeeID:   employeeID,
		ConferenceID: conferenceID,
		Role:         RoleAttendee,
		Reason:       "I want to keep up with the Go ecosystem and meet the community.",
		Status:       StatusSubmitted,
		RequestDate:  &requested,
	}))
}

func TestFindJoinsAndOrdersByRequestDateDesc(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	jane := storeEmployee(t, db, "Jane", "Doe")
	john := storeEmployee(t, db, "John", "Smith")
	gopherCon := storeConference(t, db, "GopherCon")
	dotGo := storeConference(t, db, "dotGo")

	older := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	storeRequest(t, repo, jane.ID, gopherCon.ID, older)
	storeRequest(t, repo, john.ID, dotGo.ID, newer)

	rows, err := repo.Find(paging.NewPage(0, 50), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "John", rows[0].EmployeeFirstName)
	assert.Equal(t, "dotGo", rows[0].ConferenceName)
	assert.Equal(t, "Jane", rows[1].EmployeeFirstName)
	assert.Equal(t, "GopherCon", rows[1].ConferenceName)
}

func TestFindFiltersByDisplayedNameAndConference(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	jane := storeEmployee(t, db, "Jane", "Doe")
	john := storeEmployee(t, db, "John", "Smith")
	gopherCon := storeConference(t, db, "GopherCon")
	dotGo := storeConference(t, db, "dotGo")

	now := time.Now()
	storeRequest(t, repo, jane.ID, gopherCon.ID, now)
	storeRequest(t, repo, john.ID, dotGo.ID, now)

	// the filter matches the concatenation the list displays
	rows, err := repo.Find(paging.NewPage(0, 50), "Jane Doe")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, jane.ID, rows[0].EmployeeID)

	// neither first nor last name alone spans the space
	rows, err = repo.Find(paging.NewPage(0, 50), "e d")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, jane.ID, rows[0].EmployeeID)

	// conference name matches too
	rows, err = repo.Find(paging.NewPage(0, 50), "gopher")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, gopherCon.ID, rows[0].ConferenceID)

	// clearing the filter reveals everything
	rows, err = repo.Find(paging.NewPage(0, 50), "")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestStoreUpsertsOnCompositeKey(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	jane := storeEmployee(t, db, "Jane", "Doe")
	gopherCon := storeConference(t, db, "GopherCon")

	now := time.Now()
	storeRequest(t, repo, jane.ID, gopherCon.ID, now)

	stored, err := repo.Get(jane.ID, gopherCon.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	stored.Role = RoleSpeaker
	require.NoError(t, repo.Store(stored))

	updated, err := repo.Get(jane.ID, gopherCon.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, RoleSpeaker, updated.Role)

	// still one row for the pair
	rows, err := repo.FindAll("")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestGetAndDeleteByCompositeKey(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	jane := storeEmployee(t, db, "Jane", "Doe")
	gopherCon := storeConference(t, db, "GopherCon")
	storeRequest(t, repo, jane.ID, gopherCon.ID, time.Now())

	missing, err := repo.Get(jane.ID, 4711)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Delete(jane.ID, gopherCon.ID))
	require.NoError(t, repo.Delete(jane.ID, gopherCon.ID))

	gone, err := repo.Get(jane.ID, gopherCon.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
