package conference

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alfons-cm/community-management-backend/internal/paging"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&Conference{}))
	return NewRepository(db)
}

func date(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func amount(v int) *int {
	return &v
}

func storeConference(t *testing.T, repo *Repository, name string, begin *time.Time) *Conference {
	t.Helper()
	c := &Conference{
		Name:          name,
		Website:       "https://" + name + ".example.org",
		BeginDate:     begin,
		EndDate:       begin,
		Ticket:        amount(100),
		Travel:        amount(50),
		Accommodation: amount(200),
	}
	require.NoError(t, repo.Store(c))
	return c
}

func names(conferences []Conference) []string {
	result := make([]string, len(conferences))
	for i, c := range conferences {
		result[i] = c.Name
	}
	return result
}

func TestFindOrdersByBeginDateDescWithUndatedFirst(t *testing.T) {
	repo := setupRepo(t)
	storeConference(t, repo, "oldest", date("2023-03-01"))
	storeConference(t, repo, "newest", date("2025-11-20"))
	storeConference(t, repo, "undated", nil)
	storeConference(t, repo, "middle", date("2024-06-15"))

	rows, err := repo.Find(paging.NewPage(0, 50), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"undated", "newest", "middle", "oldest"}, names(rows))
}

func TestFindOrdersEqualDatesByName(t *testing.T) {
	repo := setupRepo(t)
	storeConference(t, repo, "beta", date("2025-05-01"))
	storeConference(t, repo, "alpha", date("2025-05-01"))
	storeConference(t, repo, "gamma", date("2025-05-01"))

	rows, err := repo.Find(paging.NewPage(0, 50), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, names(rows))
}

func TestFindFilterIsTrimmedAndCaseInsensitive(t *testing.T) {
	repo := setupRepo(t)
	storeConference(t, repo, "GopherCon Europe", date("2025-06-01"))
	storeConference(t, repo, "dotGo", date("2025-03-01"))
	storeConference(t, repo, "FOSDEM", date("2025-02-01"))

	rows, err := repo.Find(paging.NewPage(0, 50), "  gopher  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"GopherCon Europe"}, names(rows))

	// blank filter matches everything
	rows, err = repo.Find(paging.NewPage(0, 50), "   ")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestFindPagesPartitionTheResult(t *testing.T) {
	repo := setupRepo(t)
	storeConference(t, repo, "a", date("2025-01-01"))
	storeConference(t, repo, "b", date("2025-02-01"))
	storeConference(t, repo, "c", date("2025-03-01"))
	storeConference(t, repo, "d", date("2025-04-01"))
	storeConference(t, repo, "e", date("2025-05-01"))

	first, err := repo.Find(paging.NewPage(0, 2), "")
	require.NoError(t, err)
	second, err := repo.Find(paging.NewPage(2, 2), "")
	require.NoError(t, err)
	third, err := repo.Find(paging.NewPage(4, 2), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"e", "d"}, names(first))
	assert.Equal(t, []string{"c", "b"}, names(second))
	assert.Equal(t, []string{"a"}, names(third))
}

func TestFindFutureReturnsOnlyUpcoming(t *testing.T) {
	repo := setupRepo(t)
	today := *date("2025-06-15")
	storeConference(t, repo, "past", date("2025-06-01"))
	storeConference(t, repo, "today", date("2025-06-15"))
	storeConference(t, repo, "later", date("2025-09-01"))
	storeConference(t, repo, "soon", date("2025-07-01"))
	storeConference(t, repo, "undated", nil)

	rows, err := repo.FindFuture(today)
	require.NoError(t, err)
	assert.Equal(t, []string{"soon", "later"}, names(rows))
}

func TestGetMissingReturnsNil(t *testing.T) {
	repo := setupRepo(t)
	c, err := repo.Get(4711)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := setupRepo(t)
	c := storeConference(t, repo, "short-lived", date("2025-08-01"))

	require.NoError(t, repo.Delete(c.ID))
	require.NoError(t, repo.Delete(c.ID))

	gone, err := repo.Get(c.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
