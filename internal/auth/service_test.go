package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alfons-cm/community-management-backend/config"
	"github.com/alfons-cm/community-management-backend/internal/employee"
	"github.com/alfons-cm/community-management-backend/internal/mailtemplate"
)

type notification struct {
	id     mailtemplate.ID
	params map[string]string
	to     string
}

type fakeNotifier struct {
	sent []notification
}

func (f *fakeNotifier) Notify(ctx context.Context, id mailtemplate.ID, params map[string]string, to string) error {
	f.sent = append(f.sent, notification{id, params, to})
	return nil
}

func setup(t *testing.T) (*employee.Repository, *fakeNotifier, Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&employee.Employee{}))

	employees := employee.NewRepository(db)
	notifier := &fakeNotifier{}
	cfg := &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	}
	return employees, notifier, NewService(employees, NewMemoryAttemptStore(), notifier, cfg)
}

func storeEmployee(t *testing.T, employees *employee.Repository, email, password string) *employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	emp := &employee.Employee{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, employees.Store(emp))
	return emp
}

func TestLoginAndRefresh(t *testing.T) {
	employees, _, service := setup(t)
	storeEmployee(t, employees, "jane.doe@example.org", "secret-password")

	tokens, emp, err := service.Login(context.Background(), "10.0.0.1",
		LoginInput{Email: "jane.doe@example.org", Password: "secret-password"})
	require.NoError(t, err)
	require.NotNil(t, emp)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	accessToken, err := service.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	// an access token is not a refresh token
	_, err = service.Refresh(tokens.AccessToken)
	assert.Error(t, err)
}

func TestLoginBlocksIPAfterFiveFailures(t *testing.T) {
	employees, _, service := setup(t)
	storeEmployee(t, employees, "jane.doe@example.org", "secret-password")

	for i := 0; i < 5; i++ {
		_, _, err := service.Login(context.Background(), "10.0.0.1",
			LoginInput{Email: "jane.doe@example.org", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// even the correct password is rejected once the IP is blocked
	_, _, err := service.Login(context.Background(), "10.0.0.1",
		LoginInput{Email: "jane.doe@example.org", Password: "secret-password"})
	assert.ErrorIs(t, err, ErrBlocked)

	// another IP is unaffected
	_, _, err = service.Login(context.Background(), "10.0.0.2",
		LoginInput{Email: "jane.doe@example.org", Password: "secret-password"})
	assert.NoError(t, err)
}

func TestLoginResetsFailureCounter(t *testing.T) {
	employees, _, service := setup(t)
	storeEmployee(t, employees, "jane.doe@example.org", "secret-password")

	for i := 0; i < 4; i++ {
		_, _, err := service.Login(context.Background(), "10.0.0.1",
			LoginInput{Email: "jane.doe@example.org", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, _, err := service.Login(context.Background(), "10.0.0.1",
		LoginInput{Email: "jane.doe@example.org", Password: "secret-password"})
	require.NoError(t, err)

	// the counter starts over after the success
	_, _, err = service.Login(context.Background(), "10.0.0.1",
		LoginInput{Email: "jane.doe@example.org", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordReset(t *testing.T) {
	employees, notifier, service := setup(t)
	emp := storeEmployee(t, employees, "jane.doe@example.org", "secret-password")

	require.NoError(t, service.RequestPasswordReset(context.Background(), "jane.doe@example.org"))

	require.Len(t, notifier.sent, 1)
	mail := notifier.sent[0]
	assert.Equal(t, mailtemplate.IDSecurityResetPassword, mail.id)
	assert.Equal(t, "jane.doe@example.org", mail.to)
	password := mail.params["password"]
	assert.Len(t, password, 32)

	stored, err := employees.Get(emp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.PasswordChange)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)))

	// the old password no longer works
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret-password")))
}

func TestPasswordResetSilentOnUnknownEmail(t *testing.T) {
	_, notifier, service := setup(t)

	require.NoError(t, service.RequestPasswordReset(context.Background(), "nobody@example.org"))
	assert.Empty(t, notifier.sent)
}

func TestChangePassword(t *testing.T) {
	employees, _, service := setup(t)
	emp := storeEmployee(t, employees, "jane.doe@example.org", "secret-password")
	emp.PasswordChange = true
	require.NoError(t, employees.Store(emp))

	err := service.ChangePassword(context.Background(), emp, "wrong", "brand-new-password")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, service.ChangePassword(context.Background(), emp, "secret-password", "brand-new-password"))

	stored, err := employees.Get(emp.ID)
	require.NoError(t, err)
	assert.False(t, stored.PasswordChange)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("brand-new-password")))
}
