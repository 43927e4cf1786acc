package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alfons-cm/community-management-backend/config"
	"github.com/alfons-cm/community-management-backend/internal/employee"
	"github.com/alfons-cm/community-management-backend/internal/mailtemplate"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike, so
	// a caller cannot probe which addresses exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBlocked            = errors.New("too many failed logins, try again later")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Notifier sends a templated mail; the mailtemplate service implements it.
type Notifier interface {
	Notify(ctx context.Context, id mailtemplate.ID, params map[string]string, to string) error
}

type Service interface {
	Login(ctx context.Context, ip string, in LoginInput) (*TokenPair, *employee.Employee, error)
	Refresh(refreshToken string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, current *employee.Employee, oldPassword, newPassword string) error
	GetEmployeeByID(id uint) (*employee.Employee, error)
}

type service struct {
	employees     *employee.Repository
	attempts      AttemptStore
	notifier      Notifier
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(employees *employee.Repository, attempts AttemptStore,
	notifier Notifier, cfg *config.Config) Service {
	return &service{
		employees:     employees,
		attempts:      attempts,
		notifier:      notifier,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// Login verifies the credentials and returns a token pair. An IP with five
// failed attempts is blocked for 24 hours; a successful login resets its
// counter.
func (s *service) Login(ctx context.Context, ip string, in LoginInput) (*TokenPair, *employee.Employee, error) {
	blocked, err := s.attempts.Blocked(ctx, ip)
	if err != nil {
		return nil, nil, err
	}
	if blocked {
		return nil, nil, ErrBlocked
	}

	emp, err := s.employees.GetByEmail(in.Email)
	if err != nil {
		return nil, nil, err
	}
	if emp == nil {
		_ = s.attempts.Failed(ctx, ip)
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(in.Password)); err != nil {
		_ = s.attempts.Failed(ctx, ip)
		return nil, nil, ErrInvalidCredentials
	}
	_ = s.attempts.Reset(ctx, ip)

	accessToken, err := s.generateAccessToken(emp)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateRefreshToken(emp)
	if err != nil {
		return nil, nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, emp, nil
}

func (s *service) generateAccessToken(emp *employee.Employee) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": emp.ID,
		"admin":       emp.Admin,
		"exp":         time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(emp *employee.Employee) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": emp.ID,
		"jti":         uuid.NewString(),
		"exp":         time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["employee_id"] == nil {
		return "", errors.New("invalid token claims")
	}
	employeeID := uint(claims["employee_id"].(float64))
	emp, err := s.employees.Get(employeeID)
	if err != nil || emp == nil {
		return "", errors.New("employee not found")
	}
	return s.generateAccessToken(emp)
}

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomPassword(length int) (string, error) {
	password := make([]byte, length)
	for i := range password {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordChars))))
		if err != nil {
			return "", err
		}
		password[i] = passwordChars[index.Int64()]
	}
	return string(password), nil
}

// RequestPasswordReset sets a random password on the account, flags it for a
// forced change at next login and mails the new password to the employee.
// An unknown email is silently ignored so the endpoint leaks nothing about
// which addresses exist.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	emp, err := s.employees.GetByEmail(email)
	if err != nil {
		return err
	}
	if emp == nil {
		log.Printf("auth: password reset requested for unknown email")
		return nil
	}

	password, err := randomPassword(32)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	emp.PasswordHash = string(hash)
	emp.PasswordChange = true
	if err := s.employees.Store(emp); err != nil {
		return err
	}

	params := map[string]string{
		"employee": emp.FullName(),
		"password": password,
	}
	if err := s.notifier.Notify(ctx, mailtemplate.IDSecurityResetPassword, params, emp.Email); err != nil {
		log.Printf("auth: failed to send password reset mail to %s: %v", emp.Email, err)
	}
	return nil
}

// ChangePassword verifies the old password, stores a hash of the new one and
// clears the forced-change flag.
func (s *service) ChangePassword(ctx context.Context, current *employee.Employee, oldPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(current.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	current.PasswordHash = string(hash)
	current.PasswordChange = false
	return s.employees.Store(current)
}

func (s *service) GetEmployeeByID(id uint) (*employee.Employee, error) {
	return s.employees.Get(id)
}
