package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/alfons-cm/community-management-backend/config"
	"github.com/alfons-cm/community-management-backend/database"
	"github.com/alfons-cm/community-management-backend/internal/auth"
	"github.com/alfons-cm/community-management-backend/internal/conference"
	"github.com/alfons-cm/community-management-backend/internal/configuration"
	"github.com/alfons-cm/community-management-backend/internal/employee"
	"github.com/alfons-cm/community-management-backend/internal/mailtemplate"
	"github.com/alfons-cm/community-management-backend/internal/request"
	"github.com/alfons-cm/community-management-backend/routes"
	"github.com/alfons-cm/community-management-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	if err := db.AutoMigrate(
		&employee.Employee{},
		&conference.Conference{},
		&request.Request{},
		&configuration.Configuration{},
		&mailtemplate.MailTemplate{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	employeeRepo := employee.NewRepository(db)
	conferenceRepo := conference.NewRepository(db)
	requestRepo := request.NewRepository(db)
	configurationRepo := configuration.NewRepository(db)
	mailTemplateRepo := mailtemplate.NewRepository(db)

	seedAdmin(cfg, employeeRepo)

	settings := configuration.NewStore(configurationRepo)
	if err := settings.Reload(context.Background()); err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	mailer := utils.NewMailer(cfg)
	mailTemplateSvc := mailtemplate.NewService(mailTemplateRepo, mailer, settings)
	reportMissingTemplates(mailTemplateRepo)

	var attempts auth.AttemptStore
	if client := utils.InitRedis(cfg); client != nil {
		attempts = auth.NewRedisAttemptStore(client)
	} else {
		attempts = auth.NewMemoryAttemptStore()
	}
	authSvc := auth.NewService(employeeRepo, attempts, mailTemplateSvc, cfg)

	conferenceSvc := conference.NewService(conferenceRepo)
	requestSvc := request.NewService(requestRepo, employeeRepo, conferenceRepo, mailTemplateSvc)
	configurationSvc := configuration.NewService(configurationRepo, settings)

	r := gin.Default()
	routes.Setup(r, cfg, &routes.Handlers{
		Auth:           auth.NewHandler(authSvc),
		AuthService:    authSvc,
		Conferences:    conference.NewHandler(conferenceSvc),
		Requests:       request.NewHandler(requestSvc),
		Employees:      employee.NewHandler(employeeRepo),
		Configurations: configuration.NewHandler(configurationSvc),
		MailTemplates:  mailtemplate.NewHandler(mailTemplateSvc),
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// seedAdmin makes sure at least one admin account exists so a fresh install
// can be logged into. It never overwrites an existing account.
func seedAdmin(cfg *config.Config, employees *employee.Repository) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	existing, err := employees.GetByEmail(cfg.AdminEmail)
	if err != nil {
		log.Fatalf("failed to look up admin account: %v", err)
	}
	if existing != nil {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}
	admin := &employee.Employee{
		FirstName:      "Admin",
		LastName:       "Admin",
		Email:          cfg.AdminEmail,
		PasswordHash:   string(hash),
		Admin:          true,
		PasswordChange: true,
	}
	if err := employees.Store(admin); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}
	log.Printf("seeded admin account %s", cfg.AdminEmail)
}

// reportMissingTemplates warns on startup when a mail the application sends
// has no template yet.
func reportMissingTemplates(repo *mailtemplate.Repository) {
	missing, err := repo.MissingIDs()
	if err != nil {
		log.Printf("failed to check mail templates: %v", err)
		return
	}
	for _, id := range missing {
		log.Printf("warning: no mail template for %s", id)
	}
}
