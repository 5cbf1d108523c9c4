package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ridereg/internal/auth"
	"ridereg/internal/authz"
	"ridereg/internal/cache"
	"ridereg/internal/config"
	"ridereg/internal/db"
	"ridereg/internal/handler"
	"ridereg/internal/model"
	"ridereg/internal/repository"
	"ridereg/internal/router"
	"ridereg/internal/service"
)

// @title Ride Event Registration API
// @version 1.0
// @description Event registration platform with rider signup, admin approval workflow, QR tickets, certificates, Q&A and content management.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.AppUser{},
		&model.Registration{},
		&model.QnaQuestion{},
		&model.QnaReply{},
		&model.FAQ{},
		&model.Offer{},
		&model.Organizer{},
		&model.LocationPartner{},
		&model.ScheduleEvent{},
		&model.Announcement{},
		&model.EventSettings{},
		&model.LocationSettings{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	regRepo := repository.NewRegistrationRepository(gormDB)
	qnaRepo := repository.NewQnaRepository(gormDB)
	settingsRepo := repository.NewSettingsRepository(gormDB)
	faqRepo := repository.NewFAQRepository(gormDB)
	offerRepo := repository.NewOfferRepository(gormDB)
	organizerRepo := repository.NewOrganizerRepository(gormDB)
	partnerRepo := repository.NewPartnerRepository(gormDB)
	scheduleRepo := repository.NewScheduleRepository(gormDB)
	announcementRepo := repository.NewAnnouncementRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	policy := authz.NewPolicy(userRepo)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, policy)
	regService := service.NewRegistrationService(regRepo, policy)
	qnaService := service.NewQnaService(qnaRepo, policy)
	settingsService := service.NewSettingsService(settingsRepo, policy, cacheClient)
	ticketService := service.NewTicketService(regService, settingsService, cfg.QRServiceURL, cfg.PublicBaseURL)
	uploadService := service.NewUploadService(policy, cfg.UploadDir, cfg.PublicBaseURL)
	faqService := service.NewContentService(faqRepo, policy, cacheClient, "faqs")
	offerService := service.NewContentService(offerRepo, policy, cacheClient, "offers")
	organizerService := service.NewContentService(organizerRepo, policy, cacheClient, "organizers")
	partnerService := service.NewContentService(partnerRepo, policy, cacheClient, "partners")
	scheduleService := service.NewContentService(scheduleRepo, policy, cacheClient, "schedule")
	announcementService := service.NewContentService(announcementRepo, policy, cacheClient, "announcements")

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	regHandler := handler.NewRegistrationHandler(regService)
	qnaHandler := handler.NewQnaHandler(qnaService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	contentHandler := handler.NewContentHandler(
		faqService,
		offerService,
		organizerService,
		partnerService,
		scheduleService,
		announcementService,
		settingsService,
	)

	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		userHandler,
		regHandler,
		qnaHandler,
		contentHandler,
		ticketHandler,
		uploadHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
