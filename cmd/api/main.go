package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"carhive/internal/config"
	"carhive/internal/database"
	"carhive/internal/logger"
	"carhive/internal/middleware"
	"carhive/internal/modules/agency"
	"carhive/internal/modules/auth"
	"carhive/internal/modules/booking"
	"carhive/internal/modules/catalog"
	"carhive/internal/modules/geo"
	"carhive/internal/modules/payment"
	"carhive/internal/modules/reports"
	"carhive/internal/modules/review"
	"carhive/internal/modules/support"
	"carhive/internal/modules/upload"
	"carhive/internal/notification"
	jwtsvc "carhive/internal/pkg/jwt"
	"carhive/internal/repository"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogFile)
	appLog := logger.L()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	agencyRepo := repository.NewAgencyRepository(db)
	carRepo := repository.NewCarRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	supportRepo := repository.NewSupportRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	mailer := notification.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, appLog)

	authService := auth.NewService(userRepo, agencyRepo, j, mailer, cfg.BaseURL, appLog)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(carRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, carRepo, agencyRepo, mailer)
	bookingHandler := booking.NewHandler(bookingService)

	agencyService := agency.NewService(agencyRepo, bookingRepo, carRepo, reviewRepo, userRepo, mailer)
	agencyHandler := agency.NewHandler(agencyService)

	reviewService := review.NewService(reviewRepo, bookingRepo)
	reviewHandler := review.NewHandler(reviewService)

	reportService := reports.NewService(bookingRepo, agencyRepo, carRepo, userRepo)
	moderationService := reports.NewModerationService(agencyRepo, userRepo, mailer)
	reportHandler := reports.NewHandler(reportService, moderationService)

	gateway := payment.NewStripeGateway(cfg.StripeKey)
	paymentService := payment.NewService(paymentRepo, bookingRepo, carRepo, userRepo, gateway, mailer, cfg.Currency)
	paymentHandler := payment.NewHandler(paymentService)

	hub := support.NewHub(supportRepo)
	defer hub.Close()
	supportService := support.NewService(supportRepo, userRepo, mailer, hub)
	supportHandler := support.NewHandler(supportService, hub)

	var geoHandler *geo.Handler
	if cfg.MapsKey != "" {
		mapsClient, err := geo.NewMapsClient(cfg.MapsKey)
		if err != nil {
			log.Fatal(err)
		}
		geoHandler = geo.NewHandler(geo.NewService(mapsClient))
	}

	var uploadHandler *upload.Handler
	store, err := upload.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		appLog.WithError(err).Warn("object storage unavailable, image upload disabled")
	} else {
		uploadHandler = upload.NewHandler(upload.NewService(carRepo, store))
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(appLog))
	r.Use(middleware.CORS())

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterPublicRoutes(api)
		catalogHandler.RegisterPublicRoutes(api)
		reviewHandler.RegisterPublicRoutes(api)
		if geoHandler != nil {
			geoHandler.RegisterRoutes(api)
		}

		// token optional, guest checkout allowed
		guest := api.Group("/")
		guest.Use(middleware.OptionalAuth(j))
		{
			bookingHandler.RegisterGuestRoutes(guest)
			paymentHandler.RegisterRoutes(guest)
		}

		// authenticated
		protected := api.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			supportHandler.RegisterProtectedRoutes(protected)
		}

		// agency console
		agencyGroup := api.Group("/agency")
		agencyGroup.Use(middleware.Auth(j), middleware.AgencyOnly())
		{
			agencyHandler.RegisterRoutes(agencyGroup)
			catalogHandler.RegisterAgencyRoutes(agencyGroup)
			reviewHandler.RegisterAgencyRoutes(agencyGroup)
			if uploadHandler != nil {
				uploadHandler.RegisterRoutes(agencyGroup)
			}
		}

		// admin console
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			reportHandler.RegisterRoutes(admin)
			supportHandler.RegisterAdminRoutes(admin)
		}
	}

	appLog.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
