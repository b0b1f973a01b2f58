package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/fenixclinic/clinic-api/internal/config"
	"github.com/fenixclinic/clinic-api/internal/email"
	"github.com/fenixclinic/clinic-api/internal/handler"
	appointmentHandler "github.com/fenixclinic/clinic-api/internal/handler/appointment"
	authHandler "github.com/fenixclinic/clinic-api/internal/handler/auth"
	contactHandler "github.com/fenixclinic/clinic-api/internal/handler/contact"
	patientHandler "github.com/fenixclinic/clinic-api/internal/handler/patient"
	reportHandler "github.com/fenixclinic/clinic-api/internal/handler/report"
	userHandler "github.com/fenixclinic/clinic-api/internal/handler/user"
	"github.com/fenixclinic/clinic-api/internal/middleware"
	"github.com/fenixclinic/clinic-api/internal/repository/postgres"
	"github.com/fenixclinic/clinic-api/internal/router"
	appointmentService "github.com/fenixclinic/clinic-api/internal/service/appointment"
	authService "github.com/fenixclinic/clinic-api/internal/service/auth"
	contactService "github.com/fenixclinic/clinic-api/internal/service/contact"
	patientService "github.com/fenixclinic/clinic-api/internal/service/patient"
	reportService "github.com/fenixclinic/clinic-api/internal/service/report"
	userService "github.com/fenixclinic/clinic-api/internal/service/user"
	"github.com/fenixclinic/clinic-api/pkg/auth"
	"github.com/fenixclinic/clinic-api/pkg/logger"
	"github.com/fenixclinic/clinic-api/pkg/report"
	"github.com/fenixclinic/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Log.Level)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	diagnosisRepo := postgres.NewDiagnosisRepository(db)
	recipeRepo := postgres.NewRecipeRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	transactor := postgres.NewTransactor(db)

	// Shared infrastructure
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	mailer := email.NewService(cfg.SMTP)
	generator := report.NewGenerator(report.Config{
		StarterPath:  cfg.Report.StarterPath,
		TemplateDir:  cfg.Report.TemplateDir,
		TmpDir:       cfg.Report.TmpDir,
		CleanupDelay: cfg.Report.CleanupDelay,
		DB: report.DBParams{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
		},
	})

	// Services
	authSvc := authService.NewService(userRepo, hasher, tokens, mailer)
	patientSvc := patientService.NewService(patientRepo, contactRepo, appointmentRepo, diagnosisRepo, recipeRepo, transactor)
	contactSvc := contactService.NewService(contactRepo, patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, diagnosisRepo, recipeRepo, patientRepo, userRepo, transactor)
	userSvc := userService.NewService(userRepo, roleRepo, appointmentRepo, hasher)
	reportSvc := reportService.NewService(generator, patientRepo, appointmentRepo)

	// HTTP layer
	handler.RegisterValidations()
	authMiddleware := middleware.NewAuthMiddleware(tokens, userRepo)
	health := handler.NewHealth(db)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	if len(cfg.CORS.AllowedMethods) > 0 {
		corsConfig.AllowMethods = cfg.CORS.AllowedMethods
	}
	if len(cfg.CORS.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.CORS.AllowedHeaders
	}

	r := router.NewRouter(
		authMiddleware,
		health,
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			CORSConfig:       corsConfig,
			MetricsPrefix:    "clinic_api",
		},
		authHandler.NewHandler(authSvc),
		patientHandler.NewHandler(patientSvc),
		contactHandler.NewHandler(contactSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		userHandler.NewHandler(userSvc),
		reportHandler.NewHandler(reportSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
