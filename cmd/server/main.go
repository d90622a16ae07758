package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-management-backend/internal/config"
	"hospital-management-backend/internal/database"
	"hospital-management-backend/internal/handler"
	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/routes"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "hospital-management-backend"

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-server",
		Short: "Hospital management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")
			return runServer(migrate)
		},
	}
	cmd.Flags().Bool("migrate", false, "Apply schema migrations before serving (also DB_AUTO_MIGRATE)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info("schema migrated", zap.Int("tables", len(database.AllModels())), zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin",
		Short: "Create the default admin account if no admin exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if cfg.Admin.Password == "" {
				return errors.New("ADMIN_PASSWORD must be set")
			}

			tokens, err := service.NewTokenService(cfg.Token.Secret, cfg.Token.Expiry)
			if err != nil {
				return err
			}
			authService := service.NewAuthService(repository.NewUserRepo(db), repository.NewAuditRepo(db), tokens, log)

			created, err := authService.EnsureAdmin(cmd.Context(), service.RegisterInput{
				Username: cfg.Admin.Username,
				Email:    cfg.Admin.Email,
				Password: cfg.Admin.Password,
				FullName: cfg.Admin.FullName,
			})
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			if created {
				log.Info("admin account created", zap.String("username", cfg.Admin.Username))
			} else {
				log.Info("an admin account already exists, nothing to do")
			}
			return nil
		},
	}
}

// bootstrap loads and validates configuration, builds the logger and opens
// the database
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, log, db, nil
}

func runServer(migrate bool) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if migrate || cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("schema migrated")
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	professionalRepo := repository.NewProfessionalRepo(db)
	bedRepo := repository.NewBedRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)

	// Services
	tokens, err := service.NewTokenService(cfg.Token.Secret, cfg.Token.Expiry)
	if err != nil {
		return err
	}
	guard := service.NewAccessGuard(tokens, userRepo)
	authService := service.NewAuthService(userRepo, auditRepo, tokens, log)
	patientService := service.NewPatientService(patientRepo, auditRepo, log)
	professionalService := service.NewProfessionalService(professionalRepo)
	appointmentService := service.NewAppointmentService(repository.NewAppointmentRepo(db), patientRepo, professionalRepo)
	examService := service.NewExamService(repository.NewExamRepo(db), patientRepo)
	bedService := service.NewBedService(bedRepo, patientRepo, auditRepo, log)
	consultationService := service.NewConsultationService(repository.NewConsultationRepo(db), patientRepo, professionalRepo, cfg.Consultation.VideoBaseURL)
	prescriptionService := service.NewPrescriptionService(repository.NewPrescriptionRepo(db), patientRepo, professionalRepo, auditRepo, log)
	scheduleService := service.NewScheduleService(scheduleRepo, professionalRepo, auditRepo, log)
	supplyService := service.NewSupplyService(repository.NewSupplyRepo(db), auditRepo, log)

	// Router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	routes.Setup(router, routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Patients:      handler.NewPatientHandler(patientService),
		Professionals: handler.NewProfessionalHandler(professionalService),
		Care:          handler.NewCareHandler(appointmentService, examService),
		Beds:          handler.NewBedHandler(bedService),
		Consultations: handler.NewConsultationHandler(consultationService, prescriptionService),
		Schedule:      handler.NewScheduleHandler(scheduleService),
		Supplies:      handler.NewSupplyHandler(supplyService),
		Audit:         handler.NewAuditHandler(service.NewAuditService(auditRepo)),
	}, middleware.NewAccessControlMiddleware(guard), cfg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("server exited")
	return nil
}
