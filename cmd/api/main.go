package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/records-service/internal/api/http"
	"github.com/spec-kit/records-service/internal/api/http/handlers"
	"github.com/spec-kit/records-service/internal/auth"
	"github.com/spec-kit/records-service/internal/config"
	"github.com/spec-kit/records-service/internal/mail"
	"github.com/spec-kit/records-service/internal/observability"
	"github.com/spec-kit/records-service/internal/repository"
	"github.com/spec-kit/records-service/internal/service"
	"github.com/spec-kit/records-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	recordStore := store.New(cfg.Storage.DataDir, logger)
	imagesDir := filepath.Join(cfg.Storage.DataDir, "images")
	assets := store.NewAssets(imagesDir, logger)

	accountRepo := repository.NewAccountRepository(recordStore, logger)
	staffRepo := repository.NewStaffRepository(recordStore, assets, logger)
	teaRepo := repository.NewTeaRepository(recordStore, assets, logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	codeRegistry := auth.NewCodeRegistry(cfg.Auth.VerificationTTL())
	mailer := mail.NewSMTPMailer(cfg.SMTP, logger)

	memberService := service.NewMemberService(service.MemberDependencies{
		Accounts:   accountRepo,
		Tokens:     tokenManager,
		Codes:      codeRegistry,
		Mailer:     mailer,
		InviteCode: cfg.Auth.InviteCode,
		BcryptCost: cfg.Auth.BcryptCost,
		DataDir:    cfg.Storage.DataDir,
	}, logger)
	staffService := service.NewStaffService(staffRepo, tokenManager, logger)
	resourceService := service.NewResourceService(teaRepo, tokenManager, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS.AllowedOrigins)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Members:   handlers.NewMembersHandler(memberService),
		Staff:     handlers.NewStaffHandler(staffService),
		Resources: handlers.NewResourcesHandler(resourceService),
		Metrics:   metrics,
		ImagesDir: imagesDir,
	})

	go func() {
		var err error
		if cfg.App.TLSEnabled() {
			err = app.ListenTLS(cfg.App.Addr(), cfg.App.TLSCertFile, cfg.App.TLSKeyFile)
		} else {
			err = app.Listen(cfg.App.Addr())
		}
		if err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
