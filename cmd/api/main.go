package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/BiciFlow-api/internal/application/auth"
	"github.com/jhoicas/BiciFlow-api/internal/application/billing"
	"github.com/jhoicas/BiciFlow-api/internal/application/chat"
	"github.com/jhoicas/BiciFlow-api/internal/application/code"
	"github.com/jhoicas/BiciFlow-api/internal/application/customer"
	"github.com/jhoicas/BiciFlow-api/internal/application/request"
	"github.com/jhoicas/BiciFlow-api/internal/application/upload"
	infraai "github.com/jhoicas/BiciFlow-api/internal/infrastructure/ai"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/email"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/payment"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/BiciFlow-api/internal/interfaces/http"
	"github.com/jhoicas/BiciFlow-api/pkg/config"
	"github.com/jhoicas/BiciFlow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	codeRepo := postgres.NewCodeRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	requestRepo := postgres.NewBikeRequestRepository(pool)
	convRepo := postgres.NewConversationRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	requestUC := request.NewRequestUseCase(requestRepo, userRepo)
	codeUC := code.NewCodeUseCase(codeRepo)
	customerUC := customer.NewCustomerUseCase(userRepo)

	llmSvc := infraai.NewOpenAIService(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
	chatUC := chat.NewChatUseCase(convRepo, userRepo, companyRepo, codeRepo, requestRepo, subRepo, llmSvc)

	checkoutClient := payment.NewClient(cfg.Billing.SecretKey, "")
	emailSvc := email.NewService(cfg.SMTP)
	billingUC := billing.NewBillingUseCase(userRepo, subRepo, checkoutClient, emailSvc, billing.Config{
		PriceID: cfg.Billing.PriceID,
		AppURL:  cfg.Billing.AppURL,
	}, log)

	// Sin STORAGE_ENDPOINT el servicio arranca igual, con la subida de
	// imágenes deshabilitada (solo dev).
	var uploadUC *upload.UploadUseCase
	if cfg.Storage.Endpoint != "" {
		store, err := storage.NewMinioStore(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión al object storage")
		}
		uploadUC = upload.NewUploadUseCase(store, requestRepo, log)
	}

	// Rate limit del asistente; sin REDIS_ADDR queda sin limitar (solo dev).
	var chatLimiter httpRouter.RateLimiter
	if cfg.Redis.Addr != "" {
		limiter, err := ratelimit.NewFixedWindowLimiter(
			cfg.Redis.Addr, cfg.Redis.Password, "biciflow:ai",
			cfg.Redis.ChatLimit, time.Duration(cfg.Redis.ChatWindowSecs)*time.Second,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("rate limiter")
		}
		chatLimiter = limiter
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // el turno del asistente puede tardar
		IdleTimeout:  time.Second * 60,
		BodyLimit:    2 * 1024 * 1024,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		RequestUC:     requestUC,
		CodeUC:        codeUC,
		CustomerUC:    customerUC,
		ChatUC:        chatUC,
		BillingUC:     billingUC,
		UploadUC:      uploadUC,
		ChatLimiter:   chatLimiter,
		JWTSecret:     cfg.JWT.Secret,
		WebhookSecret: cfg.Billing.WebhookSecret,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
