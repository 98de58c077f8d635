package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/BiciFlow-api/internal/application/auth"
	"github.com/jhoicas/BiciFlow-api/internal/application/billing"
	"github.com/jhoicas/BiciFlow-api/internal/application/chat"
	"github.com/jhoicas/BiciFlow-api/internal/application/code"
	"github.com/jhoicas/BiciFlow-api/internal/application/customer"
	"github.com/jhoicas/BiciFlow-api/internal/application/request"
	"github.com/jhoicas/BiciFlow-api/internal/application/upload"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	RequestUC     *request.RequestUseCase
	CodeUC        *code.CodeUseCase
	CustomerUC    *customer.CustomerUseCase
	ChatUC        *chat.ChatUseCase
	BillingUC     *billing.BillingUseCase
	UploadUC      *upload.UploadUseCase
	ChatLimiter   RateLimiter
	JWTSecret     string
	WebhookSecret string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register-seller", authHandler.RegisterSeller)
	authGroup.Post("/register-buyer", authHandler.RegisterBuyer)
	authGroup.Post("/login", authHandler.Login)

	// Webhook de pagos (público; la autenticación es la firma HMAC)
	billingHandler := NewBillingHandler(deps.BillingUC, deps.WebhookSecret, deps.Log)
	api.Post("/billing/webhook", billingHandler.Webhook)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solicitudes de bicicleta
	requestHandler := NewRequestHandler(deps.RequestUC)
	protected.Get("/buyer/requests", requestHandler.ListForBuyer)
	protected.Get("/seller/requests", RequireCapability(domain.CanDecideRequest), requestHandler.ListForSeller)
	protected.Get("/requests/:id", requestHandler.GetByID)
	protected.Post("/requests", RequireCapability(domain.CanCreateRequest), requestHandler.Create)
	protected.Patch("/requests/:id/status", RequireCapability(domain.CanDecideRequest), requestHandler.Decide)

	// Roster de compradores (vendedor)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	protected.Get("/customers", RequireCapability(domain.CanListCustomers), customerHandler.List)

	// Códigos de invitación (vendedor)
	codeHandler := NewCodeHandler(deps.CodeUC)
	codes := protected.Group("/codes", RequireCapability(domain.CanManageCodes))
	codes.Post("/", codeHandler.Generate)
	codes.Get("/", codeHandler.List)
	codes.Delete("/:id", codeHandler.Delete)

	// Asistente IA (vendedor, rate-limited)
	chatHandler := NewChatHandler(deps.ChatUC, deps.ChatLimiter)
	protected.Get("/chat/conversation", RequireCapability(domain.CanUseAssistant), chatHandler.GetConversation)
	protected.Post("/ai", RequireCapability(domain.CanUseAssistant), chatHandler.SendMessage)

	// Suscripción (vendedor)
	protected.Post("/billing/checkout", RequireCapability(domain.CanManageBilling), billingHandler.CreateCheckoutSession)

	// Subida de imágenes (cualquier usuario autenticado). Sin object
	// storage configurado la ruta no se registra.
	if deps.UploadUC != nil {
		uploadHandler := NewUploadHandler(deps.UploadUC)
		protected.Post("/uploads/bike-image", uploadHandler.Store)
	}
}
