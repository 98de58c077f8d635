package billing

import (
	"encoding/json"
	"fmt"
	"time"

	"context"

	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/domain/repository"
	"github.com/jhoicas/BiciFlow-api/pkg/logger"
)

// EventCheckoutCompleted único tipo de evento que procesa el webhook;
// el resto se reconoce y se ignora.
const EventCheckoutCompleted = "checkout.session.completed"

// Config URLs y precio del checkout.
type Config struct {
	PriceID string
	AppURL  string
}

// BillingUseCase checkout de suscripción y procesamiento del webhook
// del proveedor de pagos.
type BillingUseCase struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
	checkout CheckoutClient
	email    EmailSender
	cfg      Config
	log      *logger.Logger
}

// NewBillingUseCase construye el caso de uso.
func NewBillingUseCase(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	checkout CheckoutClient,
	email EmailSender,
	cfg Config,
	log *logger.Logger,
) *BillingUseCase {
	return &BillingUseCase{
		userRepo: userRepo,
		subRepo:  subRepo,
		checkout: checkout,
		email:    email,
		cfg:      cfg,
		log:      log,
	}
}

// CreateCheckoutSession crea la sesión de suscripción para el vendedor
// y devuelve la URL de redirección.
func (uc *BillingUseCase) CreateCheckoutSession(ctx context.Context, callerID string) (string, error) {
	user, err := uc.userRepo.GetByID(callerID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	if user.Role != entity.RoleSeller {
		return "", domain.ErrUnauthorized
	}
	url, err := uc.checkout.CreateSubscriptionSession(ctx, CheckoutParams{
		UserID:        user.ID,
		CustomerEmail: user.Email,
		PriceID:       uc.cfg.PriceID,
		SuccessURL:    uc.cfg.AppURL + "/payment?success=true",
		CancelURL:     uc.cfg.AppURL + "/payment?success=false",
	})
	if err != nil {
		return "", fmt.Errorf("crear sesión de checkout: %w", err)
	}
	return url, nil
}

// webhookEvent forma mínima del evento del proveedor.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			Customer      string `json:"customer"`
			CustomerEmail string `json:"customer_email"`
			Metadata      struct {
				UserID string `json:"user_id"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// HandleEvent procesa un evento ya verificado del webhook. En
// checkout.session.completed sube la suscripción del usuario a PRO y
// envía el correo de confirmación; el fallo del correo se registra y no
// es fatal.
func (uc *BillingUseCase) HandleEvent(payload []byte) error {
	var ev webhookEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("%w: evento ilegible", domain.ErrInvalidInput)
	}
	if ev.Type != EventCheckoutCompleted {
		// Evento de otro ciclo de vida: acuse sin efecto.
		return nil
	}

	sub, err := uc.subRepo.GetByUserID(ev.Data.Object.Metadata.UserID)
	if err != nil {
		return err
	}
	if sub == nil {
		return domain.ErrNotFound
	}
	sub.Plan = entity.PlanPro
	sub.CustomerID = ev.Data.Object.Customer
	sub.UpdatedAt = time.Now()
	if err := uc.subRepo.Update(sub); err != nil {
		return fmt.Errorf("actualizar suscripción: %w", err)
	}

	if to := ev.Data.Object.CustomerEmail; to != "" {
		err := uc.email.SendHTML(to, "🎉 Subscription Confirmed!",
			"<h1>Thanks for subscribing to PRO 🚀</h1><p>Your premium features are now active. Enjoy!</p>")
		if err != nil {
			uc.log.Warn().Err(err).Str("user_id", sub.UserID).Msg("correo de confirmación no enviado")
		}
	}
	uc.log.Info().Str("user_id", sub.UserID).Msg("suscripción actualizada a PRO")
	return nil
}
