package billing_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BiciFlow-api/internal/application/billing"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/memory"
	"github.com/jhoicas/BiciFlow-api/pkg/logger"
)

type fakeCheckout struct {
	lastParams billing.CheckoutParams
}

func (f *fakeCheckout) CreateSubscriptionSession(_ context.Context, p billing.CheckoutParams) (string, error) {
	f.lastParams = p
	return "https://checkout.example.com/session/abc", nil
}

type fakeEmail struct {
	sent []string
	fail bool
}

func (f *fakeEmail) SendHTML(to, subject, htmlBody string) error {
	if f.fail {
		return errors.New("smtp caído")
	}
	f.sent = append(f.sent, to)
	return nil
}

type fixture struct {
	store    *memory.Store
	checkout *fakeCheckout
	email    *fakeEmail
	uc       *billing.BillingUseCase
	seller   *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	seller := &entity.User{
		ID: uuid.New().String(), CompanyID: uuid.New().String(), Email: "luis@bikes.co",
		Firstname: "Luis", Role: entity.RoleSeller, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Users().Create(seller))
	require.NoError(t, store.Subscriptions().Create(&entity.Subscription{
		ID: uuid.New().String(), UserID: seller.ID, Plan: entity.PlanFree, CreatedAt: now, UpdatedAt: now,
	}))

	checkout := &fakeCheckout{}
	email := &fakeEmail{}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := billing.NewBillingUseCase(store.Users(), store.Subscriptions(), checkout, email, billing.Config{
		PriceID: "price_123",
		AppURL:  "https://app.bikes.co",
	}, log)
	return &fixture{store: store, checkout: checkout, email: email, uc: uc, seller: seller}
}

func completedEvent(userID, customerID, email string) []byte {
	return []byte(fmt.Sprintf(`{
		"type": "checkout.session.completed",
		"data": {"object": {
			"customer": %q,
			"customer_email": %q,
			"metadata": {"user_id": %q}
		}}
	}`, customerID, email, userID))
}

func TestCreateCheckoutSession_DevuelveURLDeRedireccion(t *testing.T) {
	fx := newFixture(t)

	url, err := fx.uc.CreateCheckoutSession(context.Background(), fx.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/session/abc", url)
	assert.Equal(t, fx.seller.ID, fx.checkout.lastParams.UserID,
		"el user_id viaja en metadata para el webhook")
	assert.Equal(t, "price_123", fx.checkout.lastParams.PriceID)
	assert.Contains(t, fx.checkout.lastParams.SuccessURL, "https://app.bikes.co")
}

func TestCreateCheckoutSession_SoloVendedores(t *testing.T) {
	fx := newFixture(t)
	now := time.Now()
	buyer := &entity.User{
		ID: uuid.New().String(), CompanyID: fx.seller.CompanyID, Email: "ana@bikes.co",
		Firstname: "Ana", Role: entity.RoleBuyer, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, fx.store.Users().Create(buyer))

	_, err := fx.uc.CreateCheckoutSession(context.Background(), buyer.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = fx.uc.CreateCheckoutSession(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// checkout.session.completed sube la suscripción a PRO, guarda el
// customer id y envía el correo de confirmación.
func TestHandleEvent_CheckoutCompletado_SubeAPro(t *testing.T) {
	fx := newFixture(t)

	err := fx.uc.HandleEvent(completedEvent(fx.seller.ID, "cus_42", "luis@bikes.co"))
	require.NoError(t, err)

	sub, err := fx.store.Subscriptions().GetByUserID(fx.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanPro, sub.Plan)
	assert.Equal(t, "cus_42", sub.CustomerID)
	assert.Equal(t, []string{"luis@bikes.co"}, fx.email.sent)
}

// El fallo del correo no revierte la actualización del plan.
func TestHandleEvent_CorreoFallido_NoEsFatal(t *testing.T) {
	fx := newFixture(t)
	fx.email.fail = true

	err := fx.uc.HandleEvent(completedEvent(fx.seller.ID, "cus_42", "luis@bikes.co"))
	require.NoError(t, err)

	sub, err := fx.store.Subscriptions().GetByUserID(fx.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanPro, sub.Plan)
}

// Otros tipos de evento se reconocen sin efecto.
func TestHandleEvent_EventoIgnorado(t *testing.T) {
	fx := newFixture(t)

	err := fx.uc.HandleEvent([]byte(`{"type": "invoice.paid", "data": {"object": {}}}`))
	require.NoError(t, err)

	sub, err := fx.store.Subscriptions().GetByUserID(fx.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanFree, sub.Plan, "el plan no debe cambiar")
	assert.Empty(t, fx.email.sent)
}

func TestHandleEvent_UsuarioDesconocido(t *testing.T) {
	fx := newFixture(t)

	err := fx.uc.HandleEvent(completedEvent(uuid.New().String(), "cus_42", "x@bikes.co"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandleEvent_PayloadIlegible(t *testing.T) {
	fx := newFixture(t)

	err := fx.uc.HandleEvent([]byte(`{not json`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
