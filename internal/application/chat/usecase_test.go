package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BiciFlow-api/internal/application/chat"
	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/application/ports"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/memory"
)

// fakeLLM captura el prompt recibido y devuelve una respuesta fija.
type fakeLLM struct {
	lastPrompt []ports.ChatMessage
	answer     string
}

func (f *fakeLLM) ChatCompletion(_ context.Context, messages []ports.ChatMessage) (string, error) {
	f.lastPrompt = messages
	return f.answer, nil
}

type fixture struct {
	store  *memory.Store
	llm    *fakeLLM
	uc     *chat.ChatUseCase
	seller *entity.User
}

func newFixture(t *testing.T, plan string) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	company := &entity.Company{ID: uuid.New().String(), Name: "Bikes & Co", Website: "https://bikes.co", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Companies().Create(company))
	seller := &entity.User{
		ID: uuid.New().String(), CompanyID: company.ID, Email: "luis@bikes.co",
		Firstname: "Luis", Lastname: "Mora", Role: entity.RoleSeller,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Users().Create(seller))
	require.NoError(t, store.Subscriptions().Create(&entity.Subscription{
		ID: uuid.New().String(), UserID: seller.ID, Plan: plan, CreatedAt: now, UpdatedAt: now,
	}))

	llm := &fakeLLM{answer: "There are 2 pending requests."}
	uc := chat.NewChatUseCase(
		store.Conversations(), store.Users(), store.Companies(),
		store.Codes(), store.BikeRequests(), store.Subscriptions(), llm,
	)
	return &fixture{store: store, llm: llm, uc: uc, seller: seller}
}

// La primera visita crea la conversación; la segunda la reutiliza.
func TestOpenConversation_CreacionPerezosa(t *testing.T) {
	fx := newFixture(t, entity.PlanPro)

	first, err := fx.uc.OpenConversation(fx.seller.ID, fx.seller.CompanyID)
	require.NoError(t, err)
	assert.Empty(t, first.Messages)

	second, err := fx.uc.OpenConversation(fx.seller.ID, fx.seller.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "el par (empresa, vendedor) tiene una sola conversación")
}

// SendMessage guarda el turno del usuario y el del asistente, y el
// prompt lleva la vista agregada de la empresa.
func TestSendMessage_PromptConDatosDeLaEmpresa(t *testing.T) {
	fx := newFixture(t, entity.PlanPro)
	now := time.Now()

	// Un comprador con una solicitud pendiente y un código emitido.
	buyer := &entity.User{
		ID: uuid.New().String(), CompanyID: fx.seller.CompanyID, Email: "ana@bikes.co",
		Firstname: "Ana", Lastname: "García", Role: entity.RoleBuyer, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, fx.store.Users().Create(buyer))
	require.NoError(t, fx.store.Codes().Create(&entity.Code{
		ID: uuid.New().String(), Code: "424242", CompanyID: fx.seller.CompanyID, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, fx.store.BikeRequests().Create(&entity.BikeRequest{
		ID: uuid.New().String(), BikeModel: "Trek X1", Reason: "Commuting",
		Status: entity.StatusPending, BuyerID: buyer.ID, SellerID: fx.seller.ID,
		CreatedAt: now, UpdatedAt: now,
	}))

	conv, err := fx.uc.OpenConversation(fx.seller.ID, fx.seller.CompanyID)
	require.NoError(t, err)

	out, err := fx.uc.SendMessage(context.Background(), fx.seller.ID, fx.seller.CompanyID, dto.ChatMessageRequest{
		ConversationID: conv.ID,
		Content:        "How many pending requests do we have?",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MessageRoleAI, out.Sender)
	assert.Equal(t, "There are 2 pending requests.", out.Content)

	// El system prompt debe anclar la respuesta a los datos de la empresa.
	require.NotEmpty(t, fx.llm.lastPrompt)
	system := fx.llm.lastPrompt[0]
	assert.Equal(t, ports.ChatRoleSystem, system.Role)
	assert.Contains(t, system.Content, "Bikes & Co")
	assert.Contains(t, system.Content, "ana@bikes.co")
	assert.Contains(t, system.Content, "Pending Requests: 1")
	assert.Contains(t, system.Content, "424242")

	// Ambos turnos quedan en el historial.
	reloaded, err := fx.uc.OpenConversation(fx.seller.ID, fx.seller.CompanyID)
	require.NoError(t, err)
	require.Len(t, reloaded.Messages, 2)
	assert.Equal(t, entity.MessageRoleUser, reloaded.Messages[0].Sender)
	assert.Equal(t, entity.MessageRoleAI, reloaded.Messages[1].Sender)
}

// El asistente requiere plan PRO.
func TestSendMessage_PlanFree_UpgradeRequired(t *testing.T) {
	fx := newFixture(t, entity.PlanFree)
	conv, err := fx.uc.OpenConversation(fx.seller.ID, fx.seller.CompanyID)
	require.NoError(t, err)

	_, err = fx.uc.SendMessage(context.Background(), fx.seller.ID, fx.seller.CompanyID, dto.ChatMessageRequest{
		ConversationID: conv.ID,
		Content:        "hello",
	})
	assert.ErrorIs(t, err, domain.ErrUpgradeRequired)
}

// Una conversación de otra empresa es inaccesible.
func TestSendMessage_ConversacionDeOtraEmpresa(t *testing.T) {
	fx := newFixture(t, entity.PlanPro)
	conv, err := fx.uc.OpenConversation(fx.seller.ID, fx.seller.CompanyID)
	require.NoError(t, err)

	_, err = fx.uc.SendMessage(context.Background(), fx.seller.ID, uuid.New().String(), dto.ChatMessageRequest{
		ConversationID: conv.ID,
		Content:        "hello",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSendMessage_EntradaInvalida(t *testing.T) {
	fx := newFixture(t, entity.PlanPro)

	_, err := fx.uc.SendMessage(context.Background(), fx.seller.ID, fx.seller.CompanyID, dto.ChatMessageRequest{
		ConversationID: "",
		Content:        "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
