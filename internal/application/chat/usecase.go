package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/application/ports"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/domain/repository"
)

// historyWindow mensajes previos incluidos en el prompt.
const historyWindow = 10

// llmTimeout tope por llamada al modelo; las latencias externas no
// deben bloquear los goroutines del servidor.
const llmTimeout = 30 * time.Second

// ChatUseCase asistente IA del vendedor, anclado a los datos de su
// empresa. Cada turno recalcula completa la vista agregada de la
// empresa (correctitud sobre eficiencia; el roster está acotado).
type ChatUseCase struct {
	convRepo    repository.ConversationRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	codeRepo    repository.CodeRepository
	requestRepo repository.BikeRequestRepository
	subRepo     repository.SubscriptionRepository
	llm         ports.LLMService
}

// NewChatUseCase construye el caso de uso inyectando el puerto LLMService.
func NewChatUseCase(
	convRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	codeRepo repository.CodeRepository,
	requestRepo repository.BikeRequestRepository,
	subRepo repository.SubscriptionRepository,
	llm ports.LLMService,
) *ChatUseCase {
	return &ChatUseCase{
		convRepo:    convRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		codeRepo:    codeRepo,
		requestRepo: requestRepo,
		subRepo:     subRepo,
		llm:         llm,
	}
}

// OpenConversation devuelve la conversación del par (empresa, vendedor),
// creándola de forma perezosa en la primera visita, junto con todo su
// historial.
func (uc *ChatUseCase) OpenConversation(sellerID, companyID string) (*dto.ConversationResponse, error) {
	conv, err := uc.convRepo.FindByCompanyAndSeller(companyID, sellerID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		now := time.Now()
		conv = &entity.Conversation{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			SellerID:  sellerID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.convRepo.Create(conv); err != nil {
			if err != domain.ErrDuplicate {
				return nil, err
			}
			// Dos visitas simultáneas: la otra ganó la creación.
			conv, err = uc.convRepo.FindByCompanyAndSeller(companyID, sellerID)
			if err != nil {
				return nil, err
			}
		}
	}

	messages, err := uc.convRepo.ListMessages(conv.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.ConversationResponse{
		ID:       conv.ID,
		Messages: make([]dto.ChatMessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		out.Messages = append(out.Messages, toMessageResponse(m))
	}
	return out, nil
}

// SendMessage agrega el mensaje del vendedor, consulta el modelo con el
// prompt anclado a la empresa y agrega/devuelve la respuesta del
// asistente. Requiere plan PRO.
func (uc *ChatUseCase) SendMessage(ctx context.Context, callerID, companyID string, in dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	if in.ConversationID == "" || strings.TrimSpace(in.Content) == "" {
		return nil, domain.ErrInvalidInput
	}

	sub, err := uc.subRepo.GetByUserID(callerID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.Plan != entity.PlanPro {
		return nil, domain.ErrUpgradeRequired
	}

	conv, err := uc.convRepo.GetByID(in.ConversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	// El asistente solo responde sobre la empresa del propio vendedor.
	if conv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	snapshot, err := uc.BuildSnapshot(companyID)
	if err != nil {
		return nil, err
	}
	history, err := uc.convRepo.ListRecentMessages(conv.ID, historyWindow)
	if err != nil {
		return nil, err
	}

	userMsg := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Content:        in.Content,
		Role:           entity.MessageRoleUser,
		CreatedAt:      time.Now(),
	}
	if err := uc.convRepo.CreateMessage(userMsg); err != nil {
		return nil, fmt.Errorf("guardar mensaje: %w", err)
	}

	prompt := buildPrompt(snapshot, history, in.Content)

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()
	answer, err := uc.llm.ChatCompletion(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("asistente IA: %w", err)
	}
	if answer == "" {
		answer = "Sorry, I couldn't understand that."
	}

	aiMsg := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Content:        answer,
		Role:           entity.MessageRoleAI,
		CreatedAt:      time.Now(),
	}
	if err := uc.convRepo.CreateMessage(aiMsg); err != nil {
		return nil, fmt.Errorf("guardar respuesta: %w", err)
	}

	out := toMessageResponse(aiMsg)
	return &out, nil
}

// BuildSnapshot recompone la vista agregada de la empresa: datos
// básicos, conteos por rol, desglose de solicitudes por usuario y
// códigos emitidos.
func (uc *ChatUseCase) BuildSnapshot(companyID string) (*dto.CompanySnapshot, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	users, err := uc.userRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	codes, err := uc.codeRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}
	requests, err := uc.requestRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}

	type counts struct{ pending, approved, rejected int }
	byBuyer := make(map[string]counts, len(users))
	for _, r := range requests {
		c := byBuyer[r.BuyerID]
		switch r.Status {
		case entity.StatusPending:
			c.pending++
		case entity.StatusApproved:
			c.approved++
		case entity.StatusRejected:
			c.rejected++
		}
		byBuyer[r.BuyerID] = c
	}

	snap := &dto.CompanySnapshot{
		Name:       company.Name,
		Website:    company.Website,
		TotalUsers: len(users),
		TotalCodes: len(codes),
		Users:      make([]dto.UserActivity, 0, len(users)),
		Codes:      make([]string, 0, len(codes)),
	}
	for _, u := range users {
		if u.Role == entity.RoleSeller {
			snap.Sellers++
		} else {
			snap.Buyers++
		}
		c := byBuyer[u.ID]
		snap.Users = append(snap.Users, dto.UserActivity{
			Firstname: u.Firstname,
			Lastname:  u.Lastname,
			Email:     u.Email,
			Role:      u.Role,
			Pending:   c.pending,
			Approved:  c.approved,
			Rejected:  c.rejected,
		})
	}
	for _, c := range codes {
		snap.Codes = append(snap.Codes, c.Code)
	}
	return snap, nil
}

// buildPrompt arma el prompt completo: system con la vista agregada,
// los últimos mensajes de la conversación y el turno actual.
func buildPrompt(snap *dto.CompanySnapshot, history []*entity.Message, content string) []ports.ChatMessage {
	msgs := make([]ports.ChatMessage, 0, len(history)+2)
	msgs = append(msgs, ports.ChatMessage{Role: ports.ChatRoleSystem, Content: systemPrompt(snap)})
	for _, m := range history {
		role := ports.ChatRoleAssistant
		if m.Role == entity.MessageRoleUser {
			role = ports.ChatRoleUser
		}
		msgs = append(msgs, ports.ChatMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, ports.ChatMessage{Role: ports.ChatRoleUser, Content: content})
	return msgs
}

func systemPrompt(snap *dto.CompanySnapshot) string {
	var b strings.Builder
	website := snap.Website
	if website == "" {
		website = "Not available"
	}
	fmt.Fprintf(&b, `You are a helpful, knowledgeable AI assistant for the bicycle seller company %q.
Your goal is to assist the company's sellers with questions related to:
- Buyer activity
- Approved or pending bike requests
- Internal users (sellers and buyers)
- Unique referral codes
- General company insights

Company Overview:
- Name: %s
- Website: %s

Company Stats:
- Total Users: %d
  - Sellers: %d
  - Buyers: %d
- Total Codes Issued: %d

User Directory:
`, snap.Name, snap.Name, website, snap.TotalUsers, snap.Sellers, snap.Buyers, snap.TotalCodes)
	for _, u := range snap.Users {
		name := u.Firstname
		if u.Lastname != "" {
			name += " " + u.Lastname
		}
		fmt.Fprintf(&b, "- %s (%s) [%s] - Pending Requests: %d, Approved Requests: %d, Rejected Requests: %d\n",
			name, u.Email, u.Role, u.Pending, u.Approved, u.Rejected)
	}
	b.WriteString("\nRecent Referral Codes:\n")
	for _, code := range snap.Codes {
		fmt.Fprintf(&b, "- %s\n", code)
	}
	b.WriteString(`
Guidelines:
- Use this data to help sellers understand activity within the company.
- Be concise, polite, and specific to what the seller asks.
- If you're not sure, offer to clarify or ask a follow-up question.
- Never reveal data unrelated to the seller's company.`)
	return b.String()
}

func toMessageResponse(m *entity.Message) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:        m.ID,
		Content:   m.Content,
		Sender:    m.Role,
		Timestamp: m.CreatedAt,
	}
}
