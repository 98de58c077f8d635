package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/domain/repository"
)

var _ repository.ConversationRepository = (*ConversationRepo)(nil)

// ConversationRepo implementación del puerto ConversationRepository
// sobre PostgreSQL. Un índice único sobre (company_id, seller_id)
// respalda la creación perezosa concurrente.
type ConversationRepo struct {
	q Querier
}

// NewConversationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConversationRepository(q Querier) *ConversationRepo {
	return &ConversationRepo{q: q}
}

// Create persiste una nueva conversación. domain.ErrDuplicate si el par
// (company, seller) ya tiene una.
func (r *ConversationRepo) Create(c *entity.Conversation) error {
	query := `
		INSERT INTO conversations (id, company_id, seller_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.SellerID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// GetByID obtiene una conversación por ID.
func (r *ConversationRepo) GetByID(id string) (*entity.Conversation, error) {
	return r.getOne(`
		SELECT id, company_id, seller_id, created_at, updated_at
		FROM conversations WHERE id = $1`, id)
}

// FindByCompanyAndSeller devuelve la conversación del par, (nil, nil)
// si aún no existe.
func (r *ConversationRepo) FindByCompanyAndSeller(companyID, sellerID string) (*entity.Conversation, error) {
	return r.getOne(`
		SELECT id, company_id, seller_id, created_at, updated_at
		FROM conversations WHERE company_id = $1 AND seller_id = $2`, companyID, sellerID)
}

func (r *ConversationRepo) getOne(query string, args ...any) (*entity.Conversation, error) {
	var c entity.Conversation
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.CompanyID, &c.SellerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &c, nil
}

// CreateMessage persiste un mensaje de la conversación.
func (r *ConversationRepo) CreateMessage(m *entity.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, content, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ConversationID, m.Content, m.Role, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessages todos los mensajes en orden cronológico ascendente.
func (r *ConversationRepo) ListMessages(conversationID string) ([]*entity.Message, error) {
	query := `
		SELECT id, conversation_id, content, role, created_at
		FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListRecentMessages los últimos limit mensajes. Se consultan en orden
// descendente y se invierte el resultado para entregarlos ascendentes.
func (r *ConversationRepo) ListRecentMessages(conversationID string, limit int) ([]*entity.Message, error) {
	query := `
		SELECT id, conversation_id, content, role, created_at
		FROM messages WHERE conversation_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent messages: %w", err)
	}
	defer rows.Close()
	list, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

func scanMessages(rows pgx.Rows) ([]*entity.Message, error) {
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Content, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
