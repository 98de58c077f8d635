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

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación del puerto SubscriptionRepository
// sobre PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// Create persiste una nueva suscripción.
func (r *SubscriptionRepo) Create(s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, customer_id, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.UserID, s.CustomerID, s.Plan, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByUserID obtiene la suscripción del usuario.
func (r *SubscriptionRepo) GetByUserID(userID string) (*entity.Subscription, error) {
	query := `
		SELECT id, user_id, customer_id, plan, created_at, updated_at
		FROM subscriptions WHERE user_id = $1`
	var s entity.Subscription
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&s.ID, &s.UserID, &s.CustomerID, &s.Plan, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

// Update actualiza plan y customer_id.
func (r *SubscriptionRepo) Update(s *entity.Subscription) error {
	query := `
		UPDATE subscriptions SET customer_id = $2, plan = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CustomerID, s.Plan, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}
