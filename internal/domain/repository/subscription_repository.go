package repository

import "github.com/jhoicas/BiciFlow-api/internal/domain/entity"

// SubscriptionRepository puerto de persistencia para suscripciones.
type SubscriptionRepository interface {
	Create(s *entity.Subscription) error
	GetByUserID(userID string) (*entity.Subscription, error)
	Update(s *entity.Subscription) error
}
