// Package memory implementa los puertos de persistencia en mapas en
// memoria. Lo usan los tests de los casos de uso y de los handlers;
// replica el contrato de los adaptadores de PostgreSQL, incluido el
// (nil, nil) para registros inexistentes.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/BiciFlow-api/internal/application/auth"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/domain/repository"
)

// Store contiene todas las colecciones y expone los repos sobre ellas.
type Store struct {
	mu            sync.Mutex
	users         map[string]*entity.User
	companies     map[string]*entity.Company
	codes         map[string]*entity.Code
	requests      map[string]*entity.BikeRequest
	conversations map[string]*entity.Conversation
	messages      []*entity.Message
	subscriptions map[string]*entity.Subscription
	seq           int // orden de inserción, desempata timestamps iguales
	order         map[string]int
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]*entity.User),
		companies:     make(map[string]*entity.Company),
		codes:         make(map[string]*entity.Code),
		requests:      make(map[string]*entity.BikeRequest),
		conversations: make(map[string]*entity.Conversation),
		subscriptions: make(map[string]*entity.Subscription),
		order:         make(map[string]int),
	}
}

// Users devuelve el repo de usuarios sobre el almacén.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Companies devuelve el repo de empresas.
func (s *Store) Companies() repository.CompanyRepository { return &companyRepo{s} }

// Codes devuelve el repo de códigos.
func (s *Store) Codes() repository.CodeRepository { return &codeRepo{s} }

// BikeRequests devuelve el repo de solicitudes.
func (s *Store) BikeRequests() repository.BikeRequestRepository { return &bikeRequestRepo{s} }

// Conversations devuelve el repo de conversaciones.
func (s *Store) Conversations() repository.ConversationRepository { return &conversationRepo{s} }

// Subscriptions devuelve el repo de suscripciones.
func (s *Store) Subscriptions() repository.SubscriptionRepository { return &subscriptionRepo{s} }

var _ auth.TxRunner = (*Store)(nil)

// Run ejecuta fn con los repos del almacén. No hay transaccionalidad
// real; el mutex del almacén serializa cada operación individual.
func (s *Store) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	codes repository.CodeRepository,
	subs repository.SubscriptionRepository,
) error) error {
	return fn(s.Users(), s.Companies(), s.Codes(), s.Subscriptions())
}

func (s *Store) nextSeq(id string) {
	s.seq++
	s.order[id] = s.seq
}

// ── Usuarios ──────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	r.s.nextSeq(user.ID)
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) ListByCompany(companyID string) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.User
	for _, u := range r.s.users {
		if u.CompanyID == companyID {
			cp := *u
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return r.s.order[list[i].ID] < r.s.order[list[j].ID]
	})
	return list, nil
}

func (r *userRepo) ListBuyersByCompany(companyID, cursor string, limit int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.User
	for _, u := range r.s.users {
		if u.CompanyID == companyID && u.Role == entity.RoleBuyer {
			cp := *u
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Lastname != all[j].Lastname {
			return all[i].Lastname < all[j].Lastname
		}
		return all[i].ID < all[j].ID
	})
	return pageFrom(all, cursor, limit, func(u *entity.User) string { return u.ID }), nil
}

// ── Empresas ──────────────────────────────────────────────────────────

type companyRepo struct{ s *Store }

func (r *companyRepo) Create(company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[company.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *company
	r.s.companies[company.ID] = &cp
	return nil
}

func (r *companyRepo) GetByID(id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

// ── Códigos ───────────────────────────────────────────────────────────

type codeRepo struct{ s *Store }

func (r *codeRepo) Create(code *entity.Code) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.codes {
		if c.Code == code.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *code
	r.s.codes[code.ID] = &cp
	r.s.nextSeq(code.ID)
	return nil
}

func (r *codeRepo) GetByID(id string) (*entity.Code, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.codes[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *codeRepo) GetByValue(value string) (*entity.Code, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.codes {
		if c.Code == value {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *codeRepo) FindUnused(value string) (*entity.Code, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.codes {
		if c.Code == value && !c.Used {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *codeRepo) MarkUsed(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.codes[id]
	if !ok || c.Used {
		return false, nil
	}
	c.Used = true
	return true, nil
}

func (r *codeRepo) ListByCompany(companyID, cursor string, limit int) ([]*entity.Code, error) {
	all, err := r.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}
	return pageFrom(all, cursor, limit, func(c *entity.Code) string { return c.ID }), nil
}

func (r *codeRepo) ListAllByCompany(companyID string) ([]*entity.Code, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Code
	for _, c := range r.s.codes {
		if c.CompanyID == companyID {
			cp := *c
			list = append(list, &cp)
		}
	}
	// Más recientes primero, como el adaptador de PostgreSQL.
	sort.Slice(list, func(i, j int) bool {
		return r.s.order[list[i].ID] > r.s.order[list[j].ID]
	})
	return list, nil
}

func (r *codeRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.codes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.codes, id)
	return nil
}

// ── Solicitudes ───────────────────────────────────────────────────────

type bikeRequestRepo struct{ s *Store }

func (r *bikeRequestRepo) Create(req *entity.BikeRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *req
	r.s.requests[req.ID] = &cp
	r.s.nextSeq(req.ID)
	return nil
}

func (r *bikeRequestRepo) GetByID(id string) (*entity.BikeRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req, ok := r.s.requests[id]; ok {
		cp := *req
		return &cp, nil
	}
	return nil, nil
}

func (r *bikeRequestRepo) GetDetail(id string) (*entity.BikeRequestView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, nil
	}
	return r.view(req), nil
}

func (r *bikeRequestRepo) view(req *entity.BikeRequest) *entity.BikeRequestView {
	v := &entity.BikeRequestView{BikeRequest: *req}
	if buyer, ok := r.s.users[req.BuyerID]; ok {
		v.Buyer = summary(buyer)
		if company, ok := r.s.companies[buyer.CompanyID]; ok {
			cp := *company
			v.BuyerCompany = &cp
		}
	}
	if seller, ok := r.s.users[req.SellerID]; ok {
		v.Seller = summary(seller)
	}
	return v
}

func summary(u *entity.User) entity.UserSummary {
	return entity.UserSummary{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		CompanyID: u.CompanyID,
	}
}

func (r *bikeRequestRepo) ListByBuyer(buyerID, cursor string, limit int) ([]*entity.BikeRequestView, error) {
	return r.listViews(func(req *entity.BikeRequest) bool { return req.BuyerID == buyerID }, cursor, limit)
}

func (r *bikeRequestRepo) ListBySeller(sellerID, cursor string, limit int) ([]*entity.BikeRequestView, error) {
	return r.listViews(func(req *entity.BikeRequest) bool { return req.SellerID == sellerID }, cursor, limit)
}

func (r *bikeRequestRepo) listViews(match func(*entity.BikeRequest) bool, cursor string, limit int) ([]*entity.BikeRequestView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.BikeRequestView
	for _, req := range r.s.requests {
		if match(req) {
			all = append(all, r.view(req))
		}
	}
	// Más recientes primero.
	sort.Slice(all, func(i, j int) bool {
		return r.s.order[all[i].ID] > r.s.order[all[j].ID]
	})
	return pageFrom(all, cursor, limit, func(v *entity.BikeRequestView) string { return v.ID }), nil
}

func (r *bikeRequestRepo) ListByCompany(companyID string) ([]*entity.BikeRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.BikeRequest
	for _, req := range r.s.requests {
		buyer, ok := r.s.users[req.BuyerID]
		if ok && buyer.CompanyID == companyID {
			cp := *req
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *bikeRequestRepo) UpdateDecision(req *entity.BikeRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.requests[req.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = req.Status
	stored.Notes = req.Notes
	stored.DecidedByID = req.DecidedByID
	stored.UpdatedAt = req.UpdatedAt
	return nil
}

func (r *bikeRequestRepo) AttachURL(id, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	stored.URL = url
	return nil
}

// ── Conversaciones ────────────────────────────────────────────────────

type conversationRepo struct{ s *Store }

func (r *conversationRepo) Create(c *entity.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.conversations {
		if existing.CompanyID == c.CompanyID && existing.SellerID == c.SellerID {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.s.conversations[c.ID] = &cp
	return nil
}

func (r *conversationRepo) GetByID(id string) (*entity.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.conversations[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *conversationRepo) FindByCompanyAndSeller(companyID, sellerID string) (*entity.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.conversations {
		if c.CompanyID == companyID && c.SellerID == sellerID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *conversationRepo) CreateMessage(m *entity.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.messages = append(r.s.messages, &cp)
	return nil
}

func (r *conversationRepo) ListMessages(conversationID string) ([]*entity.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Message
	for _, m := range r.s.messages {
		if m.ConversationID == conversationID {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *conversationRepo) ListRecentMessages(conversationID string, limit int) ([]*entity.Message, error) {
	all, err := r.ListMessages(conversationID)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

// ── Suscripciones ─────────────────────────────────────────────────────

type subscriptionRepo struct{ s *Store }

func (r *subscriptionRepo) Create(sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subscriptions[sub.UserID]; ok {
		return domain.ErrDuplicate
	}
	cp := *sub
	r.s.subscriptions[sub.UserID] = &cp
	return nil
}

func (r *subscriptionRepo) GetByUserID(userID string) (*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sub, ok := r.s.subscriptions[userID]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, nil
}

func (r *subscriptionRepo) Update(sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subscriptions[sub.UserID]; !ok {
		return domain.ErrNotFound
	}
	cp := *sub
	r.s.subscriptions[sub.UserID] = &cp
	return nil
}

// pageFrom aplica la semántica de cursor inclusivo sobre una lista ya
// ordenada: la página empieza en la fila del cursor y trae limit filas.
func pageFrom[T any](all []T, cursor string, limit int, idOf func(T) string) []T {
	start := 0
	if cursor != "" {
		for i, item := range all {
			if idOf(item) == cursor {
				start = i
				break
			}
		}
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
