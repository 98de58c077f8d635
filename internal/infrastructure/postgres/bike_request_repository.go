package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/domain/repository"
)

var _ repository.BikeRequestRepository = (*BikeRequestRepo)(nil)

// BikeRequestRepo implementación del puerto BikeRequestRepository sobre
// PostgreSQL. Las vistas unen comprador, vendedor y empresa del
// comprador en la misma consulta.
type BikeRequestRepo struct {
	q Querier
}

// NewBikeRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBikeRequestRepository(q Querier) *BikeRequestRepo {
	return &BikeRequestRepo{q: q}
}

// Create persiste una nueva solicitud.
func (r *BikeRequestRepo) Create(req *entity.BikeRequest) error {
	query := `
		INSERT INTO bike_requests (id, bike_model, reason, notes, url, status, buyer_id, seller_id, decided_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.BikeModel, req.Reason, req.Notes, req.URL, req.Status,
		req.BuyerID, req.SellerID, req.DecidedByID, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bike request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID, sin joins.
func (r *BikeRequestRepo) GetByID(id string) (*entity.BikeRequest, error) {
	query := `
		SELECT id, bike_model, reason, notes, url, status, buyer_id, seller_id,
		       COALESCE(decided_by_id, ''), created_at, updated_at
		FROM bike_requests WHERE id = $1`
	var req entity.BikeRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&req.ID, &req.BikeModel, &req.Reason, &req.Notes, &req.URL, &req.Status,
		&req.BuyerID, &req.SellerID, &req.DecidedByID, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bike request: %w", err)
	}
	return &req, nil
}

// viewColumns columnas de la vista unida: solicitud + comprador +
// vendedor + empresa del comprador.
const viewColumns = `
	r.id, r.bike_model, r.reason, r.notes, r.url, r.status, r.buyer_id, r.seller_id,
	COALESCE(r.decided_by_id, ''), r.created_at, r.updated_at,
	b.id, b.firstname, b.lastname, b.email, b.company_id,
	s.id, s.firstname, s.lastname, s.email, s.company_id,
	c.id, c.name, c.website, c.logo, c.created_at, c.updated_at`

const viewJoins = `
	FROM bike_requests r
	JOIN users b ON b.id = r.buyer_id
	JOIN users s ON s.id = r.seller_id
	JOIN companies c ON c.id = b.company_id`

// GetDetail devuelve la solicitud con comprador, vendedor y empresa del
// comprador unidos.
func (r *BikeRequestRepo) GetDetail(id string) (*entity.BikeRequestView, error) {
	query := `SELECT ` + viewColumns + viewJoins + ` WHERE r.id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	view, err := scanView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bike request detail: %w", err)
	}
	return view, nil
}

// ListByBuyer pagina las solicitudes del comprador, más recientes
// primero. El cursor es inclusivo: la página empieza en la fila del
// cursor.
func (r *BikeRequestRepo) ListByBuyer(buyerID, cursor string, limit int) ([]*entity.BikeRequestView, error) {
	query := `SELECT ` + viewColumns + viewJoins + `
		WHERE r.buyer_id = $1
		  AND ($2 = '' OR (r.created_at, r.id) <= (SELECT created_at, id FROM bike_requests WHERE id = $2))
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $3`
	return r.listViews(query, buyerID, cursor, limit)
}

// ListBySeller pagina las solicitudes dirigidas al vendedor, más
// recientes primero.
func (r *BikeRequestRepo) ListBySeller(sellerID, cursor string, limit int) ([]*entity.BikeRequestView, error) {
	query := `SELECT ` + viewColumns + viewJoins + `
		WHERE r.seller_id = $1
		  AND ($2 = '' OR (r.created_at, r.id) <= (SELECT created_at, id FROM bike_requests WHERE id = $2))
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $3`
	return r.listViews(query, sellerID, cursor, limit)
}

func (r *BikeRequestRepo) listViews(query string, args ...any) ([]*entity.BikeRequestView, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bike requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.BikeRequestView
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bike request view: %w", err)
		}
		list = append(list, view)
	}
	return list, rows.Err()
}

// ListByCompany todas las solicitudes cuyos compradores pertenecen a la
// empresa, para la vista agregada del asistente.
func (r *BikeRequestRepo) ListByCompany(companyID string) ([]*entity.BikeRequest, error) {
	query := `
		SELECT r.id, r.bike_model, r.reason, r.notes, r.url, r.status, r.buyer_id, r.seller_id,
		       COALESCE(r.decided_by_id, ''), r.created_at, r.updated_at
		FROM bike_requests r
		JOIN users b ON b.id = r.buyer_id
		WHERE b.company_id = $1`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list bike requests by company: %w", err)
	}
	defer rows.Close()
	var list []*entity.BikeRequest
	for rows.Next() {
		var req entity.BikeRequest
		if err := rows.Scan(&req.ID, &req.BikeModel, &req.Reason, &req.Notes, &req.URL, &req.Status,
			&req.BuyerID, &req.SellerID, &req.DecidedByID, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bike request: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

// UpdateDecision persiste status, notes, decided_by y updated_at.
func (r *BikeRequestRepo) UpdateDecision(req *entity.BikeRequest) error {
	query := `
		UPDATE bike_requests
		SET status = $2, notes = $3, decided_by_id = NULLIF($4, ''), updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.Status, req.Notes, req.DecidedByID, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bike request decision: %w", err)
	}
	return nil
}

// AttachURL guarda la URL de la imagen subida.
func (r *BikeRequestRepo) AttachURL(id, url string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bike_requests SET url = $2, updated_at = now() WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("attach bike request url: %w", err)
	}
	return nil
}

func scanView(row pgx.Row) (*entity.BikeRequestView, error) {
	var v entity.BikeRequestView
	var company entity.Company
	err := row.Scan(
		&v.ID, &v.BikeModel, &v.Reason, &v.Notes, &v.URL, &v.Status, &v.BuyerID, &v.SellerID,
		&v.DecidedByID, &v.CreatedAt, &v.UpdatedAt,
		&v.Buyer.ID, &v.Buyer.Firstname, &v.Buyer.Lastname, &v.Buyer.Email, &v.Buyer.CompanyID,
		&v.Seller.ID, &v.Seller.Firstname, &v.Seller.Lastname, &v.Seller.Email, &v.Seller.CompanyID,
		&company.ID, &company.Name, &company.Website, &company.Logo, &company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.BuyerCompany = &company
	return &v, nil
}
