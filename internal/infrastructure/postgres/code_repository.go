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

var _ repository.CodeRepository = (*CodeRepo)(nil)

const codeColumns = `id, code, company_id, used, created_at, updated_at`

// CodeRepo implementación del puerto CodeRepository sobre PostgreSQL.
type CodeRepo struct {
	q Querier
}

// NewCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCodeRepository(q Querier) *CodeRepo {
	return &CodeRepo{q: q}
}

// Create persiste un nuevo código de invitación.
func (r *CodeRepo) Create(code *entity.Code) error {
	query := `
		INSERT INTO codes (` + codeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		code.ID, code.Code, code.CompanyID, code.Used, code.CreatedAt, code.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert code: %w", err)
	}
	return nil
}

// GetByID obtiene un código por ID.
func (r *CodeRepo) GetByID(id string) (*entity.Code, error) {
	return r.getOne(`SELECT `+codeColumns+` FROM codes WHERE id = $1`, id)
}

// GetByValue busca por el string de 6 dígitos, usado o no.
func (r *CodeRepo) GetByValue(value string) (*entity.Code, error) {
	return r.getOne(`SELECT `+codeColumns+` FROM codes WHERE code = $1`, value)
}

// FindUnused busca un código sin usar con ese valor.
func (r *CodeRepo) FindUnused(value string) (*entity.Code, error) {
	return r.getOne(`SELECT `+codeColumns+` FROM codes WHERE code = $1 AND used = false`, value)
}

func (r *CodeRepo) getOne(query string, arg any) (*entity.Code, error) {
	var c entity.Code
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Code, &c.CompanyID, &c.Used, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get code: %w", err)
	}
	return &c, nil
}

// MarkUsed marca el código como usado solo si sigue sin usar. El WHERE
// used = false hace el compare-and-set en una sola sentencia: si otro
// canje concurrente ya lo consumió, RowsAffected es 0.
func (r *CodeRepo) MarkUsed(id string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE codes SET used = true, updated_at = now() WHERE id = $1 AND used = false`, id)
	if err != nil {
		return false, fmt.Errorf("mark code used: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByCompany pagina por cursor, más recientes primero. El cursor es
// inclusivo: la página empieza en la fila del cursor.
func (r *CodeRepo) ListByCompany(companyID, cursor string, limit int) ([]*entity.Code, error) {
	query := `
		SELECT ` + codeColumns + `
		FROM codes
		WHERE company_id = $1
		  AND ($2 = '' OR (created_at, id) <= (SELECT created_at, id FROM codes WHERE id = $2))
		ORDER BY created_at DESC, id DESC
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, companyID, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	defer rows.Close()
	return scanCodes(rows)
}

// ListAllByCompany lista completa para la vista agregada del asistente.
func (r *CodeRepo) ListAllByCompany(companyID string) ([]*entity.Code, error) {
	query := `
		SELECT ` + codeColumns + `
		FROM codes WHERE company_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list all codes: %w", err)
	}
	defer rows.Close()
	return scanCodes(rows)
}

// Delete borra un código por ID.
func (r *CodeRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCodes(rows pgx.Rows) ([]*entity.Code, error) {
	var list []*entity.Code
	for rows.Next() {
		var c entity.Code
		if err := rows.Scan(&c.ID, &c.Code, &c.CompanyID, &c.Used, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
