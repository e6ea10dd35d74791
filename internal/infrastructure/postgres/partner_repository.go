package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecovale/recicla-api/internal/domain"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementação de PartnerRepository sobre PostgreSQL.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

const partnerColumns = "id, name, cnpj, phone, address, created_at"

// Create cadastra uma empresa parceira.
func (r *PartnerRepo) Create(p *entity.Partner) error {
	query := `
		INSERT INTO partners (id, name, cnpj, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.CNPJ, p.Phone, p.Address, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create partner: %w", err)
	}
	return nil
}

// GetByID obtém uma parceira por ID.
func (r *PartnerRepo) GetByID(id string) (*entity.Partner, error) {
	return r.get("SELECT "+partnerColumns+" FROM partners WHERE id = $1", id)
}

// GetByCNPJ obtém uma parceira pelo CNPJ (único).
func (r *PartnerRepo) GetByCNPJ(cnpj string) (*entity.Partner, error) {
	return r.get("SELECT "+partnerColumns+" FROM partners WHERE cnpj = $1", cnpj)
}

func (r *PartnerRepo) get(query string, arg any) (*entity.Partner, error) {
	var p entity.Partner
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.CNPJ, &p.Phone, &p.Address, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return &p, nil
}

// List lista parceiras com paginação.
func (r *PartnerRepo) List(limit, offset int) ([]*entity.Partner, error) {
	query := "SELECT " + partnerColumns + " FROM partners ORDER BY name LIMIT $1 OFFSET $2"
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Partner
	for rows.Next() {
		var p entity.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.CNPJ, &p.Phone, &p.Address, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
