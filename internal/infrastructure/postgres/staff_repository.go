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

var _ repository.StaffRepository = (*StaffRepo)(nil)

// StaffRepo implementação de StaffRepository sobre PostgreSQL.
type StaffRepo struct {
	q Querier
}

// NewStaffRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

const staffColumns = "id, name, cpf, phone, role_id, created_at"

// Create cadastra um funcionário.
func (r *StaffRepo) Create(s *entity.Staff) error {
	query := `
		INSERT INTO staff (id, name, cpf, phone, role_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.CPF, s.Phone, s.RoleID, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// GetByID obtém um funcionário por ID.
func (r *StaffRepo) GetByID(id string) (*entity.Staff, error) {
	return r.get("SELECT "+staffColumns+" FROM staff WHERE id = $1", id)
}

// GetByCPF obtém um funcionário pelo CPF (único).
func (r *StaffRepo) GetByCPF(cpf string) (*entity.Staff, error) {
	return r.get("SELECT "+staffColumns+" FROM staff WHERE cpf = $1", cpf)
}

func (r *StaffRepo) get(query string, arg any) (*entity.Staff, error) {
	var s entity.Staff
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.Name, &s.CPF, &s.Phone, &s.RoleID, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return &s, nil
}

// List lista funcionários com paginação.
func (r *StaffRepo) List(limit, offset int) ([]*entity.Staff, error) {
	query := "SELECT " + staffColumns + " FROM staff ORDER BY name LIMIT $1 OFFSET $2"
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()
	var list []*entity.Staff
	for rows.Next() {
		var s entity.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.CPF, &s.Phone, &s.RoleID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
