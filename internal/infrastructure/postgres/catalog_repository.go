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

var _ repository.RoleRepository = (*RoleRepo)(nil)
var _ repository.NeighborhoodRepository = (*NeighborhoodRepo)(nil)

// RoleRepo implementação de RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository constrói o adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Create cadastra um cargo.
func (r *RoleRepo) Create(role *entity.Role) error {
	_, err := r.q.Exec(context.Background(),
		"INSERT INTO roles (id, name, created_at) VALUES ($1, $2, $3)",
		role.ID, role.Name, role.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

// GetByID obtém um cargo por ID.
func (r *RoleRepo) GetByID(id string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(context.Background(),
		"SELECT id, name, created_at FROM roles WHERE id = $1", id,
	).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// List lista os cargos.
func (r *RoleRepo) List() ([]*entity.Role, error) {
	rows, err := r.q.Query(context.Background(),
		"SELECT id, name, created_at FROM roles ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// NeighborhoodRepo implementação de NeighborhoodRepository sobre PostgreSQL.
type NeighborhoodRepo struct {
	q Querier
}

// NewNeighborhoodRepository constrói o adaptador.
func NewNeighborhoodRepository(q Querier) *NeighborhoodRepo {
	return &NeighborhoodRepo{q: q}
}

// Create cadastra um bairro.
func (r *NeighborhoodRepo) Create(n *entity.Neighborhood) error {
	_, err := r.q.Exec(context.Background(),
		"INSERT INTO neighborhoods (id, name, created_at) VALUES ($1, $2, $3)",
		n.ID, n.Name, n.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create neighborhood: %w", err)
	}
	return nil
}

// GetByID obtém um bairro por ID.
func (r *NeighborhoodRepo) GetByID(id string) (*entity.Neighborhood, error) {
	var n entity.Neighborhood
	err := r.q.QueryRow(context.Background(),
		"SELECT id, name, created_at FROM neighborhoods WHERE id = $1", id,
	).Scan(&n.ID, &n.Name, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get neighborhood: %w", err)
	}
	return &n, nil
}

// List lista os bairros.
func (r *NeighborhoodRepo) List() ([]*entity.Neighborhood, error) {
	rows, err := r.q.Query(context.Background(),
		"SELECT id, name, created_at FROM neighborhoods ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}
	defer rows.Close()
	var list []*entity.Neighborhood
	for rows.Next() {
		var n entity.Neighborhood
		if err := rows.Scan(&n.ID, &n.Name, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan neighborhood: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
