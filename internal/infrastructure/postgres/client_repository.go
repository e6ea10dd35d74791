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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementação de ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = "id, name, cpf, phone, address, neighborhood_id, created_at"

// Create cadastra um cliente.
func (r *ClientRepo) Create(c *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, cpf, phone, address, neighborhood_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.CPF, c.Phone, c.Address, c.NeighborhoodID, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// GetByID obtém um cliente por ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.get("SELECT "+clientColumns+" FROM clients WHERE id = $1", id)
}

// GetByCPF obtém um cliente pelo CPF (único).
func (r *ClientRepo) GetByCPF(cpf string) (*entity.Client, error) {
	return r.get("SELECT "+clientColumns+" FROM clients WHERE cpf = $1", cpf)
}

func (r *ClientRepo) get(query string, arg any) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.CPF, &c.Phone, &c.Address, &c.NeighborhoodID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List lista clientes com paginação.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := "SELECT " + clientColumns + " FROM clients ORDER BY name LIMIT $1 OFFSET $2"
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.CPF, &c.Phone, &c.Address, &c.NeighborhoodID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
