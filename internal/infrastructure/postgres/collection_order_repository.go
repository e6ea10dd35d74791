package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

var _ repository.CollectionOrderRepository = (*CollectionOrderRepo)(nil)

// CollectionOrderRepo implementação de CollectionOrderRepository sobre PostgreSQL.
type CollectionOrderRepo struct {
	q Querier
}

// NewCollectionOrderRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCollectionOrderRepository(q Querier) *CollectionOrderRepo {
	return &CollectionOrderRepo{q: q}
}

const orderColumns = "id, material_id, client_id, staff_id, weight, volume, type, created_at"

// Create persiste um pedido de coleta (append-only).
func (r *CollectionOrderRepo) Create(o *entity.CollectionOrder) error {
	query := `
		INSERT INTO collection_orders (id, material_id, client_id, staff_id, weight, volume, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.MaterialID, o.ClientID, o.StaffID, o.Weight, o.Volume, o.Type, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create collection order: %w", err)
	}
	return nil
}

// GetByID obtém um pedido de coleta por ID.
func (r *CollectionOrderRepo) GetByID(id string) (*entity.CollectionOrder, error) {
	query := "SELECT " + orderColumns + " FROM collection_orders WHERE id = $1"
	var o entity.CollectionOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.MaterialID, &o.ClientID, &o.StaffID, &o.Weight, &o.Volume, &o.Type, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collection order: %w", err)
	}
	return &o, nil
}

// List lista pedidos de coleta em um intervalo de datas.
func (r *CollectionOrderRepo) List(from, to *time.Time, limit, offset int) ([]*entity.CollectionOrder, error) {
	query := "SELECT " + orderColumns + " FROM collection_orders WHERE true"
	var args []any
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at < $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list collection orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.CollectionOrder
	for rows.Next() {
		var o entity.CollectionOrder
		if err := rows.Scan(&o.ID, &o.MaterialID, &o.ClientID, &o.StaffID, &o.Weight, &o.Volume, &o.Type, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan collection order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// ExistsForPair informa se o par cliente/coletador já tem coleta no intervalo [from, to).
func (r *CollectionOrderRepo) ExistsForPair(clientID, staffID string, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM collection_orders
			WHERE client_id = $1 AND staff_id = $2 AND created_at >= $3 AND created_at < $4
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, clientID, staffID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists collection order: %w", err)
	}
	return exists, nil
}
