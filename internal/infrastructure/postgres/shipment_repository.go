package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ecovale/recicla-api/internal/domain"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementação de ShipmentRepository sobre PostgreSQL (usável com pool ou tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentColumns = "id, material_id, partner_id, weight, volume, status, created_at, retracted_at"

// Create persiste uma remessa ativa.
func (r *ShipmentRepo) Create(s *entity.Shipment) error {
	query := `
		INSERT INTO shipments (id, material_id, partner_id, weight, volume, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.MaterialID, s.PartnerID, s.Weight, s.Volume, s.Status, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create shipment: %w", err)
	}
	return nil
}

// GetByID obtém uma remessa por ID, ativa ou retratada.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	return r.get("SELECT "+shipmentColumns+" FROM shipments WHERE id = $1", id)
}

// GetActiveForUpdate obtém uma remessa ativa bloqueando a linha; nil se não
// existir ou já estiver retratada. Estouro do lock_timeout vira ErrLockTimeout.
func (r *ShipmentRepo) GetActiveForUpdate(id string) (*entity.Shipment, error) {
	s, err := r.get("SELECT "+shipmentColumns+" FROM shipments WHERE id = $1 AND status = $2 FOR UPDATE",
		id, entity.ShipmentStatusActive)
	if err != nil && isLockNotAvailable(err) {
		return nil, domain.ErrLockTimeout
	}
	return s, err
}

func (r *ShipmentRepo) get(query string, args ...any) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.MaterialID, &s.PartnerID, &s.Weight, &s.Volume, &s.Status, &s.CreatedAt, &s.RetractedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}

// Retract marca a remessa como retratada. A linha nunca é apagada; a variante
// RETRACTED sai de todos os agregados ativos.
func (r *ShipmentRepo) Retract(id string, at time.Time) error {
	query := `UPDATE shipments SET status = $2, retracted_at = $3 WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.ShipmentStatusRetracted, at, entity.ShipmentStatusActive)
	if err != nil {
		return fmt.Errorf("retract shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}

// ListByMaterial lista remessas de um material em um intervalo de datas.
func (r *ShipmentRepo) ListByMaterial(materialID string, from, to *time.Time, limit, offset int) ([]*entity.Shipment, error) {
	query := "SELECT " + shipmentColumns + " FROM shipments WHERE material_id = $1"
	args := []any{materialID}
	pos := 2
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
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(&s.ID, &s.MaterialID, &s.PartnerID, &s.Weight, &s.Volume, &s.Status, &s.CreatedAt, &s.RetractedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ExistsForPartner informa se a parceira já tem remessa ativa no intervalo [from, to).
func (r *ShipmentRepo) ExistsForPartner(partnerID string, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM shipments
			WHERE partner_id = $1 AND status = $2 AND created_at >= $3 AND created_at < $4
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query,
		partnerID, entity.ShipmentStatusActive, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists shipment for partner: %w", err)
	}
	return exists, nil
}

// SumActiveByMaterial soma peso e volume das remessas ativas do material.
func (r *ShipmentRepo) SumActiveByMaterial(materialID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(weight), 0), COALESCE(SUM(volume), 0)
		FROM shipments
		WHERE material_id = $1 AND status = $2`
	var weight, volume decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, materialID, entity.ShipmentStatusActive).Scan(&weight, &volume)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum shipments by material: %w", err)
	}
	return weight, volume, nil
}
