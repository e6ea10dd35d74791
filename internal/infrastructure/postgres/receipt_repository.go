package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementação de ReceiptRepository sobre PostgreSQL (usável com pool ou tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptColumns = "id, material_id, staff_id, weight, volume, created_at"

// Create persiste um recebimento. Não há Update nem Delete: ledger append-only.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	query := `
		INSERT INTO receipts (id, material_id, staff_id, weight, volume, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.MaterialID, receipt.StaffID, receipt.Weight, receipt.Volume, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create receipt: %w", err)
	}
	return nil
}

// GetByID obtém um recebimento por ID.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	query := "SELECT " + receiptColumns + " FROM receipts WHERE id = $1"
	var rec entity.Receipt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.MaterialID, &rec.StaffID, &rec.Weight, &rec.Volume, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &rec, nil
}

// ListByMaterial lista recebimentos de um material em um intervalo de datas.
func (r *ReceiptRepo) ListByMaterial(materialID string, from, to *time.Time, limit, offset int) ([]*entity.Receipt, error) {
	query := "SELECT " + receiptColumns + " FROM receipts WHERE material_id = $1"
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
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		var rec entity.Receipt
		if err := rows.Scan(&rec.ID, &rec.MaterialID, &rec.StaffID, &rec.Weight, &rec.Volume, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// SumWeightByStaff soma o peso recebido pelo coletador no intervalo [from, to).
func (r *ReceiptRepo) SumWeightByStaff(staffID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(weight), 0)
		FROM receipts
		WHERE staff_id = $1 AND created_at >= $2 AND created_at < $3`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, staffID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum receipts by staff: %w", err)
	}
	return sum, nil
}

// SumWeight soma o peso recebido por todos os coletadores no intervalo [from, to).
func (r *ReceiptRepo) SumWeight(from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(weight), 0)
		FROM receipts
		WHERE created_at >= $1 AND created_at < $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum receipts: %w", err)
	}
	return sum, nil
}

// SumByMaterial soma peso e volume de todos os recebimentos do material.
func (r *ReceiptRepo) SumByMaterial(materialID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(weight), 0), COALESCE(SUM(volume), 0)
		FROM receipts
		WHERE material_id = $1`
	var weight, volume decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, materialID).Scan(&weight, &volume); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum receipts by material: %w", err)
	}
	return weight, volume, nil
}
