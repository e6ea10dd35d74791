package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ecovale/recicla-api/internal/domain"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementação de MaterialRepository sobre PostgreSQL (usável com pool ou tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = "id, name, weight, volume, risk_level, created_at, updated_at"

// Create cadastra um material.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, weight, volume, risk_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Weight, m.Volume, m.RiskLevel, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// GetByID obtém um material por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.get("SELECT "+materialColumns+" FROM materials WHERE id = $1", id)
}

// GetByName obtém um material pelo nome (único).
func (r *MaterialRepo) GetByName(name string) (*entity.Material, error) {
	return r.get("SELECT "+materialColumns+" FROM materials WHERE name = $1", name)
}

// GetForUpdate obtém o material bloqueando a linha (SELECT FOR UPDATE).
// O estouro do lock_timeout da transação vira domain.ErrLockTimeout.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	m, err := r.get("SELECT "+materialColumns+" FROM materials WHERE id = $1 FOR UPDATE", id)
	if err != nil && isLockNotAvailable(err) {
		return nil, domain.ErrLockTimeout
	}
	return m, err
}

func (r *MaterialRepo) get(query string, arg any) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Name, &m.Weight, &m.Volume, &m.RiskLevel, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// List lista materiais com paginação.
func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	query := "SELECT " + materialColumns + " FROM materials ORDER BY name LIMIT $1 OFFSET $2"
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Weight, &m.Volume, &m.RiskLevel, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpdateStock grava os novos contadores do material. Chamar só com a linha
// bloqueada (GetForUpdate). Contador negativo é recusado sem mutação: checagem
// defensiva de última linha, inalcançável com o motor de validação correto.
func (r *MaterialRepo) UpdateStock(id string, weight, volume decimal.Decimal) error {
	if weight.IsNegative() || volume.IsNegative() {
		return &domain.StockInvariantError{MaterialID: id, Weight: weight, Volume: volume}
	}
	query := `UPDATE materials SET weight = $2, volume = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, weight, volume)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// Delete remove um material sem referências no ledger.
func (r *MaterialRepo) Delete(id string) error {
	var referenced bool
	check := `
		SELECT EXISTS (SELECT 1 FROM receipts WHERE material_id = $1)
		    OR EXISTS (SELECT 1 FROM shipments WHERE material_id = $1)
		    OR EXISTS (SELECT 1 FROM collection_orders WHERE material_id = $1)`
	if err := r.q.QueryRow(context.Background(), check, id).Scan(&referenced); err != nil {
		return fmt.Errorf("check material references: %w", err)
	}
	if referenced {
		return domain.ErrMaterialInUse
	}
	tag, err := r.q.Exec(context.Background(), "DELETE FROM materials WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}
