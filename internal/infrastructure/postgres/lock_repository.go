package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ecovale/recicla-api/internal/domain"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

// Ensure LockRepo implements repository.LockRepository.
var _ repository.LockRepository = (*LockRepo)(nil)

// LockRepo adquire os locks que serializam invariantes entre materiais.
// Usa as linhas dos dados mestres como fila (SELECT FOR UPDATE) e um lock
// consultivo transacional para o teto diário da organização. O lock_timeout
// da transação vale para todos; o estouro vira domain.ErrLockTimeout.
type LockRepo struct {
	q Querier
}

// NewLockRepository constrói o repositório de locks atado à transação.
func NewLockRepository(q Querier) *LockRepo {
	return &LockRepo{q: q}
}

// LockStaff bloqueia a linha do coletador até o fim da transação.
func (r *LockRepo) LockStaff(id string) error {
	return r.lockRow("SELECT id FROM staff WHERE id = $1 FOR UPDATE", id, "lock staff")
}

// LockPartner bloqueia a linha da parceira até o fim da transação.
func (r *LockRepo) LockPartner(id string) error {
	return r.lockRow("SELECT id FROM partners WHERE id = $1 FOR UPDATE", id, "lock partner")
}

// LockClient bloqueia a linha do cliente até o fim da transação.
func (r *LockRepo) LockClient(id string) error {
	return r.lockRow("SELECT id FROM clients WHERE id = $1 FOR UPDATE", id, "lock client")
}

// LockDay serializa o dia civil da organização com pg_advisory_xact_lock.
// A chave é o dia no fuso local (AAAAMMDD); o lock solta no Commit/Rollback.
func (r *LockRepo) LockDay(day time.Time) error {
	key := int64(day.Year())*10000 + int64(day.Month())*100 + int64(day.Day())
	_, err := r.q.Exec(context.Background(), "SELECT pg_advisory_xact_lock($1)", key)
	if err != nil {
		if isLockNotAvailable(err) {
			return domain.ErrLockTimeout
		}
		return fmt.Errorf("lock day: %w", err)
	}
	return nil
}

func (r *LockRepo) lockRow(query, id, op string) error {
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		if isLockNotAvailable(err) {
			return domain.ErrLockTimeout
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
