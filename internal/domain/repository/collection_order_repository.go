package repository

import (
	"time"

	"github.com/ecovale/recicla-api/internal/domain/entity"
)

// CollectionOrderRepository define a porta de persistência dos pedidos de coleta
// (append-only; não mexe no estoque).
type CollectionOrderRepository interface {
	Create(o *entity.CollectionOrder) error
	GetByID(id string) (*entity.CollectionOrder, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.CollectionOrder, error)
	// ExistsForPair informa se o par cliente/coletador já tem coleta no intervalo.
	ExistsForPair(clientID, staffID string, from, to time.Time) (bool, error)
}
