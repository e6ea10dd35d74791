package stock

import (
	"context"

	"github.com/ecovale/recicla-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade do motor de estoque:
// o lock da linha de material vale do carregamento dos agregados até a
// aplicação do delta, e qualquer erro desfaz tudo (rollback). O LockRepository
// serializa as invariantes que cruzam materiais (filas por coletador,
// parceira, cliente e pelo dia da organização).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		receiptRepo repository.ReceiptRepository,
		shipmentRepo repository.ShipmentRepository,
		orderRepo repository.CollectionOrderRepository,
		locks repository.LockRepository,
	) error) error
}
