package repository

import "github.com/ecovale/recicla-api/internal/domain/entity"

// ClientRepository define a porta de persistência de clientes (CRUD simples).
type ClientRepository interface {
	Create(c *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByCPF(cpf string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
}
