package repository

import "github.com/ecovale/recicla-api/internal/domain/entity"

// PartnerRepository define a porta de persistência de empresas parceiras (CRUD simples).
type PartnerRepository interface {
	Create(p *entity.Partner) error
	GetByID(id string) (*entity.Partner, error)
	GetByCNPJ(cnpj string) (*entity.Partner, error)
	List(limit, offset int) ([]*entity.Partner, error)
}
