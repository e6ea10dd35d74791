package repository

import "github.com/ecovale/recicla-api/internal/domain/entity"

// RoleRepository define a porta de persistência de cargos (dado mestre).
type RoleRepository interface {
	Create(r *entity.Role) error
	GetByID(id string) (*entity.Role, error)
	List() ([]*entity.Role, error)
}

// NeighborhoodRepository define a porta de persistência de bairros (dado mestre).
type NeighborhoodRepository interface {
	Create(n *entity.Neighborhood) error
	GetByID(id string) (*entity.Neighborhood, error)
	List() ([]*entity.Neighborhood, error)
}
