package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecovale/recicla-api/internal/application/dto"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

// CatalogUseCase casos de uso para os dados mestres só de nome (cargos e bairros).
type CatalogUseCase struct {
	roleRepo         repository.RoleRepository
	neighborhoodRepo repository.NeighborhoodRepository
}

// NewCatalogUseCase constrói o caso de uso.
func NewCatalogUseCase(roleRepo repository.RoleRepository, neighborhoodRepo repository.NeighborhoodRepository) *CatalogUseCase {
	return &CatalogUseCase{roleRepo: roleRepo, neighborhoodRepo: neighborhoodRepo}
}

// CreateRole cadastra um cargo novo.
func (uc *CatalogUseCase) CreateRole(in dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	role := &entity.Role{ID: uuid.New().String(), Name: in.Name, CreatedAt: time.Now()}
	if err := uc.roleRepo.Create(role); err != nil {
		return nil, err
	}
	return &dto.CatalogResponse{ID: role.ID, Name: role.Name, CreatedAt: role.CreatedAt}, nil
}

// ListRoles lista os cargos.
func (uc *CatalogUseCase) ListRoles() ([]dto.CatalogResponse, error) {
	list, err := uc.roleRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.CatalogResponse{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt})
	}
	return items, nil
}

// CreateNeighborhood cadastra um bairro novo.
func (uc *CatalogUseCase) CreateNeighborhood(in dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	n := &entity.Neighborhood{ID: uuid.New().String(), Name: in.Name, CreatedAt: time.Now()}
	if err := uc.neighborhoodRepo.Create(n); err != nil {
		return nil, err
	}
	return &dto.CatalogResponse{ID: n.ID, Name: n.Name, CreatedAt: n.CreatedAt}, nil
}

// ListNeighborhoods lista os bairros.
func (uc *CatalogUseCase) ListNeighborhoods() ([]dto.CatalogResponse, error) {
	list, err := uc.neighborhoodRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.CatalogResponse{ID: n.ID, Name: n.Name, CreatedAt: n.CreatedAt})
	}
	return items, nil
}
