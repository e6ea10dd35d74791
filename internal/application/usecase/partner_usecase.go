package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecovale/recicla-api/internal/application/dto"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

// PartnerUseCase casos de uso CRUD para empresas parceiras.
type PartnerUseCase struct {
	repo repository.PartnerRepository
}

// NewPartnerUseCase constrói o caso de uso.
func NewPartnerUseCase(repo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{repo: repo}
}

// Create cadastra uma parceira nova.
func (uc *PartnerUseCase) Create(in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	partner := &entity.Partner{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CNPJ:      in.CNPJ,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(partner); err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

// GetByID obtém uma parceira por ID.
func (uc *PartnerUseCase) GetByID(id string) (*dto.PartnerResponse, error) {
	partner, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, nil
	}
	return toPartnerResponse(partner), nil
}

// List lista parceiras com paginação.
func (uc *PartnerUseCase) List(limit, offset int) ([]dto.PartnerResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartnerResponse(p))
	}
	return items, nil
}

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:        p.ID,
		Name:      p.Name,
		CNPJ:      p.CNPJ,
		Phone:     p.Phone,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
	}
}
