package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecovale/recicla-api/internal/application/dto"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

// MaterialUseCase casos de uso CRUD para materiais (dado mestre). Os contadores
// de estoque nascem zerados e só o motor de estoque os altera.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase constrói o caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create cadastra um material novo com estoque zero.
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	now := time.Now()
	material := &entity.Material{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Weight:    decimal.Zero,
		Volume:    decimal.Zero,
		RiskLevel: in.RiskLevel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtém um material por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// List lista materiais com paginação.
func (uc *MaterialUseCase) List(limit, offset int) ([]dto.MaterialResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return items, nil
}

// Delete remove um material sem movimentações nem coletas.
func (uc *MaterialUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:        m.ID,
		Name:      m.Name,
		Weight:    m.Weight,
		Volume:    m.Volume,
		RiskLevel: m.RiskLevel,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
