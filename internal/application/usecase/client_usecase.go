package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecovale/recicla-api/internal/application/dto"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase constrói o caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create cadastra um cliente novo.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	client := &entity.Client{
		ID:             uuid.New().String(),
		Name:           in.Name,
		CPF:            in.CPF,
		Phone:          in.Phone,
		Address:        in.Address,
		NeighborhoodID: in.NeighborhoodID,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtém um cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return toClientResponse(client), nil
}

// List lista clientes com paginação.
func (uc *ClientUseCase) List(limit, offset int) ([]dto.ClientResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return items, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		CPF:            c.CPF,
		Phone:          c.Phone,
		Address:        c.Address,
		NeighborhoodID: c.NeighborhoodID,
		CreatedAt:      c.CreatedAt,
	}
}
