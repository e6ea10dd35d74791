package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecovale/recicla-api/internal/application/dto"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

// StaffUseCase casos de uso CRUD para funcionários.
type StaffUseCase struct {
	repo repository.StaffRepository
}

// NewStaffUseCase constrói o caso de uso.
func NewStaffUseCase(repo repository.StaffRepository) *StaffUseCase {
	return &StaffUseCase{repo: repo}
}

// Create cadastra um funcionário novo.
func (uc *StaffUseCase) Create(in dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	staff := &entity.Staff{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CPF:       in.CPF,
		Phone:     in.Phone,
		RoleID:    in.RoleID,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

// GetByID obtém um funcionário por ID.
func (uc *StaffUseCase) GetByID(id string) (*dto.StaffResponse, error) {
	staff, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, nil
	}
	return toStaffResponse(staff), nil
}

// List lista funcionários com paginação.
func (uc *StaffUseCase) List(limit, offset int) ([]dto.StaffResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StaffResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStaffResponse(s))
	}
	return items, nil
}

func toStaffResponse(s *entity.Staff) *dto.StaffResponse {
	return &dto.StaffResponse{
		ID:        s.ID,
		Name:      s.Name,
		CPF:       s.CPF,
		Phone:     s.Phone,
		RoleID:    s.RoleID,
		CreatedAt: s.CreatedAt,
	}
}
