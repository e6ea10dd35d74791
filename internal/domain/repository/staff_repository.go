package repository

import "github.com/ecovale/recicla-api/internal/domain/entity"

// StaffRepository define a porta de persistência de funcionários (CRUD simples).
type StaffRepository interface {
	Create(s *entity.Staff) error
	GetByID(id string) (*entity.Staff, error)
	GetByCPF(cpf string) (*entity.Staff, error)
	List(limit, offset int) ([]*entity.Staff, error)
}
