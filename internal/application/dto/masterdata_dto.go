package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest cadastro de material. O estoque inicial é sempre zero;
// só o motor de estoque altera os contadores depois.
type CreateMaterialRequest struct {
	Name      string `json:"name"`
	RiskLevel string `json:"risk_level"`
}

// MaterialResponse material com contadores vivos.
type MaterialResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Weight    decimal.Decimal `json:"weight"`
	Volume    decimal.Decimal `json:"volume"`
	RiskLevel string          `json:"risk_level"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateClientRequest cadastro de cliente.
type CreateClientRequest struct {
	Name           string `json:"name"`
	CPF            string `json:"cpf"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	NeighborhoodID string `json:"neighborhood_id"`
}

// ClientResponse cliente persistido.
type ClientResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CPF            string    `json:"cpf"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	NeighborhoodID string    `json:"neighborhood_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateStaffRequest cadastro de funcionário.
type CreateStaffRequest struct {
	Name   string `json:"name"`
	CPF    string `json:"cpf"`
	Phone  string `json:"phone"`
	RoleID string `json:"role_id"`
}

// StaffResponse funcionário persistido.
type StaffResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Phone     string    `json:"phone"`
	RoleID    string    `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePartnerRequest cadastro de empresa parceira.
type CreatePartnerRequest struct {
	Name    string `json:"name"`
	CNPJ    string `json:"cnpj"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// PartnerResponse empresa parceira persistida.
type PartnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCatalogRequest cadastro de cargo ou bairro (dados mestres só com nome).
type CreateCatalogRequest struct {
	Name string `json:"name"`
}

// CatalogResponse cargo ou bairro persistido.
type CatalogResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
