package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReceiptRequest registro de recebimento (entrada de material).
type CreateReceiptRequest struct {
	MaterialID string          `json:"material_id"`
	StaffCPF   string          `json:"staff_cpf"`
	Weight     decimal.Decimal `json:"weight"`
	Volume     decimal.Decimal `json:"volume"`
}

// ReceiptResponse recebimento persistido.
type ReceiptResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	StaffID    string          `json:"staff_id"`
	Weight     decimal.Decimal `json:"weight"`
	Volume     decimal.Decimal `json:"volume"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CreateShipmentRequest registro de remessa (saída para parceira).
type CreateShipmentRequest struct {
	MaterialID  string          `json:"material_id"`
	PartnerCNPJ string          `json:"partner_cnpj"`
	WeightSent  decimal.Decimal `json:"weight_sent"`
	VolumeSent  decimal.Decimal `json:"volume_sent"`
}

// ShipmentResponse remessa persistida (ou retratada).
type ShipmentResponse struct {
	ID          string          `json:"id"`
	MaterialID  string          `json:"material_id"`
	PartnerID   string          `json:"partner_id"`
	Weight      decimal.Decimal `json:"weight"`
	Volume      decimal.Decimal `json:"volume"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	RetractedAt *time.Time      `json:"retracted_at,omitempty"`
}

// CreateOrderRequest registro de pedido de coleta.
type CreateOrderRequest struct {
	MaterialID string          `json:"material_id"`
	ClientCPF  string          `json:"client_cpf"`
	StaffCPF   string          `json:"staff_cpf"`
	Weight     decimal.Decimal `json:"weight"`
	Volume     decimal.Decimal `json:"volume"`
	Type       string          `json:"type"`
}

// OrderResponse pedido de coleta persistido.
type OrderResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	ClientID   string          `json:"client_id"`
	StaffID    string          `json:"staff_id"`
	Weight     decimal.Decimal `json:"weight"`
	Volume     decimal.Decimal `json:"volume"`
	Type       string          `json:"type"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MovementListRequest filtros das listagens do ledger.
type MovementListRequest struct {
	PageRequest
	MaterialID string     `query:"material_id"`
	From       *time.Time `query:"from"`
	To         *time.Time `query:"to"`
}

// ReconciliationResponse compara os contadores vivos do material com as somas do ledger.
type ReconciliationResponse struct {
	MaterialID   string          `json:"material_id"`
	Weight       decimal.Decimal `json:"weight"`
	Volume       decimal.Decimal `json:"volume"`
	LedgerWeight decimal.Decimal `json:"ledger_weight"`
	LedgerVolume decimal.Decimal `json:"ledger_volume"`
	Consistent   bool            `json:"consistent"`
}
