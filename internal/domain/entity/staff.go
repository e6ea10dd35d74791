package entity

import "time"

// Staff representa um funcionário da operação (coletador que traz material dos clientes).
type Staff struct {
	ID        string
	Name      string
	CPF       string // único
	Phone     string
	RoleID    string
	CreatedAt time.Time
}
