package entity

import "time"

// Role representa um cargo de funcionário (dado mestre).
type Role struct {
	ID        string
	Name      string // único
	CreatedAt time.Time
}

// Neighborhood representa um bairro atendido (dado mestre).
type Neighborhood struct {
	ID        string
	Name      string // único
	CreatedAt time.Time
}
