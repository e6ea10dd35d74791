package entity

import "time"

// Client representa um cliente atendido pelas coletas.
type Client struct {
	ID             string
	Name           string
	CPF            string // único
	Phone          string
	Address        string
	NeighborhoodID string
	CreatedAt      time.Time
}
