package entity

import "time"

// Partner representa uma empresa parceira de processamento, destino das remessas.
type Partner struct {
	ID        string
	Name      string
	CNPJ      string // único
	Phone     string
	Address   string
	CreatedAt time.Time
}
