package entity

import "time"

// Customer representa um cliente da empresa (destinatário da NF-e).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Documento string // CPF ou CNPJ
	Email     string
	Phone     string
	Endereco  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
