package dto

import "time"

// CreateCompanyRequest cadastro da empresa emitente.
type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	CNPJ     string `json:"cnpj" validate:"required"`
	IE       string `json:"ie"`
	Endereco string `json:"endereco"`
	UF       string `json:"uf" validate:"required,len=2"`
}

// CompanyResponse empresa emitente nas respostas.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	IE        string    `json:"ie"`
	Endereco  string    `json:"endereco"`
	UF        string    `json:"uf"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
