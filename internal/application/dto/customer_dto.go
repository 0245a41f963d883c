package dto

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name      string `json:"name"`
	Documento string `json:"documento"` // CPF ou CNPJ
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Endereco  string `json:"endereco,omitempty"`
}

// CustomerResponse cliente nas respostas.
type CustomerResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Documento string `json:"documento"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Endereco  string `json:"endereco,omitempty"`
}
