package entity

import "time"

// Company representa a empresa emitente das notas fiscais.
type Company struct {
	ID        string
	Name      string
	CNPJ      string
	IE        string // Inscrição Estadual
	Endereco  string
	UF        string // usado no prefixo da chave de acesso (código da UF)
	CreatedAt time.Time
	UpdatedAt time.Time
}
