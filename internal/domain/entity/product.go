package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto/SKU do estoque.
//
// Os campos fiscais (NCM, CFOP, CSTs e alíquotas padrão) pré-preenchem a
// tributação de uma nova linha quando o produto é adicionado à nota; o
// usuário pode ajustá-los item a item no formulário.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Stock       decimal.Decimal
	Unit        string // UN, KG, CX...

	// Padrões fiscais
	NCM            string
	CFOP           string
	CSTICMS        string
	CSTPISCOFINS   string
	CSTIPI         string
	AliquotaICMS   decimal.Decimal
	AliquotaIPI    decimal.Decimal
	AliquotaPIS    decimal.Decimal
	AliquotaCOFINS decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
