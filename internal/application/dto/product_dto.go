package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para criar um produto com seus padrões fiscais.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit" validate:"required"`

	NCM            string          `json:"ncm"`
	CFOP           string          `json:"cfop"`
	CSTICMS        string          `json:"cst_icms"`
	CSTPISCOFINS   string          `json:"cst_pis_cofins"`
	CSTIPI         string          `json:"cst_ipi"`
	AliquotaICMS   decimal.Decimal `json:"aliquota_icms"`
	AliquotaIPI    decimal.Decimal `json:"aliquota_ipi"`
	AliquotaPIS    decimal.Decimal `json:"aliquota_pis"`
	AliquotaCOFINS decimal.Decimal `json:"aliquota_cofins"`
}

// UpdateProductRequest entrada para atualizar um produto (campos opcionais).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Unit         *string          `json:"unit"`
	NCM          *string          `json:"ncm"`
	CFOP         *string          `json:"cfop"`
	CSTICMS      *string          `json:"cst_icms"`
	AliquotaICMS *decimal.Decimal `json:"aliquota_icms"`
	AliquotaIPI  *decimal.Decimal `json:"aliquota_ipi"`
}

// ProductResponse saída de um produto.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       decimal.Decimal `json:"stock"`
	Unit        string          `json:"unit"`

	NCM            string          `json:"ncm"`
	CFOP           string          `json:"cfop"`
	CSTICMS        string          `json:"cst_icms"`
	CSTPISCOFINS   string          `json:"cst_pis_cofins"`
	CSTIPI         string          `json:"cst_ipi"`
	AliquotaICMS   decimal.Decimal `json:"aliquota_icms"`
	AliquotaIPI    decimal.Decimal `json:"aliquota_ipi"`
	AliquotaPIS    decimal.Decimal `json:"aliquota_pis"`
	AliquotaCOFINS decimal.Decimal `json:"aliquota_cofins"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
