package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status da nota fiscal no ciclo de emissão local.
// Transmissão real à SEFAZ e assinatura digital do XML ficam fora do escopo:
// "autorizada" aqui marca o fim do fluxo local de emissão.
const (
	NotaStatusRascunho   = "rascunho"
	NotaStatusAutorizada = "autorizada"
	NotaStatusCancelada  = "cancelada"
)

// NotaFiscal representa o cabeçalho de uma NF-e.
type NotaFiscal struct {
	ID          string
	CompanyID   string
	Numero      string
	Serie       string
	ChaveAcesso string // 44 dígitos, com dígito verificador módulo 11
	CustomerID  string

	// Snapshot do destinatário no momento da emissão.
	CustomerNome      string
	CustomerDocumento string // CPF (11 dígitos) ou CNPJ (14 dígitos)
	CustomerEndereco  string

	Itens     []ItemNota
	Totais    TotaisNota
	Status    string
	Emissao   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotaisNota agrega os valores da nota a partir dos itens.
// Sempre recalculado sob demanda; nunca editado diretamente.
type TotaisNota struct {
	ValorProdutos  decimal.Decimal
	ValorDesconto  decimal.Decimal
	ValorICMS      decimal.Decimal
	ValorICMSST    decimal.Decimal
	ValorIPI       decimal.Decimal
	ValorPIS       decimal.Decimal
	ValorCOFINS    decimal.Decimal
	ValorFrete     decimal.Decimal
	ValorSeguro    decimal.Decimal
	OutrasDespesas decimal.Decimal
	ValorTotalNota decimal.Decimal
}
