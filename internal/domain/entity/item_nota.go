package entity

import "github.com/shopspring/decimal"

// ItemNota representa uma linha de produto/serviço da nota fiscal.
//
// ValorTotal é sempre derivado de Quantidade * ValorUnitario, e todos os
// campos de valor de imposto são derivados de base * alíquota pelo motor de
// cálculo. Nenhum deles é editável de forma independente.
type ItemNota struct {
	ID         string
	NotaID     string
	ProductID  string
	Descricao  string
	Quantidade decimal.Decimal
	// ValorUnitario preço unitário de venda.
	ValorUnitario decimal.Decimal
	// ValorTotal valor bruto da linha (Quantidade * ValorUnitario, 2 casas).
	ValorTotal decimal.Decimal
	Tributacao Tributacao
}

// Desconto da linha. O valor fixo e o percentual podem coexistir: aplica-se
// primeiro o percentual sobre o bruto e depois subtrai-se o valor fixo.
type Desconto struct {
	Valor      decimal.Decimal
	Percentual decimal.Decimal
}

// ImpostoICMS dados de ICMS da linha, incluindo Substituição Tributária e
// desoneração.
type ImpostoICMS struct {
	Enabled     bool
	Aliquota    decimal.Decimal
	BaseCalculo decimal.Decimal
	Valor       decimal.Decimal

	// Substituição Tributária
	MvaST         decimal.Decimal // Margem de Valor Agregado (%)
	BaseCalculoST decimal.Decimal
	AliquotaST    decimal.Decimal
	ValorST       decimal.Decimal

	// FCP-ST (Fundo de Combate à Pobreza sobre a ST)
	BaseFCPST  decimal.Decimal
	ValorFCPST decimal.Decimal

	// Desoneração
	Desonerado        bool
	ValorDesonerado   decimal.Decimal
	MotivoDesoneracao string
}

// ImpostoIPI dados de IPI. A base é sempre o valor bruto da linha, sem
// influência do desconto.
type ImpostoIPI struct {
	Aliquota    decimal.Decimal
	BaseCalculo decimal.Decimal
	Valor       decimal.Decimal
}

// ImpostoPIS dados de PIS. Base = valor bruto + IPI.
type ImpostoPIS struct {
	Aliquota    decimal.Decimal
	BaseCalculo decimal.Decimal
	Valor       decimal.Decimal
}

// ImpostoCOFINS dados de COFINS. Base = valor bruto + IPI.
type ImpostoCOFINS struct {
	Aliquota    decimal.Decimal
	BaseCalculo decimal.Decimal
	Valor       decimal.Decimal
}

// InformacoesFiscais códigos fiscais obrigatórios da linha.
type InformacoesFiscais struct {
	CFOP         string // 4 dígitos, lista fechada
	NCM          string // 8 dígitos
	CSTICMS      string // CST do regime normal ou CSOSN do Simples
	CSTPISCOFINS string
	CSTIPI       string
	Origem       string // 0-8
}

// Tributacao agrupa toda a carga tributária de um ItemNota.
type Tributacao struct {
	Desconto Desconto
	ICMS     ImpostoICMS
	IPI      ImpostoIPI
	PIS      ImpostoPIS
	COFINS   ImpostoCOFINS
	Fiscal   InformacoesFiscais

	// Valores acessórios da linha.
	ValorSeguro       decimal.Decimal
	ValorFrete        decimal.Decimal
	OutrasDespesas    decimal.Decimal
	ImpostoImportacao decimal.Decimal

	// ValorTotalItem total da linha: bruto + IPI + outras despesas + seguro.
	ValorTotalItem decimal.Decimal
}
