package dto

import "github.com/shopspring/decimal"

// DashboardResumoDTO resumo do painel: contagens por status e valores
// agregados das notas autorizadas, sempre recomputados sob demanda.
type DashboardResumoDTO struct {
	TotalNotas       int             `json:"total_notas"`
	NotasAutorizadas int             `json:"notas_autorizadas"`
	NotasCanceladas  int             `json:"notas_canceladas"`
	NotasRascunho    int             `json:"notas_rascunho"`
	ValorAutorizado  decimal.Decimal `json:"valor_autorizado"`
	ValorICMS        decimal.Decimal `json:"valor_icms"`
	ValorIPI         decimal.Decimal `json:"valor_ipi"`
}
