package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
)

// Padrões fiscais de uma linha recém-criada: venda interna, regime normal.
const (
	CFOPPadrao         = "5102" // venda de mercadoria adquirida de terceiros
	CSTICMSPadrao      = "00"   // tributada integralmente
	CSTPISCOFINSPadrao = "01"   // operação tributável, alíquota básica
	CSTIPIPadrao       = "99"   // outras saídas
	OrigemPadrao       = "0"    // nacional
)

// DefaultTributacao devolve a tributação de uma linha nova: todas as
// alíquotas zeradas, ICMS habilitado e códigos fiscais padrão.
func DefaultTributacao() entity.Tributacao {
	return entity.Tributacao{
		ICMS: entity.ImpostoICMS{Enabled: true},
		Fiscal: entity.InformacoesFiscais{
			CFOP:         CFOPPadrao,
			CSTICMS:      CSTICMSPadrao,
			CSTPISCOFINS: CSTPISCOFINSPadrao,
			CSTIPI:       CSTIPIPadrao,
			Origem:       OrigemPadrao,
		},
	}
}

// NovoItemDeProduto cria uma linha a partir de um produto do estoque,
// pré-preenchendo códigos fiscais e alíquotas padrão do cadastro, e já
// devolve a linha recalculada.
func NovoItemDeProduto(p entity.Product, quantidade decimal.Decimal) entity.ItemNota {
	trib := DefaultTributacao()
	if p.CFOP != "" {
		trib.Fiscal.CFOP = p.CFOP
	}
	if p.CSTICMS != "" {
		trib.Fiscal.CSTICMS = p.CSTICMS
	}
	if p.CSTPISCOFINS != "" {
		trib.Fiscal.CSTPISCOFINS = p.CSTPISCOFINS
	}
	if p.CSTIPI != "" {
		trib.Fiscal.CSTIPI = p.CSTIPI
	}
	trib.Fiscal.NCM = p.NCM
	trib.ICMS.Aliquota = p.AliquotaICMS
	trib.IPI.Aliquota = p.AliquotaIPI
	trib.PIS.Aliquota = p.AliquotaPIS
	trib.COFINS.Aliquota = p.AliquotaCOFINS

	item := entity.ItemNota{
		ProductID:     p.ID,
		Descricao:     p.Name,
		Quantidade:    quantidade,
		ValorUnitario: p.Price,
		Tributacao:    trib,
	}
	return Recalcular(item)
}
