package fiscal

import (
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
)

// CalcularTotais agrega os valores da nota a partir dos itens: um reduce
// puro, recomputado sob demanda — a correção não depende de invalidação de
// cache.
//
// O total da nota soma produtos, IPI, frete, seguro e outras despesas e
// subtrai o desconto (a parcela fixa; o desconto percentual já está embutido
// nas bases de cálculo de cada linha).
func CalcularTotais(itens []entity.ItemNota) entity.TotaisNota {
	var t entity.TotaisNota
	for _, item := range itens {
		trib := item.Tributacao
		t.ValorProdutos = t.ValorProdutos.Add(item.ValorTotal)
		t.ValorDesconto = t.ValorDesconto.Add(trib.Desconto.Valor)
		t.ValorICMS = t.ValorICMS.Add(trib.ICMS.Valor)
		t.ValorICMSST = t.ValorICMSST.Add(trib.ICMS.ValorST)
		t.ValorIPI = t.ValorIPI.Add(trib.IPI.Valor)
		t.ValorPIS = t.ValorPIS.Add(trib.PIS.Valor)
		t.ValorCOFINS = t.ValorCOFINS.Add(trib.COFINS.Valor)
		t.ValorFrete = t.ValorFrete.Add(trib.ValorFrete)
		t.ValorSeguro = t.ValorSeguro.Add(trib.ValorSeguro)
		t.OutrasDespesas = t.OutrasDespesas.Add(trib.OutrasDespesas)
	}
	t.ValorTotalNota = t.ValorProdutos.
		Add(t.ValorIPI).
		Add(t.ValorFrete).
		Add(t.ValorSeguro).
		Add(t.OutrasDespesas).
		Sub(t.ValorDesconto)
	return t
}
