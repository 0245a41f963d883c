package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/fiscal"
)

func TestCalcularTotais_NotaVazia(t *testing.T) {
	totais := fiscal.CalcularTotais(nil)
	assert.True(t, totais.ValorTotalNota.IsZero())
	assert.True(t, totais.ValorProdutos.IsZero())
}

func TestCalcularTotais_SomaDasLinhas(t *testing.T) {
	// Linha 1: cenário de referência (500 bruto, ICMS 81, IPI 25).
	item1 := fiscal.Recalcular(buildItem())

	// Linha 2: 100 bruto com frete e seguro.
	item2 := entity.ItemNota{
		Descricao:     "Segundo produto",
		Quantidade:    dec("2"),
		ValorUnitario: dec("50"),
		Tributacao:    fiscal.DefaultTributacao(),
	}
	item2.Tributacao.ICMS.Aliquota = dec("12")
	item2.Tributacao.ValorFrete = dec("15")
	item2.Tributacao.ValorSeguro = dec("5")
	item2 = fiscal.Recalcular(item2)

	totais := fiscal.CalcularTotais([]entity.ItemNota{item1, item2})

	assertDecEqual(t, "600", totais.ValorProdutos, "produtos")
	assertDecEqual(t, "93.00", totais.ValorICMS, "ICMS (81 + 12)")
	assertDecEqual(t, "25.00", totais.ValorIPI, "IPI")
	assertDecEqual(t, "15", totais.ValorFrete, "frete")
	assertDecEqual(t, "5", totais.ValorSeguro, "seguro")

	// Total = produtos + IPI + frete + seguro + outras - desconto
	assertDecEqual(t, "645.00", totais.ValorTotalNota, "total da nota")
}

func TestCalcularTotais_DescontoFixoSubtraido(t *testing.T) {
	item := buildItem()
	item.Tributacao.Desconto.Valor = dec("50")
	item = fiscal.Recalcular(item)

	totais := fiscal.CalcularTotais([]entity.ItemNota{item})

	assertDecEqual(t, "50", totais.ValorDesconto, "desconto fixo agregado")
	// 500 + 25 (IPI) - 50 (desconto fixo)
	assertDecEqual(t, "475.00", totais.ValorTotalNota, "total com desconto")
}

func TestCalcularTotais_RecomputadoSobDemanda(t *testing.T) {
	itens := []entity.ItemNota{fiscal.Recalcular(buildItem())}
	t1 := fiscal.CalcularTotais(itens)

	itens[0] = fiscal.AplicarEdicao(itens[0], "quantidade", "10")
	t2 := fiscal.CalcularTotais(itens)

	assert.False(t, t1.ValorProdutos.Equal(t2.ValorProdutos),
		"os totais refletem o estado atual dos itens, sem cache")
}
