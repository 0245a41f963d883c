package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/fiscal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// buildItem monta a linha do cenário de referência: 5 x 100,00 com 10% de
// desconto, IPI 5% e ICMS 18%.
func buildItem() entity.ItemNota {
	item := entity.ItemNota{
		Descricao:     "Produto de teste",
		Quantidade:    dec("5"),
		ValorUnitario: dec("100"),
		Tributacao:    fiscal.DefaultTributacao(),
	}
	item.Tributacao.Desconto.Percentual = dec("10")
	item.Tributacao.IPI.Aliquota = dec("5")
	item.Tributacao.ICMS.Aliquota = dec("18")
	return item
}

func assertDecEqual(t *testing.T, expected string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(expected).Equal(got), "%s: esperado %s, obtido %s", msg, expected, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário de referência
// ──────────────────────────────────────────────────────────────────────────────

func TestRecalcular_CenarioReferencia(t *testing.T) {
	item := fiscal.Recalcular(buildItem())

	assertDecEqual(t, "500", item.ValorTotal, "valor bruto")
	assertDecEqual(t, "450", item.Tributacao.ICMS.BaseCalculo, "base ICMS com desconto")
	assertDecEqual(t, "81.00", item.Tributacao.ICMS.Valor, "ICMS")
	assertDecEqual(t, "25.00", item.Tributacao.IPI.Valor, "IPI")
	// Total da linha = bruto + IPI; o desconto não é re-subtraído no total.
	assertDecEqual(t, "525.00", item.Tributacao.ValorTotalItem, "total da linha")
}

func TestRecalcular_BaseIPIEhBruto(t *testing.T) {
	// IPI incide sobre o bruto, sem influência do desconto.
	item := fiscal.Recalcular(buildItem())
	assertDecEqual(t, "500", item.Tributacao.IPI.BaseCalculo, "base IPI")
}

func TestRecalcular_BasePisCofinsIncluiIPI(t *testing.T) {
	item := buildItem()
	item.Tributacao.PIS.Aliquota = dec("1.65")
	item.Tributacao.COFINS.Aliquota = dec("7.6")
	item = fiscal.Recalcular(item)

	// Base = bruto (500) + IPI (25) = 525
	assertDecEqual(t, "525.00", item.Tributacao.PIS.BaseCalculo, "base PIS")
	assertDecEqual(t, "8.66", item.Tributacao.PIS.Valor, "PIS")        // 525 * 1,65%
	assertDecEqual(t, "39.90", item.Tributacao.COFINS.Valor, "COFINS") // 525 * 7,6%
}

// ──────────────────────────────────────────────────────────────────────────────
// Determinismo e gatilhos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecalcular_Idempotente(t *testing.T) {
	primeira := fiscal.Recalcular(buildItem())
	segunda := fiscal.Recalcular(primeira)

	assert.True(t, primeira.ValorTotal.Equal(segunda.ValorTotal))
	assert.True(t, primeira.Tributacao.ICMS.Valor.Equal(segunda.Tributacao.ICMS.Valor))
	assert.True(t, primeira.Tributacao.IPI.Valor.Equal(segunda.Tributacao.IPI.Valor))
	assert.True(t, primeira.Tributacao.ValorTotalItem.Equal(segunda.Tributacao.ValorTotalItem))
}

func TestAplicarEdicao_NaoMutaEntrada(t *testing.T) {
	original := fiscal.Recalcular(buildItem())
	before := original.Tributacao.IPI.Valor

	_ = fiscal.AplicarEdicao(original, "ipi.aliquota", "10")

	assert.True(t, before.Equal(original.Tributacao.IPI.Valor),
		"a entrada não deve ser modificada pela edição")
}

func TestAplicarEdicao_CamposFiscaisNaoDisparamCascata(t *testing.T) {
	item := fiscal.Recalcular(buildItem())

	for campo, valor := range map[string]string{
		"cfop":    "6102",
		"ncm":     "12345678",
		"cstIcms": "20",
	} {
		editado := fiscal.AplicarEdicao(item, campo, valor)
		assert.True(t, item.Tributacao.ICMS.Valor.Equal(editado.Tributacao.ICMS.Valor),
			"editar %s não pode alterar o ICMS", campo)
		assert.True(t, item.Tributacao.ValorTotalItem.Equal(editado.Tributacao.ValorTotalItem),
			"editar %s não pode alterar o total", campo)
	}

	// O campo em si deve ter sido gravado.
	editado := fiscal.AplicarEdicao(item, "cfop", "6102")
	assert.Equal(t, "6102", editado.Tributacao.Fiscal.CFOP)
}

func TestAplicarEdicao_RamosIndependentes(t *testing.T) {
	item := fiscal.Recalcular(buildItem())
	editado := fiscal.AplicarEdicao(item, "ipi.aliquota", "10")

	// IPI e total mudam; ICMS (base com desconto, não com IPI) fica intacto.
	assertDecEqual(t, "50.00", editado.Tributacao.IPI.Valor, "IPI com nova alíquota")
	assertDecEqual(t, "550.00", editado.Tributacao.ValorTotalItem, "total da linha")
	assert.True(t, item.Tributacao.ICMS.Valor.Equal(editado.Tributacao.ICMS.Valor),
		"ICMS não depende do IPI")
}

func TestAplicarEdicao_QuantidadeDisparaCascata(t *testing.T) {
	item := fiscal.Recalcular(buildItem())
	editado := fiscal.AplicarEdicao(item, "quantidade", "10")

	assertDecEqual(t, "1000", editado.ValorTotal, "bruto com nova quantidade")
	assertDecEqual(t, "162.00", editado.Tributacao.ICMS.Valor, "ICMS recalculado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Saneamento de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestAplicarEdicao_EntradaInvalidaViraZero(t *testing.T) {
	item := fiscal.Recalcular(buildItem())

	editado := fiscal.AplicarEdicao(item, "quantidade", "abc")
	assert.True(t, editado.Quantidade.IsZero(), "entrada não numérica vira 0")
	assert.True(t, editado.ValorTotal.IsZero(), "bruto acompanha")

	editado = fiscal.AplicarEdicao(item, "valorUnitario", "-10")
	assert.True(t, editado.ValorUnitario.IsZero(), "negativo vira 0")
}

func TestRecalcular_NuncaNegativo(t *testing.T) {
	item := buildItem()
	// Desconto fixo maior que o bruto: base e ICMS no piso zero.
	item.Tributacao.Desconto.Valor = dec("9999")
	item = fiscal.Recalcular(item)

	assert.True(t, item.Tributacao.ICMS.BaseCalculo.IsZero(), "base com desconto no piso")
	assert.True(t, item.Tributacao.ICMS.Valor.IsZero(), "ICMS no piso")
	assert.False(t, item.Tributacao.ValorTotalItem.IsNegative(), "total nunca negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Substituição Tributária e FCP
// ──────────────────────────────────────────────────────────────────────────────

func TestRecalcular_ICMSST(t *testing.T) {
	item := entity.ItemNota{
		Descricao:     "Produto ST",
		Quantidade:    dec("10"),
		ValorUnitario: dec("10"),
		Tributacao:    fiscal.DefaultTributacao(),
	}
	item.Tributacao.ICMS.Aliquota = dec("18")
	item.Tributacao.ICMS.MvaST = dec("40")
	item.Tributacao.ICMS.AliquotaST = dec("18")
	item = fiscal.Recalcular(item)

	// Base ST = 100 * 1,40 = 140; ST = 140*18% - 100*18% = 25,20 - 18,00
	assertDecEqual(t, "140.00", item.Tributacao.ICMS.BaseCalculoST, "base ST com MVA")
	assertDecEqual(t, "7.20", item.Tributacao.ICMS.ValorST, "valor ST")
}

func TestRecalcular_ICMSSTPisoZero(t *testing.T) {
	// ICMS interno (18%) maior que o da ST (10%): o valor ST tem piso em 0.
	item := entity.ItemNota{
		Quantidade:    dec("10"),
		ValorUnitario: dec("10"),
		Tributacao:    fiscal.DefaultTributacao(),
	}
	item.Tributacao.ICMS.Aliquota = dec("18")
	item.Tributacao.ICMS.MvaST = dec("40")
	item.Tributacao.ICMS.AliquotaST = dec("10")
	item = fiscal.Recalcular(item)

	// 140*10% = 14,00 < 18,00
	assert.True(t, item.Tributacao.ICMS.ValorST.IsZero(), "ST nunca negativo")
}

func TestRecalcular_FCPSTAliquotaFixa(t *testing.T) {
	item := buildItem()
	item.Tributacao.ICMS.BaseFCPST = dec("150")
	item = fiscal.Recalcular(item)

	// 2% fixos sobre a base informada.
	assertDecEqual(t, "3.00", item.Tributacao.ICMS.ValorFCPST, "FCP-ST")
}

func TestRecalcular_ICMSDesabilitadoNaoCalcula(t *testing.T) {
	item := buildItem()
	item.Tributacao.ICMS.Enabled = false
	item = fiscal.Recalcular(item)

	assert.True(t, item.Tributacao.ICMS.Valor.IsZero(), "ICMS desabilitado não gera valor")
	// IPI continua sendo calculado normalmente.
	assertDecEqual(t, "25.00", item.Tributacao.IPI.Valor, "IPI independe do ICMS")
}

// ──────────────────────────────────────────────────────────────────────────────
// Desconto
// ──────────────────────────────────────────────────────────────────────────────

func TestAplicarDesconto_PercentualPrimeiro(t *testing.T) {
	// 200 com 10% e mais 30 fixos: 200*0,90 = 180; 180-30 = 150.
	d := entity.Desconto{Valor: dec("30"), Percentual: dec("10")}
	require.True(t, dec("150.00").Equal(fiscal.AplicarDesconto(dec("200"), d)))
}

func TestAplicarDesconto_PisoZero(t *testing.T) {
	d := entity.Desconto{Valor: dec("500")}
	assert.True(t, fiscal.AplicarDesconto(dec("100"), d).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Defaults de linha nova
// ──────────────────────────────────────────────────────────────────────────────

func TestNovoItemDeProduto(t *testing.T) {
	p := entity.Product{
		ID:           "prod-1",
		Name:         "Caneta esferográfica",
		Price:        dec("2.50"),
		NCM:          "96081000",
		CFOP:         "5102",
		CSTICMS:      "00",
		AliquotaICMS: dec("18"),
	}
	item := fiscal.NovoItemDeProduto(p, dec("100"))

	assert.Equal(t, "96081000", item.Tributacao.Fiscal.NCM)
	assert.True(t, item.Tributacao.ICMS.Enabled)
	assertDecEqual(t, "250.00", item.ValorTotal, "bruto pré-calculado")
	assertDecEqual(t, "45.00", item.Tributacao.ICMS.Valor, "ICMS pré-calculado")
}
