package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaolivre/fiscal-api/internal/application/billing"
	"github.com/gestaolivre/fiscal-api/internal/application/dto"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func itemDTO() dto.ItemNotaDTO {
	item := dto.ItemNotaDTO{
		Descricao:     "Caneta esferográfica",
		Quantidade:    dec("10"),
		ValorUnitario: dec("2.50"),
	}
	item.Tributacao.ICMS.Enabled = true
	item.Tributacao.ICMS.Aliquota = dec("18")
	item.Tributacao.Fiscal = dto.InformacoesFiscaisDTO{
		CFOP: "5102", NCM: "96081000", CSTICMS: "00",
		CSTPISCOFINS: "01", CSTIPI: "99", Origem: "0",
	}
	return item
}

func TestRecalcularItem_EdicaoDeQuantidade(t *testing.T) {
	uc := billing.NewNotaFormUseCase()

	out := uc.RecalcularItem(dto.RecalcularItemRequest{
		Item:  itemDTO(),
		Campo: "quantidade",
		Valor: "4",
	})

	assert.True(t, dec("4").Equal(out.Quantidade), "quantidade atualizada")
	assert.True(t, dec("10.00").Equal(out.ValorTotal), "bruto recalculado")
	assert.True(t, dec("1.80").Equal(out.Tributacao.ICMS.Valor), "ICMS recalculado")
}

func TestRecalcularItem_EntradaInvalidaNaoTravaOFormulario(t *testing.T) {
	uc := billing.NewNotaFormUseCase()

	out := uc.RecalcularItem(dto.RecalcularItemRequest{
		Item:  itemDTO(),
		Campo: "valorUnitario",
		Valor: "abc",
	})

	assert.True(t, out.ValorUnitario.IsZero(), "valor não numérico vira zero")
	assert.True(t, out.ValorTotal.IsZero(), "bruto acompanha")
}

func TestValidarNota_ColetaErrosDeTodosOsItens(t *testing.T) {
	uc := billing.NewNotaFormUseCase()

	semDescricao := itemDTO()
	semDescricao.Descricao = ""
	cfopRuim := itemDTO()
	cfopRuim.Tributacao.Fiscal.CFOP = "9999"

	out := uc.ValidarNota(dto.ValidarNotaRequest{
		CustomerNome:      "Cliente Exemplo",
		CustomerDocumento: "11144477735",
		Itens:             []dto.ItemNotaDTO{semDescricao, cfopRuim},
	})

	require.False(t, out.Valido)
	require.Len(t, out.Itens, 2)
	assert.Contains(t, out.Itens[0].Erros, "Descrição do produto é obrigatória")
	assert.Contains(t, out.Itens[1].Erros, "CFOP inválido")
}

func TestValidarNota_NotaValida(t *testing.T) {
	uc := billing.NewNotaFormUseCase()

	out := uc.ValidarNota(dto.ValidarNotaRequest{
		CustomerNome:      "Cliente Exemplo",
		CustomerDocumento: "11144477735",
		Itens:             []dto.ItemNotaDTO{itemDTO()},
	})

	assert.True(t, out.Valido, "nota sem problemas deve validar")
	assert.Empty(t, out.Erros)
}
