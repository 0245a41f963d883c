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
// CFOP / NCM / CST
// ──────────────────────────────────────────────────────────────────────────────

func TestValidarCFOP(t *testing.T) {
	assert.NoError(t, fiscal.ValidarCFOP("5102"), "venda interna")
	assert.NoError(t, fiscal.ValidarCFOP("6101"), "venda interestadual")
	assert.NoError(t, fiscal.ValidarCFOP("1101"), "compra interna")

	// 4 dígitos não bastam: a lista é autoritativa.
	assert.EqualError(t, fiscal.ValidarCFOP("9999"), "CFOP inválido")
	assert.EqualError(t, fiscal.ValidarCFOP("510"), "CFOP deve ter 4 dígitos")
	assert.EqualError(t, fiscal.ValidarCFOP(""), "CFOP deve ter 4 dígitos")
}

func TestValidarNCM(t *testing.T) {
	assert.NoError(t, fiscal.ValidarNCM("96081000"))
	// Pontos e espaços são ignorados.
	assert.NoError(t, fiscal.ValidarNCM("9608.10.00"))

	assert.EqualError(t, fiscal.ValidarNCM(""), "NCM é obrigatório")
	assert.EqualError(t, fiscal.ValidarNCM("1234"), "NCM deve ter 8 dígitos numéricos")
	assert.EqualError(t, fiscal.ValidarNCM("9608100A"), "NCM deve ter 8 dígitos numéricos")
}

func TestValidarCST(t *testing.T) {
	assert.NoError(t, fiscal.ValidarCST("00", fiscal.TipoCSTICMS))
	assert.NoError(t, fiscal.ValidarCST("99", fiscal.TipoCSTIPI))
	assert.NoError(t, fiscal.ValidarCST("01", fiscal.TipoCSTPIS))
	assert.NoError(t, fiscal.ValidarCST("01", fiscal.TipoCSTCOFINS))
	assert.NoError(t, fiscal.ValidarCST("102", fiscal.TipoCSOSN))

	assert.EqualError(t, fiscal.ValidarCST("", fiscal.TipoCSTICMS), "ICMS é obrigatório")
	assert.EqualError(t, fiscal.ValidarCST("77", fiscal.TipoCSTICMS), "ICMS 77 é inválido")
	// CSOSN não vale como CST de ICMS do regime normal.
	assert.EqualError(t, fiscal.ValidarCST("102", fiscal.TipoCSTICMS), "ICMS 102 é inválido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Valores e alíquotas
// ──────────────────────────────────────────────────────────────────────────────

func TestValidarValorMonetario(t *testing.T) {
	assert.NoError(t, fiscal.ValidarValorMonetario(dec("10.50"), "Valor", decimal.Zero))

	err := fiscal.ValidarValorMonetario(dec("-1"), "Valor", decimal.Zero)
	assert.EqualError(t, err, "Valor deve ser maior ou igual a 0")

	err = fiscal.ValidarValorMonetario(dec("1000000000"), "Valor", decimal.Zero)
	assert.EqualError(t, err, "Valor muito alto")
}

func TestValidarAliquota(t *testing.T) {
	assert.NoError(t, fiscal.ValidarAliquota(dec("18"), "Alíquota ICMS", dec("100")))

	err := fiscal.ValidarAliquota(dec("-1"), "Alíquota ICMS", dec("100"))
	assert.EqualError(t, err, "Alíquota ICMS não pode ser negativa")

	err = fiscal.ValidarAliquota(dec("101"), "Alíquota ICMS", dec("100"))
	assert.EqualError(t, err, "Alíquota ICMS não pode ser maior que 100%")
}

// ──────────────────────────────────────────────────────────────────────────────
// Item agregado
// ──────────────────────────────────────────────────────────────────────────────

func validItem() entity.ItemNota {
	item := entity.ItemNota{
		Descricao:     "Produto válido",
		Quantidade:    dec("1"),
		ValorUnitario: dec("10"),
		Tributacao:    fiscal.DefaultTributacao(),
	}
	item.Tributacao.Fiscal.NCM = "96081000"
	return item
}

func TestValidarItem_Valido(t *testing.T) {
	res := fiscal.ValidarItem(validItem())
	assert.True(t, res.Valido)
	assert.Empty(t, res.Erros)
}

func TestValidarItem_ColetaTodosOsErros(t *testing.T) {
	// Descrição vazia E quantidade zero: os dois erros devem aparecer juntos,
	// sem curto-circuito.
	item := validItem()
	item.Descricao = "  "
	item.Quantidade = decimal.Zero
	res := fiscal.ValidarItem(item)

	require.False(t, res.Valido)
	assert.Contains(t, res.Erros, "Descrição do produto é obrigatória")
	assert.Contains(t, res.Erros, "Quantidade deve ser maior ou igual a 0.001")
}

func TestValidarItem_CSTICMSSoComICMSHabilitado(t *testing.T) {
	item := validItem()
	item.Tributacao.Fiscal.CSTICMS = "77" // inválido

	res := fiscal.ValidarItem(item)
	assert.False(t, res.Valido, "com ICMS habilitado o CST é checado")

	item.Tributacao.ICMS.Enabled = false
	res = fiscal.ValidarItem(item)
	assert.True(t, res.Valido, "com ICMS desabilitado o CST não é exigido")
}

func TestValidarItem_AliquotaICMSForaDoIntervalo(t *testing.T) {
	item := validItem()
	item.Tributacao.ICMS.Aliquota = dec("150")
	res := fiscal.ValidarItem(item)

	assert.False(t, res.Valido)
	assert.Contains(t, res.Erros, "Alíquota ICMS não pode ser maior que 100%")
}

// ──────────────────────────────────────────────────────────────────────────────
// Nota agregada
// ──────────────────────────────────────────────────────────────────────────────

func TestValidarNota_Valida(t *testing.T) {
	nota := entity.NotaFiscal{
		CustomerNome:      "Cliente Exemplo LTDA",
		CustomerDocumento: "11.222.333/0001-81",
		Itens:             []entity.ItemNota{validItem()},
	}
	res := fiscal.ValidarNota(nota)
	assert.True(t, res.Valido)
	assert.Empty(t, res.Erros)
	require.Len(t, res.Itens, 1)
	assert.True(t, res.Itens[0].Valido)
}

func TestValidarNota_DocumentoInvalidoBloqueia(t *testing.T) {
	nota := entity.NotaFiscal{
		CustomerNome:      "Cliente",
		CustomerDocumento: "11111111111", // sequência repetida
		Itens:             []entity.ItemNota{validItem()},
	}
	res := fiscal.ValidarNota(nota)
	assert.False(t, res.Valido)
	assert.Contains(t, res.Erros, "CPF inválido")
}

func TestValidarNota_ItemInvalidoBloqueia(t *testing.T) {
	item := validItem()
	item.Tributacao.Fiscal.CFOP = "9999"
	nota := entity.NotaFiscal{
		CustomerNome:      "Cliente",
		CustomerDocumento: "111.444.777-35",
		Itens:             []entity.ItemNota{validItem(), item},
	}
	res := fiscal.ValidarNota(nota)

	assert.False(t, res.Valido, "um item inválido bloqueia a nota")
	require.Len(t, res.Itens, 2)
	assert.True(t, res.Itens[0].Valido)
	assert.False(t, res.Itens[1].Valido)
}

func TestValidarNota_SemItens(t *testing.T) {
	nota := entity.NotaFiscal{
		CustomerNome:      "Cliente",
		CustomerDocumento: "111.444.777-35",
	}
	res := fiscal.ValidarNota(nota)
	assert.False(t, res.Valido)
	assert.Contains(t, res.Erros, "A nota deve ter ao menos um item")
}
