package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaolivre/fiscal-api/pkg/fiscal"
)

// ──────────────────────────────────────────────────────────────────────────────
// CPF
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateCPF_Valido(t *testing.T) {
	require.NoError(t, fiscal.ValidateCPF("11144477735"))
	// A pontuação deve ser ignorada.
	require.NoError(t, fiscal.ValidateCPF("111.444.777-35"))
}

func TestValidateCPF_SequenciaRepetida(t *testing.T) {
	// "111.111.111-11" passa no cálculo de DV mas é uma sequência conhecida
	// inválida na Receita Federal.
	err := fiscal.ValidateCPF("11111111111")
	assert.ErrorIs(t, err, fiscal.ErrCPFInvalido)
}

func TestValidateCPF_Tamanho(t *testing.T) {
	assert.ErrorIs(t, fiscal.ValidateCPF("123"), fiscal.ErrCPFTamanho)
	assert.ErrorIs(t, fiscal.ValidateCPF(""), fiscal.ErrCPFTamanho)
	assert.ErrorIs(t, fiscal.ValidateCPF("111444777350"), fiscal.ErrCPFTamanho)
}

func TestValidateCPF_DigitoVerificadorErrado(t *testing.T) {
	// Mesmo CPF válido com o último dígito alterado.
	assert.ErrorIs(t, fiscal.ValidateCPF("11144477736"), fiscal.ErrCPFInvalido)
	// Primeiro DV alterado.
	assert.ErrorIs(t, fiscal.ValidateCPF("11144477745"), fiscal.ErrCPFInvalido)
}

// ──────────────────────────────────────────────────────────────────────────────
// CNPJ
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateCNPJ_Valido(t *testing.T) {
	// CNPJ canônico de teste.
	require.NoError(t, fiscal.ValidateCNPJ("11222333000181"))
	require.NoError(t, fiscal.ValidateCNPJ("11.222.333/0001-81"))
}

func TestValidateCNPJ_MutacaoDosDigitos(t *testing.T) {
	// Qualquer mutação de um dos dígitos verificadores deve invalidar.
	for _, doc := range []string{"11222333000171", "11222333000182", "11222333000191"} {
		assert.ErrorIs(t, fiscal.ValidateCNPJ(doc), fiscal.ErrCNPJInvalido, "doc %s", doc)
	}
}

func TestValidateCNPJ_SequenciaRepetida(t *testing.T) {
	assert.ErrorIs(t, fiscal.ValidateCNPJ("00000000000000"), fiscal.ErrCNPJInvalido)
}

func TestValidateCNPJ_Tamanho(t *testing.T) {
	assert.ErrorIs(t, fiscal.ValidateCNPJ("112223330001"), fiscal.ErrCNPJTamanho)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documento (CPF ou CNPJ pelo tamanho)
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateDocumento(t *testing.T) {
	assert.NoError(t, fiscal.ValidateDocumento("111.444.777-35"))
	assert.NoError(t, fiscal.ValidateDocumento("11.222.333/0001-81"))
	assert.ErrorIs(t, fiscal.ValidateDocumento("12345"), fiscal.ErrCPFTamanho)
}
