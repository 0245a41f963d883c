package fiscal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaolivre/fiscal-api/pkg/fiscal"
)

func TestBuildChaveAcesso(t *testing.T) {
	emissao := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	chave, err := fiscal.BuildChaveAcesso("35", emissao, "11.222.333/0001-81", "1", "21", "12345678")
	require.NoError(t, err)

	require.Len(t, chave, 44)
	// cUF + AAMM + CNPJ + modelo 55 + série e número com zeros à esquerda.
	assert.Equal(t, "35"+"2401"+"11222333000181"+"55"+"001"+"000000021"+"1"+"12345678", chave[:43])
	// A chave gerada deve passar na própria validação de DV.
	assert.NoError(t, fiscal.ValidateChaveAcesso(chave))
}

func TestBuildChaveAcesso_CNPJInvalido(t *testing.T) {
	_, err := fiscal.BuildChaveAcesso("35", time.Now(), "123", "1", "1", "00000001")
	assert.ErrorIs(t, err, fiscal.ErrCNPJTamanho)
}

func TestValidateChaveAcesso(t *testing.T) {
	emissao := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	chave, err := fiscal.BuildChaveAcesso("35", emissao, "11222333000181", "1", "999", "00112233")
	require.NoError(t, err)
	require.NoError(t, fiscal.ValidateChaveAcesso(chave))

	// Mutação de um dígito do corpo deve quebrar o DV (exceto colisões do
	// módulo 11, que não ocorrem para esta chave).
	mutada := "9" + chave[1:]
	assert.ErrorIs(t, fiscal.ValidateChaveAcesso(mutada), fiscal.ErrChaveAcesso)

	assert.ErrorIs(t, fiscal.ValidateChaveAcesso("123"), fiscal.ErrChaveAcesso)
	assert.ErrorIs(t, fiscal.ValidateChaveAcesso(chave[:43]+"X"), fiscal.ErrChaveAcesso)
}
