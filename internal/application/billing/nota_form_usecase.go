package billing

import (
	"github.com/gestaolivre/fiscal-api/internal/application/dto"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/fiscal"
)

// NotaFormUseCase atende o formulário de emissão: recálculo de linha a cada
// edição de campo e validação completa pré-submissão. Sem estado e sem I/O —
// apenas delega ao núcleo fiscal de domínio.
type NotaFormUseCase struct{}

// NewNotaFormUseCase constrói o caso de uso.
func NewNotaFormUseCase() *NotaFormUseCase {
	return &NotaFormUseCase{}
}

// RecalcularItem aplica a edição de um campo e devolve a linha recalculada.
// Nunca retorna erro: entrada malformada é saneada para zero pelo motor, para
// não travar o usuário no meio da digitação.
func (uc *NotaFormUseCase) RecalcularItem(in dto.RecalcularItemRequest) dto.ItemNotaDTO {
	item := fiscal.AplicarEdicao(dto.ItemToEntity(in.Item), in.Campo, in.Valor)
	return dto.ItemFromEntity(item)
}

// ValidarNota valida cabeçalho e itens e devolve a lista completa de
// problemas; a decisão de bloquear a submissão é do chamador.
func (uc *NotaFormUseCase) ValidarNota(in dto.ValidarNotaRequest) dto.ValidacaoNotaResponse {
	nota := entity.NotaFiscal{
		CustomerNome:      in.CustomerNome,
		CustomerDocumento: in.CustomerDocumento,
		Itens:             make([]entity.ItemNota, len(in.Itens)),
	}
	for i, item := range in.Itens {
		nota.Itens[i] = dto.ItemToEntity(item)
	}
	return fiscal.ValidarNota(nota)
}
