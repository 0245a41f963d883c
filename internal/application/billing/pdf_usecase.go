package billing

import (
	"context"
	"fmt"

	"github.com/gestaolivre/fiscal-api/internal/domain"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/repository"
)

// NotaPDFUseCase gera a representação gráfica (DANFE) de uma nota emitida.
// Notas em rascunho ainda não têm chave de acesso e por isso não geram PDF.
type NotaPDFUseCase struct {
	notaRepo    repository.NotaFiscalRepository
	companyRepo repository.CompanyRepository
	generator   NotaPDFGenerator
}

// NewNotaPDFUseCase constrói o caso de uso.
func NewNotaPDFUseCase(
	notaRepo repository.NotaFiscalRepository,
	companyRepo repository.CompanyRepository,
	generator NotaPDFGenerator,
) *NotaPDFUseCase {
	return &NotaPDFUseCase{
		notaRepo:    notaRepo,
		companyRepo: companyRepo,
		generator:   generator,
	}
}

// DownloadNotaPDF carrega a nota, confere empresa e status e gera o DANFE.
//
// Retorna:
//   - (pdfBytes, filename, nil) em caso de sucesso.
//   - domain.ErrNotFound        se a nota não existe.
//   - domain.ErrForbidden       se a nota não pertence à empresa do token.
//   - domain.ErrInvalidInput    se a nota ainda não tem chave de acesso.
func (uc *NotaPDFUseCase) DownloadNotaPDF(
	ctx context.Context,
	companyID, notaID string,
) (pdfBytes []byte, filename string, err error) {
	nota, err := uc.notaRepo.GetByID(notaID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obter nota: %w", err)
	}
	if nota == nil {
		return nil, "", domain.ErrNotFound
	}
	if nota.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	if nota.Status == entity.NotaStatusRascunho || nota.ChaveAcesso == "" {
		return nil, "", fmt.Errorf("%w: a nota está em estado %s e ainda não tem chave de acesso",
			domain.ErrInvalidInput, nota.Status)
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("pdf: obter empresa: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateNotaPDF(ctx, company, nota)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: geração falhou: %w", err)
	}

	filename = fmt.Sprintf("nfe_%s_%s.pdf", nota.Serie, nota.Numero)
	return pdfBytes, filename, nil
}
