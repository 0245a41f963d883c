package billing

import (
	"context"

	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/repository"
)

// NotaTxRunner executa a gravação da nota e a baixa de estoque numa única
// transação.
type NotaTxRunner interface {
	RunNota(ctx context.Context, fn func(
		notaRepo repository.NotaFiscalRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// NotaXMLBuilder monta o XML (não assinado) da NF-e.
// Assinatura digital e transmissão à SEFAZ ficam fora do escopo da aplicação.
type NotaXMLBuilder interface {
	BuildNotaXML(company *entity.Company, nota *entity.NotaFiscal) (string, error)
}

// NotaPDFGenerator gera a representação gráfica (DANFE) da nota.
type NotaPDFGenerator interface {
	GenerateNotaPDF(ctx context.Context, company *entity.Company, nota *entity.NotaFiscal) ([]byte, error)
}
