package billing

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/gestaolivre/fiscal-api/internal/application/dto"
	"github.com/gestaolivre/fiscal-api/internal/domain"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/fiscal"
	"github.com/gestaolivre/fiscal-api/internal/domain/repository"
	pkgfiscal "github.com/gestaolivre/fiscal-api/pkg/fiscal"
)

// SeriePadrao usada quando nem a requisição nem a configuração informam a série.
const SeriePadrao = "1"

// EmitirNotaUseCase emite a nota fiscal e baixa o estoque numa única
// transação. A emissão é local: valida, numera, calcula a chave de acesso e
// grava a nota como autorizada. Assinatura e transmissão à SEFAZ não passam
// por aqui.
type EmitirNotaUseCase struct {
	txRunner     NotaTxRunner
	notaRepo     repository.NotaFiscalRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	productRepo  repository.ProductRepository
	xmlBuilder   NotaXMLBuilder
	seriePadrao  string
}

// NewEmitirNotaUseCase constrói o caso de uso. seriePadrao vem da
// configuração (NFE_SERIE_PADRAO); vazio cai em SeriePadrao.
func NewEmitirNotaUseCase(
	txRunner NotaTxRunner,
	notaRepo repository.NotaFiscalRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	xmlBuilder NotaXMLBuilder,
	seriePadrao string,
) *EmitirNotaUseCase {
	if seriePadrao == "" {
		seriePadrao = SeriePadrao
	}
	return &EmitirNotaUseCase{
		txRunner:     txRunner,
		notaRepo:     notaRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		productRepo:  productRepo,
		xmlBuilder:   xmlBuilder,
		seriePadrao:  seriePadrao,
	}
}

// Emitir valida, numera e grava a nota. Quando a validação fiscal reprova, o
// resultado volta preenchido junto de ErrNotaNaoEmitivel para que o handler
// responda 422 com a lista de erros.
func (uc *EmitirNotaUseCase) Emitir(ctx context.Context, companyID string, in dto.EmitirNotaRequest) (*dto.NotaResponse, *dto.ValidacaoNotaResponse, error) {
	if in.CustomerID == "" || len(in.Itens) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}

	// Cliente: precisa existir e pertencer à empresa
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}

	// Emitente (CNPJ e UF entram na chave de acesso)
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, nil, domain.ErrNotFound
	}

	// Preparar linhas: completar a partir do cadastro do produto quando a
	// linha referencia um, e recalcular toda a carga tributária no servidor.
	// Valores derivados vindos do cliente são descartados.
	itens := make([]entity.ItemNota, len(in.Itens))
	for i, itemIn := range in.Itens {
		item := dto.ItemToEntity(itemIn)
		if item.ProductID != "" {
			product, err := uc.productRepo.GetByID(item.ProductID)
			if err != nil || product == nil {
				return nil, nil, domain.ErrNotFound
			}
			if product.CompanyID != companyID {
				return nil, nil, domain.ErrForbidden
			}
			if item.Descricao == "" {
				item.Descricao = product.Name
			}
			if item.ValorUnitario.IsZero() {
				item.ValorUnitario = product.Price
			}
		}
		item.ID = uuid.New().String()
		itens[i] = fiscal.Recalcular(item)
	}

	emissao := time.Now()
	serie := in.Serie
	if serie == "" {
		serie = uc.seriePadrao
	}

	nota := &entity.NotaFiscal{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		Serie:             serie,
		CustomerID:        customer.ID,
		CustomerNome:      customer.Name,
		CustomerDocumento: customer.Documento,
		CustomerEndereco:  customer.Endereco,
		Itens:             itens,
		Status:            entity.NotaStatusAutorizada,
		Emissao:           emissao,
		CreatedAt:         emissao,
		UpdatedAt:         emissao,
	}
	for i := range nota.Itens {
		nota.Itens[i].NotaID = nota.ID
	}

	// Validação fiscal completa antes de tocar o banco
	if resultado := fiscal.ValidarNota(*nota); !resultado.Valido {
		return nil, &resultado, domain.ErrNotaNaoEmitivel
	}
	nota.Totais = fiscal.CalcularTotais(nota.Itens)

	err = uc.txRunner.RunNota(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		productRepo repository.ProductRepository,
	) error {
		// Número sequencial da série (bloqueio na tx evita duplicidade)
		numero, err := notaRepo.NextNumero(companyID, serie)
		if err != nil {
			return err
		}
		nota.Numero = strconv.FormatInt(numero, 10)

		chave, err := pkgfiscal.BuildChaveAcesso(
			pkgfiscal.CodigoUF(company.UF),
			emissao,
			company.CNPJ,
			serie,
			nota.Numero,
			codigoNumerico(nota.ID),
		)
		if err != nil {
			return err
		}
		nota.ChaveAcesso = chave

		// Baixa de estoque por linha vinculada a produto
		for _, item := range nota.Itens {
			if item.ProductID == "" {
				continue
			}
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil || product == nil {
				return domain.ErrNotFound
			}
			if product.Stock.LessThan(item.Quantidade) {
				return domain.ErrInsufficientStock
			}
			product.Stock = product.Stock.Sub(item.Quantidade)
			if err := productRepo.Update(product); err != nil {
				return err
			}
		}
		return notaRepo.Create(nota)
	})
	if err != nil {
		return nil, nil, err
	}
	return dto.NotaFromEntity(nota), nil, nil
}

// GetNota busca a nota por ID, restrita à empresa do usuário.
func (uc *EmitirNotaUseCase) GetNota(companyID, id string) (*dto.NotaResponse, error) {
	nota, err := uc.findNota(companyID, id)
	if err != nil {
		return nil, err
	}
	return dto.NotaFromEntity(nota), nil
}

// ListNotas lista as notas da empresa, paginado.
func (uc *EmitirNotaUseCase) ListNotas(companyID string, page dto.PageRequest) ([]*dto.NotaResponse, error) {
	notas, err := uc.notaRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotaResponse, len(notas))
	for i, nota := range notas {
		out[i] = dto.NotaFromEntity(nota)
	}
	return out, nil
}

// Cancelar marca a nota como cancelada e devolve o estoque baixado na
// emissão, na mesma transação.
func (uc *EmitirNotaUseCase) Cancelar(ctx context.Context, companyID, id string) (*dto.NotaResponse, error) {
	nota, err := uc.findNota(companyID, id)
	if err != nil {
		return nil, err
	}
	if nota.Status == entity.NotaStatusCancelada {
		return nil, domain.ErrNotaCancelada
	}

	err = uc.txRunner.RunNota(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, item := range nota.Itens {
			if item.ProductID == "" {
				continue
			}
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil || product == nil {
				continue // produto removido após a emissão; só muda o status
			}
			product.Stock = product.Stock.Add(item.Quantidade)
			if err := productRepo.Update(product); err != nil {
				return err
			}
		}
		return notaRepo.UpdateStatus(nota.ID, entity.NotaStatusCancelada)
	})
	if err != nil {
		return nil, err
	}
	nota.Status = entity.NotaStatusCancelada
	return dto.NotaFromEntity(nota), nil
}

// XML monta o XML não assinado da nota.
func (uc *EmitirNotaUseCase) XML(companyID, id string) (string, error) {
	nota, err := uc.findNota(companyID, id)
	if err != nil {
		return "", err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return "", domain.ErrNotFound
	}
	return uc.xmlBuilder.BuildNotaXML(company, nota)
}

func (uc *EmitirNotaUseCase) findNota(companyID, id string) (*entity.NotaFiscal, error) {
	nota, err := uc.notaRepo.GetByID(id)
	if err != nil || nota == nil {
		return nil, domain.ErrNotFound
	}
	if nota.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return nota, nil
}

// codigoNumerico deriva o cNF (8 dígitos) do ID da nota, para que a chave
// seja reproduzível a partir do registro.
func codigoNumerico(notaID string) string {
	var n uint32
	for _, c := range notaID {
		n = n*31 + uint32(c)
	}
	n %= 100000000
	digits := strconv.FormatUint(uint64(n), 10)
	for len(digits) < 8 {
		digits = "0" + digits
	}
	return digits
}
