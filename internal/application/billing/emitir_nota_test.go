package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaolivre/fiscal-api/internal/application/billing"
	"github.com/gestaolivre/fiscal-api/internal/application/dto"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos ports de persistência
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByCompanyAndDocumento(companyID, documento string) (*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) Delete(id string) error          { delete(r.customers, id); return nil }

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *fakeCompanyRepo) GetByCNPJ(cnpj string) (*entity.Company, error) { return nil, nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

type fakeNotaRepo struct {
	notas   map[string]*entity.NotaFiscal
	numeros map[string]int64 // companyID+serie → último número
}

func (r *fakeNotaRepo) Create(n *entity.NotaFiscal) error { r.notas[n.ID] = n; return nil }
func (r *fakeNotaRepo) GetByID(id string) (*entity.NotaFiscal, error) {
	return r.notas[id], nil
}
func (r *fakeNotaRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.NotaFiscal, error) {
	return nil, nil
}
func (r *fakeNotaRepo) ListByCompanyAll(companyID string) ([]*entity.NotaFiscal, error) {
	return nil, nil
}
func (r *fakeNotaRepo) UpdateStatus(id, status string) error {
	if n, ok := r.notas[id]; ok {
		n.Status = status
	}
	return nil
}
func (r *fakeNotaRepo) NextNumero(companyID, serie string) (int64, error) {
	key := companyID + "/" + serie
	r.numeros[key]++
	return r.numeros[key], nil
}

// fakeTxRunner executa a função diretamente, sem transação.
type fakeTxRunner struct {
	notaRepo    repository.NotaFiscalRepository
	productRepo repository.ProductRepository
}

func (t *fakeTxRunner) RunNota(ctx context.Context, fn func(
	notaRepo repository.NotaFiscalRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(t.notaRepo, t.productRepo)
}

// buildEmitirUC monta o caso de uso com fakes e uma empresa/cliente válidos.
func buildEmitirUC(t *testing.T, seriePadrao string) (*billing.EmitirNotaUseCase, string, string) {
	t.Helper()
	const companyID = "company-1"
	const customerID = "customer-1"

	companyRepo := &fakeCompanyRepo{companies: map[string]*entity.Company{
		companyID: {
			ID:       companyID,
			Name:     "Papelaria Central LTDA",
			CNPJ:     "11.222.333/0001-81",
			IE:       "123456789",
			Endereco: "Rua das Flores, 100 - São Paulo/SP",
			UF:       "SP",
		},
	}}
	customerRepo := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		customerID: {
			ID:        customerID,
			CompanyID: companyID,
			Name:      "João da Silva",
			Documento: "111.444.777-35",
			Endereco:  "Av. Paulista, 1000",
			CreatedAt: time.Now(),
		},
	}}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{}}
	notaRepo := &fakeNotaRepo{notas: map[string]*entity.NotaFiscal{}, numeros: map[string]int64{}}
	txRunner := &fakeTxRunner{notaRepo: notaRepo, productRepo: productRepo}

	uc := billing.NewEmitirNotaUseCase(
		txRunner, notaRepo, customerRepo, companyRepo, productRepo, nil, seriePadrao,
	)
	return uc, companyID, customerID
}

// ──────────────────────────────────────────────────────────────────────────────
// Série padrão configurada
// ──────────────────────────────────────────────────────────────────────────────

// A série configurada (NFE_SERIE_PADRAO) deve valer quando a requisição não
// informa série — inclusive no trecho de série da chave de acesso.
func TestEmitir_UsaSeriePadraoConfigurada(t *testing.T) {
	uc, companyID, customerID := buildEmitirUC(t, "3")

	nota, validacao, err := uc.Emitir(context.Background(), companyID, dto.EmitirNotaRequest{
		CustomerID: customerID,
		Itens:      []dto.ItemNotaDTO{itemDTO()},
	})
	require.NoError(t, err)
	require.Nil(t, validacao)
	require.NotNil(t, nota)

	assert.Equal(t, "3", nota.Serie)
	assert.Equal(t, "1", nota.Numero, "primeira nota da série")
	require.Len(t, nota.ChaveAcesso, 44)
	assert.Equal(t, "003", nota.ChaveAcesso[22:25], "série na chave de acesso")
}

func TestEmitir_SerieDaRequisicaoTemPrecedencia(t *testing.T) {
	uc, companyID, customerID := buildEmitirUC(t, "3")

	nota, _, err := uc.Emitir(context.Background(), companyID, dto.EmitirNotaRequest{
		CustomerID: customerID,
		Serie:      "7",
		Itens:      []dto.ItemNotaDTO{itemDTO()},
	})
	require.NoError(t, err)
	require.NotNil(t, nota)

	assert.Equal(t, "7", nota.Serie)
	assert.Equal(t, "007", nota.ChaveAcesso[22:25])
}

func TestEmitir_SemConfiguracaoCaiNaSerieUm(t *testing.T) {
	uc, companyID, customerID := buildEmitirUC(t, "")

	nota, _, err := uc.Emitir(context.Background(), companyID, dto.EmitirNotaRequest{
		CustomerID: customerID,
		Itens:      []dto.ItemNotaDTO{itemDTO()},
	})
	require.NoError(t, err)
	require.NotNil(t, nota)

	assert.Equal(t, billing.SeriePadrao, nota.Serie)
}

func TestEmitir_NumeracaoIndependentePorSerie(t *testing.T) {
	uc, companyID, customerID := buildEmitirUC(t, "3")

	primeira, _, err := uc.Emitir(context.Background(), companyID, dto.EmitirNotaRequest{
		CustomerID: customerID,
		Itens:      []dto.ItemNotaDTO{itemDTO()},
	})
	require.NoError(t, err)

	segunda, _, err := uc.Emitir(context.Background(), companyID, dto.EmitirNotaRequest{
		CustomerID: customerID,
		Itens:      []dto.ItemNotaDTO{itemDTO()},
	})
	require.NoError(t, err)

	outra, _, err := uc.Emitir(context.Background(), companyID, dto.EmitirNotaRequest{
		CustomerID: customerID,
		Serie:      "7",
		Itens:      []dto.ItemNotaDTO{itemDTO()},
	})
	require.NoError(t, err)

	assert.Equal(t, "1", primeira.Numero)
	assert.Equal(t, "2", segunda.Numero)
	assert.Equal(t, "1", outra.Numero, "série diferente numera do zero")
}
