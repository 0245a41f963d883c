package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/gestaolivre/fiscal-api/internal/application/dto"
	"github.com/gestaolivre/fiscal-api/internal/domain"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/repository"
	pkgfiscal "github.com/gestaolivre/fiscal-api/pkg/fiscal"
)

// CustomerUseCase casos de uso para clientes (destinatários das notas).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase constrói o caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create cadastra um cliente. O documento (CPF/CNPJ) passa pela validação de
// dígitos verificadores antes de qualquer acesso ao banco.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Documento == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := pkgfiscal.ValidateDocumento(in.Documento); err != nil {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndDocumento(companyID, in.Documento)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Documento: in.Documento,
		Email:     in.Email,
		Phone:     in.Phone,
		Endereco:  in.Endereco,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return customerResponse(customer), nil
}

// Get busca um cliente da empresa.
func (uc *CustomerUseCase) Get(companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customerResponse(customer), nil
}

// List lista clientes da empresa.
func (uc *CustomerUseCase) List(companyID string, limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, customerResponse(c))
	}
	return out, nil
}

// Update atualiza os dados cadastrais; troca de documento revalida os dígitos.
func (uc *CustomerUseCase) Update(companyID, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	if in.Documento != "" && in.Documento != customer.Documento {
		if err := pkgfiscal.ValidateDocumento(in.Documento); err != nil {
			return nil, domain.ErrInvalidInput
		}
		customer.Documento = in.Documento
	}
	if in.Email != "" {
		customer.Email = in.Email
	}
	if in.Phone != "" {
		customer.Phone = in.Phone
	}
	if in.Endereco != "" {
		customer.Endereco = in.Endereco
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return customerResponse(customer), nil
}

// Delete remove o cliente da empresa.
func (uc *CustomerUseCase) Delete(companyID, id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil || customer == nil {
		return domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func customerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Documento: c.Documento,
		Email:     c.Email,
		Phone:     c.Phone,
		Endereco:  c.Endereco,
	}
}
