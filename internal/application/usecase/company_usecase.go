package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestaolivre/fiscal-api/internal/application/dto"
	"github.com/gestaolivre/fiscal-api/internal/domain"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/repository"
	pkgfiscal "github.com/gestaolivre/fiscal-api/pkg/fiscal"
)

// CompanyUseCase cadastro da empresa emitente.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create cadastra a empresa. O CNPJ é validado pelos dígitos verificadores e
// a UF precisa existir na tabela de códigos IBGE (entra no prefixo da chave
// de acesso de toda nota emitida).
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: razão social é obrigatória", domain.ErrInvalidInput)
	}
	if err := pkgfiscal.ValidateCNPJ(in.CNPJ); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	uf := strings.ToUpper(strings.TrimSpace(in.UF))
	if pkgfiscal.CodigoUF(uf) == "" {
		return nil, fmt.Errorf("%w: UF desconhecida: %q", domain.ErrInvalidInput, in.UF)
	}

	existing, err := uc.repo.GetByCNPJ(in.CNPJ)
	if err != nil {
		return nil, fmt.Errorf("company: checar cnpj: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		CNPJ:      in.CNPJ,
		IE:        strings.TrimSpace(in.IE),
		Endereco:  strings.TrimSpace(in.Endereco),
		UF:        uf,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, fmt.Errorf("company: criar: %w", err)
	}
	return companyToResponse(company), nil
}

// GetByID obtém a empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return companyToResponse(company), nil
}

func companyToResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CNPJ:      c.CNPJ,
		IE:        c.IE,
		Endereco:  c.Endereco,
		UF:        c.UF,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
