package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaolivre/fiscal-api/internal/application/dto"
	"github.com/gestaolivre/fiscal-api/internal/domain"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	domfiscal "github.com/gestaolivre/fiscal-api/internal/domain/fiscal"
	"github.com/gestaolivre/fiscal-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para produtos. Stock é movimentado pela
// emissão e cancelamento de notas, nunca por aqui.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create cadastra um produto. NCM e CFOP, quando informados, passam pelos
// validadores fiscais; quando omitidos, a linha da nota usa os padrões do
// regime normal.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.NCM != "" {
		if err := domfiscal.ValidarNCM(in.NCM); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.CFOP != "" {
		if err := domfiscal.ValidarCFOP(in.CFOP); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Unit == "" {
		in.Unit = "UN"
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		SKU:            in.SKU,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Cost:           decimal.Zero,
		Stock:          decimal.Zero,
		Unit:           in.Unit,
		NCM:            in.NCM,
		CFOP:           in.CFOP,
		CSTICMS:        in.CSTICMS,
		CSTPISCOFINS:   in.CSTPISCOFINS,
		CSTIPI:         in.CSTIPI,
		AliquotaICMS:   in.AliquotaICMS,
		AliquotaIPI:    in.AliquotaIPI,
		AliquotaPIS:    in.AliquotaPIS,
		AliquotaCOFINS: in.AliquotaCOFINS,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtém um produto da empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.findProduct(companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update atualiza o cadastro. Stock não é editável por aqui.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.findProduct(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.NCM != nil {
		if err := domfiscal.ValidarNCM(*in.NCM); err != nil {
			return nil, domain.ErrInvalidInput
		}
		product.NCM = *in.NCM
	}
	if in.CFOP != nil {
		if err := domfiscal.ValidarCFOP(*in.CFOP); err != nil {
			return nil, domain.ErrInvalidInput
		}
		product.CFOP = *in.CFOP
	}
	if in.CSTICMS != nil {
		product.CSTICMS = *in.CSTICMS
	}
	if in.AliquotaICMS != nil {
		product.AliquotaICMS = *in.AliquotaICMS
	}
	if in.AliquotaIPI != nil {
		product.AliquotaIPI = *in.AliquotaIPI
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista produtos da empresa com paginação.
func (uc *ProductUseCase) List(companyID string, limit, offset int) (*dto.ProductListResponse, error) {
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
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete remove um produto da empresa.
func (uc *ProductUseCase) Delete(companyID, id string) error {
	if _, err := uc.findProduct(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *ProductUseCase) findProduct(companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		CompanyID:      p.CompanyID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Cost:           p.Cost,
		Stock:          p.Stock,
		Unit:           p.Unit,
		NCM:            p.NCM,
		CFOP:           p.CFOP,
		CSTICMS:        p.CSTICMS,
		CSTPISCOFINS:   p.CSTPISCOFINS,
		CSTIPI:         p.CSTIPI,
		AliquotaICMS:   p.AliquotaICMS,
		AliquotaIPI:    p.AliquotaIPI,
		AliquotaPIS:    p.AliquotaPIS,
		AliquotaCOFINS: p.AliquotaCOFINS,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
