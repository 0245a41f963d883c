package repository

import "github.com/gestaolivre/fiscal-api/internal/domain/entity"

// CompanyRepository define a porta de persistência para Company (emitente).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByCNPJ(cnpj string) (*entity.Company, error)
}
