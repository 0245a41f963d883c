package repository

import "github.com/gestaolivre/fiscal-api/internal/domain/entity"

// NotaFiscalRepository define a porta de persistência para NotaFiscal e itens.
type NotaFiscalRepository interface {
	Create(nota *entity.NotaFiscal) error
	GetByID(id string) (*entity.NotaFiscal, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.NotaFiscal, error)
	// ListByCompanyAll devolve todas as notas da empresa (dashboard e totais).
	ListByCompanyAll(companyID string) ([]*entity.NotaFiscal, error)
	UpdateStatus(id, status string) error
	// NextNumero devolve o próximo número sequencial da série para a empresa.
	NextNumero(companyID, serie string) (int64, error)
}
