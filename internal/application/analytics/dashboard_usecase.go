// Package analytics contém os casos de uso de relatórios e do painel.
package analytics

import (
	"context"
	"fmt"

	"github.com/gestaolivre/fiscal-api/internal/application/dto"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/repository"
)

// DashboardUseCase produz o resumo de emissão da empresa.
//
// O resumo é sempre recomputado a partir das notas persistidas; nenhum
// agregado é mantido em cache ou em coluna separada.
type DashboardUseCase struct {
	notaRepo repository.NotaFiscalRepository
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(notaRepo repository.NotaFiscalRepository) *DashboardUseCase {
	return &DashboardUseCase{notaRepo: notaRepo}
}

// GetResumo monta o DashboardResumoDTO da empresa: contagem de notas por
// status e somatório dos totais das autorizadas.
func (uc *DashboardUseCase) GetResumo(ctx context.Context, companyID string) (*dto.DashboardResumoDTO, error) {
	notas, err := uc.notaRepo.ListByCompanyAll(companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar notas: %w", err)
	}

	resumo := &dto.DashboardResumoDTO{TotalNotas: len(notas)}
	for _, nota := range notas {
		switch nota.Status {
		case entity.NotaStatusAutorizada:
			resumo.NotasAutorizadas++
			resumo.ValorAutorizado = resumo.ValorAutorizado.Add(nota.Totais.ValorTotalNota)
			resumo.ValorICMS = resumo.ValorICMS.Add(nota.Totais.ValorICMS)
			resumo.ValorIPI = resumo.ValorIPI.Add(nota.Totais.ValorIPI)
		case entity.NotaStatusCancelada:
			resumo.NotasCanceladas++
		case entity.NotaStatusRascunho:
			resumo.NotasRascunho++
		}
	}
	resumo.ValorAutorizado = resumo.ValorAutorizado.Round(2)
	resumo.ValorICMS = resumo.ValorICMS.Round(2)
	resumo.ValorIPI = resumo.ValorIPI.Round(2)
	return resumo, nil
}
