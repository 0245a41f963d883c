package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/fiscal-api/internal/application/analytics"
	"github.com/gestaolivre/fiscal-api/internal/application/dto"
)

// DashboardHandler resumo fiscal da empresa.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetResumo devolve contagens por status e valores agregados das notas autorizadas.
// GET /api/dashboard/resumo
func (h *DashboardHandler) GetResumo(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	resumo, err := h.uc.GetResumo(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro ao montar o resumo"})
	}
	return c.Status(fiber.StatusOK).JSON(resumo)
}
