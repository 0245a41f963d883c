package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/fiscal-api/internal/application/dto"
	"github.com/gestaolivre/fiscal-api/internal/application/usecase"
	"github.com/gestaolivre/fiscal-api/internal/domain"
)

// CompanyHandler cadastro e consulta da empresa emitente.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create cadastra a empresa emitente. Rota pública: é o primeiro passo do
// onboarding, antes de existir qualquer usuário para autenticar.
// POST /api/companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body inválido"})
	}
	company, err := h.uc.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CNPJ_EXISTS", Message: "já existe uma empresa com esse CNPJ"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro ao cadastrar a empresa"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// Me devolve a empresa do token.
// GET /api/companies/me
func (h *CompanyHandler) Me(c *fiber.Ctx) error {
	company, err := h.uc.GetByID(GetCompanyID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro ao consultar a empresa"})
	}
	return c.Status(fiber.StatusOK).JSON(company)
}
