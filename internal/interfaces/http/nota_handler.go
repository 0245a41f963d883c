package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/fiscal-api/internal/application/billing"
	"github.com/gestaolivre/fiscal-api/internal/application/dto"
	"github.com/gestaolivre/fiscal-api/internal/domain"
)

// NotaHandler expõe o ciclo de vida da nota fiscal: recálculo de linha,
// validação pré-emissão, emissão, consulta, cancelamento, XML e DANFE.
type NotaHandler struct {
	formUC   *billing.NotaFormUseCase
	emitirUC *billing.EmitirNotaUseCase
	pdfUC    *billing.NotaPDFUseCase
}

func NewNotaHandler(formUC *billing.NotaFormUseCase, emitirUC *billing.EmitirNotaUseCase, pdfUC *billing.NotaPDFUseCase) *NotaHandler {
	return &NotaHandler{formUC: formUC, emitirUC: emitirUC, pdfUC: pdfUC}
}

// RecalcularItem aplica uma edição de campo a uma linha e devolve a linha
// recalculada. Nunca falha por valor não parseável: o motor saneia para zero.
// POST /api/notas/itens/recalcular
func (h *NotaHandler) RecalcularItem(c *fiber.Ctx) error {
	var req dto.RecalcularItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body inválido"})
	}
	item := h.formUC.RecalcularItem(req)
	return c.Status(fiber.StatusOK).JSON(item)
}

// ValidarNota valida a nota inteira sem emitir. Sempre responde 200: o
// resultado carrega Valido=false e os erros por item quando a nota não passa.
// POST /api/notas/validar
func (h *NotaHandler) ValidarNota(c *fiber.Ctx) error {
	var req dto.ValidarNotaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body inválido"})
	}
	resultado := h.formUC.ValidarNota(req)
	return c.Status(fiber.StatusOK).JSON(resultado)
}

// Emitir emite uma nota fiscal: recalcula os itens no servidor, valida,
// numera a série, monta a chave de acesso e baixa o estoque na mesma transação.
// POST /api/notas
func (h *NotaHandler) Emitir(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var req dto.EmitirNotaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body inválido"})
	}
	nota, validacao, err := h.emitirUC.Emitir(c.Context(), companyID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotaNaoEmitivel):
			// A validação fiscal reprovou a nota: devolve os erros por item.
			return c.Status(fiber.StatusUnprocessableEntity).JSON(validacao)
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "o recurso não pertence à empresa do token"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro ao emitir a nota"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(nota)
}

// Get devolve a nota completa com itens.
// GET /api/notas/:id
func (h *NotaHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	nota, err := h.emitirUC.GetNota(companyID, c.Params("id"))
	if err != nil {
		return notaError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(nota)
}

// List lista as notas da empresa, mais recentes primeiro (sem itens).
// GET /api/notas?limit=&offset=
func (h *NotaHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros de paginação inválidos"})
	}
	page.DefaultPage()
	notas, err := h.emitirUC.ListNotas(companyID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro ao listar as notas"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": notas,
		"page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Cancelar cancela uma nota autorizada e devolve o estoque na mesma transação.
// POST /api/notas/:id/cancelar
func (h *NotaHandler) Cancelar(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	nota, err := h.emitirUC.Cancelar(c.Context(), companyID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotaCancelada) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CANCELLED", Message: "a nota já está cancelada"})
		}
		return notaError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(nota)
}

// XML devolve o XML da NF-e (layout 4.00, sem assinatura).
// GET /api/notas/:id/xml
func (h *NotaHandler) XML(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	xml, err := h.emitirUC.XML(companyID, c.Params("id"))
	if err != nil {
		return notaError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Status(fiber.StatusOK).SendString(xml)
}

// DANFE devolve o DANFE em PDF como download.
// GET /api/notas/:id/danfe
func (h *NotaHandler) DANFE(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	pdfBytes, filename, err := h.pdfUC.DownloadNotaPDF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return notaError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Status(fiber.StatusOK).Send(pdfBytes)
}

// notaError traduz os erros de domínio comuns das operações de nota.
func notaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota não encontrada"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "a nota não pertence à empresa do token"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
	}
}
