package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/fiscal"
)

// DescontoDTO desconto da linha.
type DescontoDTO struct {
	Valor      decimal.Decimal `json:"valor"`
	Percentual decimal.Decimal `json:"percentual"`
}

// ICMSDTO bloco de ICMS da linha, com ST, FCP e desoneração.
// Os campos de base e valor são derivados: a UI os exibe desabilitados e o
// motor os sobrescreve em todo recálculo.
type ICMSDTO struct {
	Enabled     bool            `json:"enabled"`
	Aliquota    decimal.Decimal `json:"aliquota"`
	BaseCalculo decimal.Decimal `json:"base_calculo"`
	Valor       decimal.Decimal `json:"valor"`

	MvaST         decimal.Decimal `json:"mva_st"`
	BaseCalculoST decimal.Decimal `json:"base_calculo_st"`
	AliquotaST    decimal.Decimal `json:"aliquota_st"`
	ValorST       decimal.Decimal `json:"valor_st"`

	BaseFCPST  decimal.Decimal `json:"base_fcp_st"`
	ValorFCPST decimal.Decimal `json:"valor_fcp_st"`

	Desonerado        bool            `json:"desonerado"`
	ValorDesonerado   decimal.Decimal `json:"valor_desonerado"`
	MotivoDesoneracao string          `json:"motivo_desoneracao,omitempty"`
}

// ImpostoDTO bloco genérico alíquota/base/valor (IPI, PIS, COFINS).
type ImpostoDTO struct {
	Aliquota    decimal.Decimal `json:"aliquota"`
	BaseCalculo decimal.Decimal `json:"base_calculo"`
	Valor       decimal.Decimal `json:"valor"`
}

// InformacoesFiscaisDTO códigos fiscais da linha.
type InformacoesFiscaisDTO struct {
	CFOP         string `json:"cfop"`
	NCM          string `json:"ncm"`
	CSTICMS      string `json:"cst_icms"`
	CSTPISCOFINS string `json:"cst_pis_cofins"`
	CSTIPI       string `json:"cst_ipi"`
	Origem       string `json:"origem"`
}

// TributacaoDTO carga tributária completa de um item.
type TributacaoDTO struct {
	Desconto DescontoDTO           `json:"desconto"`
	ICMS     ICMSDTO               `json:"icms"`
	IPI      ImpostoDTO            `json:"ipi"`
	PIS      ImpostoDTO            `json:"pis"`
	COFINS   ImpostoDTO            `json:"cofins"`
	Fiscal   InformacoesFiscaisDTO `json:"informacoes_fiscais"`

	ValorSeguro       decimal.Decimal `json:"valor_seguro"`
	ValorFrete        decimal.Decimal `json:"valor_frete"`
	OutrasDespesas    decimal.Decimal `json:"outras_despesas"`
	ImpostoImportacao decimal.Decimal `json:"imposto_importacao"`
	ValorTotalItem    decimal.Decimal `json:"valor_total_item"`
}

// ItemNotaDTO linha da nota no transporte HTTP.
type ItemNotaDTO struct {
	ID            string          `json:"id,omitempty"`
	ProductID     string          `json:"product_id,omitempty"`
	Descricao     string          `json:"descricao"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	Tributacao    TributacaoDTO   `json:"tributacao"`
}

// RecalcularItemRequest evento de edição de campo vindo do formulário.
// Valor chega como texto cru do input; o motor saneia o que não parseia.
type RecalcularItemRequest struct {
	Item  ItemNotaDTO `json:"item"`
	Campo string      `json:"campo"`
	Valor string      `json:"valor"`
}

// ValidarNotaRequest nota completa para validação pré-emissão.
type ValidarNotaRequest struct {
	CustomerNome      string        `json:"customer_nome"`
	CustomerDocumento string        `json:"customer_documento"`
	Itens             []ItemNotaDTO `json:"itens"`
}

// EmitirNotaRequest body para POST /api/notas.
type EmitirNotaRequest struct {
	CustomerID string        `json:"customer_id"`
	Serie      string        `json:"serie,omitempty"`
	Itens      []ItemNotaDTO `json:"itens"`
}

// TotaisNotaDTO totais agregados da nota.
type TotaisNotaDTO struct {
	ValorProdutos  decimal.Decimal `json:"valor_produtos"`
	ValorDesconto  decimal.Decimal `json:"valor_desconto"`
	ValorICMS      decimal.Decimal `json:"valor_icms"`
	ValorICMSST    decimal.Decimal `json:"valor_icms_st"`
	ValorIPI       decimal.Decimal `json:"valor_ipi"`
	ValorPIS       decimal.Decimal `json:"valor_pis"`
	ValorCOFINS    decimal.Decimal `json:"valor_cofins"`
	ValorFrete     decimal.Decimal `json:"valor_frete"`
	ValorSeguro    decimal.Decimal `json:"valor_seguro"`
	OutrasDespesas decimal.Decimal `json:"outras_despesas"`
	ValorTotalNota decimal.Decimal `json:"valor_total_nota"`
}

// NotaResponse nota completa para GET /api/notas/:id.
type NotaResponse struct {
	ID                string        `json:"id"`
	Numero            string        `json:"numero"`
	Serie             string        `json:"serie"`
	ChaveAcesso       string        `json:"chave_acesso"`
	CustomerID        string        `json:"customer_id"`
	CustomerNome      string        `json:"customer_nome"`
	CustomerDocumento string        `json:"customer_documento"`
	Status            string        `json:"status"`
	Emissao           string        `json:"emissao"`
	Totais            TotaisNotaDTO `json:"totais"`
	Itens             []ItemNotaDTO `json:"itens"`
}

// ValidacaoNotaResponse resultado da validação pré-emissão.
// Alias do tipo de domínio para manter o contrato HTTP explícito.
type ValidacaoNotaResponse = fiscal.ResultadoNota

// ──────────────────────────────────────────────────────────────────────────────
// Mapeamento entity <-> DTO
// ──────────────────────────────────────────────────────────────────────────────

// ItemToEntity converte o DTO da linha para a entidade de domínio.
func ItemToEntity(in ItemNotaDTO) entity.ItemNota {
	return entity.ItemNota{
		ID:            in.ID,
		ProductID:     in.ProductID,
		Descricao:     in.Descricao,
		Quantidade:    in.Quantidade,
		ValorUnitario: in.ValorUnitario,
		ValorTotal:    in.ValorTotal,
		Tributacao: entity.Tributacao{
			Desconto: entity.Desconto{
				Valor:      in.Tributacao.Desconto.Valor,
				Percentual: in.Tributacao.Desconto.Percentual,
			},
			ICMS: entity.ImpostoICMS{
				Enabled:           in.Tributacao.ICMS.Enabled,
				Aliquota:          in.Tributacao.ICMS.Aliquota,
				BaseCalculo:       in.Tributacao.ICMS.BaseCalculo,
				Valor:             in.Tributacao.ICMS.Valor,
				MvaST:             in.Tributacao.ICMS.MvaST,
				BaseCalculoST:     in.Tributacao.ICMS.BaseCalculoST,
				AliquotaST:        in.Tributacao.ICMS.AliquotaST,
				ValorST:           in.Tributacao.ICMS.ValorST,
				BaseFCPST:         in.Tributacao.ICMS.BaseFCPST,
				ValorFCPST:        in.Tributacao.ICMS.ValorFCPST,
				Desonerado:        in.Tributacao.ICMS.Desonerado,
				ValorDesonerado:   in.Tributacao.ICMS.ValorDesonerado,
				MotivoDesoneracao: in.Tributacao.ICMS.MotivoDesoneracao,
			},
			IPI: entity.ImpostoIPI{
				Aliquota:    in.Tributacao.IPI.Aliquota,
				BaseCalculo: in.Tributacao.IPI.BaseCalculo,
				Valor:       in.Tributacao.IPI.Valor,
			},
			PIS: entity.ImpostoPIS{
				Aliquota:    in.Tributacao.PIS.Aliquota,
				BaseCalculo: in.Tributacao.PIS.BaseCalculo,
				Valor:       in.Tributacao.PIS.Valor,
			},
			COFINS: entity.ImpostoCOFINS{
				Aliquota:    in.Tributacao.COFINS.Aliquota,
				BaseCalculo: in.Tributacao.COFINS.BaseCalculo,
				Valor:       in.Tributacao.COFINS.Valor,
			},
			Fiscal: entity.InformacoesFiscais{
				CFOP:         in.Tributacao.Fiscal.CFOP,
				NCM:          in.Tributacao.Fiscal.NCM,
				CSTICMS:      in.Tributacao.Fiscal.CSTICMS,
				CSTPISCOFINS: in.Tributacao.Fiscal.CSTPISCOFINS,
				CSTIPI:       in.Tributacao.Fiscal.CSTIPI,
				Origem:       in.Tributacao.Fiscal.Origem,
			},
			ValorSeguro:       in.Tributacao.ValorSeguro,
			ValorFrete:        in.Tributacao.ValorFrete,
			OutrasDespesas:    in.Tributacao.OutrasDespesas,
			ImpostoImportacao: in.Tributacao.ImpostoImportacao,
			ValorTotalItem:    in.Tributacao.ValorTotalItem,
		},
	}
}

// ItemFromEntity converte a entidade da linha para o DTO.
func ItemFromEntity(item entity.ItemNota) ItemNotaDTO {
	trib := item.Tributacao
	return ItemNotaDTO{
		ID:            item.ID,
		ProductID:     item.ProductID,
		Descricao:     item.Descricao,
		Quantidade:    item.Quantidade,
		ValorUnitario: item.ValorUnitario,
		ValorTotal:    item.ValorTotal,
		Tributacao: TributacaoDTO{
			Desconto: DescontoDTO{
				Valor:      trib.Desconto.Valor,
				Percentual: trib.Desconto.Percentual,
			},
			ICMS: ICMSDTO{
				Enabled:           trib.ICMS.Enabled,
				Aliquota:          trib.ICMS.Aliquota,
				BaseCalculo:       trib.ICMS.BaseCalculo,
				Valor:             trib.ICMS.Valor,
				MvaST:             trib.ICMS.MvaST,
				BaseCalculoST:     trib.ICMS.BaseCalculoST,
				AliquotaST:        trib.ICMS.AliquotaST,
				ValorST:           trib.ICMS.ValorST,
				BaseFCPST:         trib.ICMS.BaseFCPST,
				ValorFCPST:        trib.ICMS.ValorFCPST,
				Desonerado:        trib.ICMS.Desonerado,
				ValorDesonerado:   trib.ICMS.ValorDesonerado,
				MotivoDesoneracao: trib.ICMS.MotivoDesoneracao,
			},
			IPI: ImpostoDTO{
				Aliquota:    trib.IPI.Aliquota,
				BaseCalculo: trib.IPI.BaseCalculo,
				Valor:       trib.IPI.Valor,
			},
			PIS: ImpostoDTO{
				Aliquota:    trib.PIS.Aliquota,
				BaseCalculo: trib.PIS.BaseCalculo,
				Valor:       trib.PIS.Valor,
			},
			COFINS: ImpostoDTO{
				Aliquota:    trib.COFINS.Aliquota,
				BaseCalculo: trib.COFINS.BaseCalculo,
				Valor:       trib.COFINS.Valor,
			},
			Fiscal: InformacoesFiscaisDTO{
				CFOP:         trib.Fiscal.CFOP,
				NCM:          trib.Fiscal.NCM,
				CSTICMS:      trib.Fiscal.CSTICMS,
				CSTPISCOFINS: trib.Fiscal.CSTPISCOFINS,
				CSTIPI:       trib.Fiscal.CSTIPI,
				Origem:       trib.Fiscal.Origem,
			},
			ValorSeguro:       trib.ValorSeguro,
			ValorFrete:        trib.ValorFrete,
			OutrasDespesas:    trib.OutrasDespesas,
			ImpostoImportacao: trib.ImpostoImportacao,
			ValorTotalItem:    trib.ValorTotalItem,
		},
	}
}

// TotaisFromEntity converte os totais agregados para o DTO.
func TotaisFromEntity(t entity.TotaisNota) TotaisNotaDTO {
	return TotaisNotaDTO{
		ValorProdutos:  t.ValorProdutos,
		ValorDesconto:  t.ValorDesconto,
		ValorICMS:      t.ValorICMS,
		ValorICMSST:    t.ValorICMSST,
		ValorIPI:       t.ValorIPI,
		ValorPIS:       t.ValorPIS,
		ValorCOFINS:    t.ValorCOFINS,
		ValorFrete:     t.ValorFrete,
		ValorSeguro:    t.ValorSeguro,
		OutrasDespesas: t.OutrasDespesas,
		ValorTotalNota: t.ValorTotalNota,
	}
}

// NotaFromEntity converte a nota completa para o DTO de resposta.
func NotaFromEntity(nota *entity.NotaFiscal) *NotaResponse {
	itens := make([]ItemNotaDTO, len(nota.Itens))
	for i, item := range nota.Itens {
		itens[i] = ItemFromEntity(item)
	}
	return &NotaResponse{
		ID:                nota.ID,
		Numero:            nota.Numero,
		Serie:             nota.Serie,
		ChaveAcesso:       nota.ChaveAcesso,
		CustomerID:        nota.CustomerID,
		CustomerNome:      nota.CustomerNome,
		CustomerDocumento: nota.CustomerDocumento,
		Status:            nota.Status,
		Emissao:           nota.Emissao.Format("2006-01-02T15:04:05Z07:00"),
		Totais:            TotaisFromEntity(nota.Totais),
		Itens:             itens,
	}
}
