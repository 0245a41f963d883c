// Package fiscal implementa o núcleo fiscal da aplicação: o motor de cálculo
// de impostos por item (ICMS, ICMS-ST, IPI, PIS, COFINS), os validadores de
// campos fiscais e a agregação de totais da nota.
//
// Todas as funções são puras: recebem e devolvem valores simples, sem I/O e
// sem estado compartilhado, e podem ser chamadas concorrentemente de
// quaisquer pontos da aplicação.
package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
)

// Campos cuja edição dispara o recálculo completo da linha. A lista é
// deliberadamente fechada: editar códigos fiscais (CFOP, NCM, CST) altera o
// campo mas nunca mexe em valores monetários.
var camposRecalculo = map[string]bool{
	"quantidade":          true,
	"valorUnitario":       true,
	"desconto.valor":      true,
	"desconto.percentual": true,
	"ipi.aliquota":        true,
	"icms.aliquota":       true,
	"icms.mvaSt":          true,
	"icms.aliquotaSt":     true,
	"outrasDespesas":      true,
	"valorSeguro":         true,
}

var (
	cem = decimal.NewFromInt(100)

	// Alíquota fixa do FCP-ST (2%). Valor de demonstração: numa implantação
	// real a alíquota varia por UF e viria de configuração.
	aliquotaFCPST = decimal.NewFromInt(2)
)

// AplicarEdicao aplica a edição de um campo do item e, se o campo estiver na
// lista de gatilho, executa o recálculo completo. Valores numéricos que não
// parseiam, ou negativos, são saneados para 0: o motor nunca falha no meio da
// digitação — apontar estado inválido é papel dos validadores, na submissão.
//
// O item de entrada nunca é modificado; a cópia atualizada é devolvida.
func AplicarEdicao(item entity.ItemNota, campo, valor string) entity.ItemNota {
	item = aplicarCampo(item, campo, valor)
	if camposRecalculo[campo] {
		item = Recalcular(item)
	}
	return item
}

// Recalcular executa a cascata completa de cálculo da linha, nesta ordem
// fixa (cada passo alimenta o seguinte; reordenar muda o resultado):
//
//  1. Valor bruto = quantidade * valor unitário
//  2. Base com desconto (percentual primeiro, depois o valor fixo)
//  3. ICMS (se habilitado): base = base com desconto
//  4. ICMS-ST (se MVA > 0): ST bruto menos ICMS interno, piso em zero
//  5. IPI: base = valor bruto, sem desconto
//  6. PIS e COFINS: base = valor bruto + IPI
//  7. FCP-ST (se base > 0): 2% fixo
//  8. Total da linha = bruto + IPI + outras despesas + seguro
//
// Arredondamento a 2 casas em cada valor derivado, no momento em que é
// produzido, para não acumular deriva de centavos entre os passos.
func Recalcular(item entity.ItemNota) entity.ItemNota {
	item = sanearEntradas(item)
	trib := item.Tributacao

	// 1. Valor bruto da linha
	bruto := item.Quantidade.Mul(item.ValorUnitario).Round(2)
	item.ValorTotal = bruto

	// 2. Base de cálculo com desconto
	baseDesconto := AplicarDesconto(bruto, trib.Desconto)

	// 3. ICMS
	if trib.ICMS.Enabled {
		trib.ICMS.BaseCalculo = baseDesconto
		trib.ICMS.Valor = baseDesconto.Mul(trib.ICMS.Aliquota).Div(cem).Round(2)
	}

	// 4. ICMS-ST: base com MVA, valor = ICMS da ST menos ICMS interno.
	// O piso em zero vale mesmo quando o ICMS interno supera o da ST.
	if trib.ICMS.MvaST.GreaterThan(decimal.Zero) {
		bcST := baseDesconto.Mul(decimal.NewFromInt(1).Add(trib.ICMS.MvaST.Div(cem))).Round(2)
		icmsInterno := baseDesconto.Mul(trib.ICMS.Aliquota).Div(cem).Round(2)
		icmsST := bcST.Mul(trib.ICMS.AliquotaST).Div(cem).Round(2)
		trib.ICMS.BaseCalculoST = bcST
		trib.ICMS.ValorST = decimal.Max(decimal.Zero, icmsST.Sub(icmsInterno).Round(2))
	}

	// 5. IPI incide sobre o valor bruto, sem desconto
	trib.IPI.BaseCalculo = bruto
	trib.IPI.Valor = bruto.Mul(trib.IPI.Aliquota).Div(cem).Round(2)

	// 6. PIS e COFINS: base = bruto + IPI
	basePisCofins := bruto.Add(trib.IPI.Valor)
	trib.PIS.BaseCalculo = basePisCofins
	trib.PIS.Valor = basePisCofins.Mul(trib.PIS.Aliquota).Div(cem).Round(2)
	trib.COFINS.BaseCalculo = basePisCofins
	trib.COFINS.Valor = basePisCofins.Mul(trib.COFINS.Aliquota).Div(cem).Round(2)

	// 7. FCP-ST com alíquota fixa de 2%
	if trib.ICMS.BaseFCPST.GreaterThan(decimal.Zero) {
		trib.ICMS.ValorFCPST = trib.ICMS.BaseFCPST.Mul(aliquotaFCPST).Div(cem).Round(2)
	}

	// 8. Total da linha. Frete e imposto de importação entram apenas nos
	// totais da nota, não no total do item.
	trib.ValorTotalItem = bruto.Add(trib.IPI.Valor).Add(trib.OutrasDespesas).Add(trib.ValorSeguro)

	item.Tributacao = trib
	return item
}

// AplicarDesconto aplica o desconto sobre uma base: primeiro o percentual,
// depois o valor fixo, com piso em zero.
func AplicarDesconto(base decimal.Decimal, d entity.Desconto) decimal.Decimal {
	comPercentual := base.Mul(decimal.NewFromInt(1).Sub(d.Percentual.Div(cem)))
	return decimal.Max(decimal.Zero, comPercentual.Sub(d.Valor).Round(2))
}

// aplicarCampo grava o novo valor no caminho indicado. Campos numéricos
// passam por parseValor; campos de texto são gravados como chegam. Caminhos
// desconhecidos são ignorados em silêncio.
func aplicarCampo(item entity.ItemNota, campo, valor string) entity.ItemNota {
	switch campo {
	case "descricao":
		item.Descricao = valor
	case "quantidade":
		item.Quantidade = parseValor(valor)
	case "valorUnitario":
		item.ValorUnitario = parseValor(valor)
	case "desconto.valor":
		item.Tributacao.Desconto.Valor = parseValor(valor)
	case "desconto.percentual":
		item.Tributacao.Desconto.Percentual = parseValor(valor)
	case "icms.enabled":
		item.Tributacao.ICMS.Enabled = valor == "true" || valor == "1"
	case "icms.aliquota":
		item.Tributacao.ICMS.Aliquota = parseValor(valor)
	case "icms.mvaSt":
		item.Tributacao.ICMS.MvaST = parseValor(valor)
	case "icms.aliquotaSt":
		item.Tributacao.ICMS.AliquotaST = parseValor(valor)
	case "icms.bcFcpSt":
		item.Tributacao.ICMS.BaseFCPST = parseValor(valor)
	case "icms.desonerado":
		item.Tributacao.ICMS.Desonerado = valor == "true" || valor == "1"
	case "icms.valorDesonerado":
		item.Tributacao.ICMS.ValorDesonerado = parseValor(valor)
	case "ipi.aliquota":
		item.Tributacao.IPI.Aliquota = parseValor(valor)
	case "pis.aliquota":
		item.Tributacao.PIS.Aliquota = parseValor(valor)
	case "cofins.aliquota":
		item.Tributacao.COFINS.Aliquota = parseValor(valor)
	case "valorSeguro":
		item.Tributacao.ValorSeguro = parseValor(valor)
	case "valorFrete":
		item.Tributacao.ValorFrete = parseValor(valor)
	case "outrasDespesas":
		item.Tributacao.OutrasDespesas = parseValor(valor)
	case "impostoImportacao":
		item.Tributacao.ImpostoImportacao = parseValor(valor)
	case "cfop":
		item.Tributacao.Fiscal.CFOP = valor
	case "ncm":
		item.Tributacao.Fiscal.NCM = valor
	case "cstIcms":
		item.Tributacao.Fiscal.CSTICMS = valor
	case "cstPisCofins":
		item.Tributacao.Fiscal.CSTPISCOFINS = valor
	case "cstIpi":
		item.Tributacao.Fiscal.CSTIPI = valor
	case "origem":
		item.Tributacao.Fiscal.Origem = valor
	}
	return item
}

// parseValor converte a entrada do formulário em decimal. Entrada que não
// parseia vira 0; negativos também viram 0.
func parseValor(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// sanearEntradas zera entradas numéricas negativas antes da cascata, para o
// caso de o item chegar montado de fora (API) em vez de campo a campo.
func sanearEntradas(item entity.ItemNota) entity.ItemNota {
	item.Quantidade = naoNegativo(item.Quantidade)
	item.ValorUnitario = naoNegativo(item.ValorUnitario)
	item.Tributacao.Desconto.Valor = naoNegativo(item.Tributacao.Desconto.Valor)
	item.Tributacao.Desconto.Percentual = naoNegativo(item.Tributacao.Desconto.Percentual)
	item.Tributacao.ICMS.Aliquota = naoNegativo(item.Tributacao.ICMS.Aliquota)
	item.Tributacao.ICMS.MvaST = naoNegativo(item.Tributacao.ICMS.MvaST)
	item.Tributacao.ICMS.AliquotaST = naoNegativo(item.Tributacao.ICMS.AliquotaST)
	item.Tributacao.ICMS.BaseFCPST = naoNegativo(item.Tributacao.ICMS.BaseFCPST)
	item.Tributacao.IPI.Aliquota = naoNegativo(item.Tributacao.IPI.Aliquota)
	item.Tributacao.PIS.Aliquota = naoNegativo(item.Tributacao.PIS.Aliquota)
	item.Tributacao.COFINS.Aliquota = naoNegativo(item.Tributacao.COFINS.Aliquota)
	item.Tributacao.ValorSeguro = naoNegativo(item.Tributacao.ValorSeguro)
	item.Tributacao.ValorFrete = naoNegativo(item.Tributacao.ValorFrete)
	item.Tributacao.OutrasDespesas = naoNegativo(item.Tributacao.OutrasDespesas)
	item.Tributacao.ImpostoImportacao = naoNegativo(item.Tributacao.ImpostoImportacao)
	return item
}

func naoNegativo(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
