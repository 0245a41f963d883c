// Montagem do XML da NF-e modelo 55 (layout 4.00), sem assinatura digital.
// O documento gerado é o infNFe pronto para ser assinado e transmitido por um
// serviço externo; essa etapa fica fora da aplicação.

package nfe

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/gestaolivre/fiscal-api/internal/application/billing"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/fiscal"
	pkgfiscal "github.com/gestaolivre/fiscal-api/pkg/fiscal"
)

// Namespace oficial do portal da NF-e.
const NamespaceNFe = "http://www.portalfiscal.inf.br/nfe"

var _ billing.NotaXMLBuilder = (*XMLBuilderService)(nil)

// XMLBuilderService constrói o XML da NF-e a partir da nota persistida.
type XMLBuilderService struct {
	ambiente string // "1" = produção, "2" = homologação
}

// NewXMLBuilderService cria o serviço.
func NewXMLBuilderService(ambiente string) *XMLBuilderService {
	if ambiente == "" {
		ambiente = "2"
	}
	return &XMLBuilderService{ambiente: ambiente}
}

// BuildNotaXML gera o documento NFe/infNFe indentado como string.
func (s *XMLBuilderService) BuildNotaXML(company *entity.Company, nota *entity.NotaFiscal) (string, error) {
	if company == nil || nota == nil {
		return "", fmt.Errorf("nfe: company e nota são obrigatórios")
	}
	if len(nota.ChaveAcesso) != 44 {
		return "", fmt.Errorf("nfe: chave de acesso ausente ou malformada")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	nfe := doc.CreateElement("NFe")
	nfe.CreateAttr("xmlns", NamespaceNFe)

	inf := nfe.CreateElement("infNFe")
	inf.CreateAttr("Id", "NFe"+nota.ChaveAcesso)
	inf.CreateAttr("versao", "4.00")

	s.writeIde(inf, nota)
	s.writeEmit(inf, company)
	s.writeDest(inf, nota)
	for i, item := range nota.Itens {
		s.writeDet(inf, i+1, item)
	}
	s.writeTotal(inf, nota.Totais)

	doc.Indent(2)
	return doc.WriteToString()
}

// writeIde bloco de identificação: a maior parte dos campos sai da própria
// chave de acesso para manter os dois consistentes.
func (s *XMLBuilderService) writeIde(inf *etree.Element, nota *entity.NotaFiscal) {
	chave := nota.ChaveAcesso
	ide := inf.CreateElement("ide")
	ide.CreateElement("cUF").SetText(chave[0:2])
	ide.CreateElement("cNF").SetText(chave[35:43])
	ide.CreateElement("natOp").SetText("VENDA")
	ide.CreateElement("mod").SetText(pkgfiscal.ModeloNFe)
	ide.CreateElement("serie").SetText(nota.Serie)
	ide.CreateElement("nNF").SetText(nota.Numero)
	ide.CreateElement("dhEmi").SetText(nota.Emissao.Format("2006-01-02T15:04:05-07:00"))
	ide.CreateElement("tpNF").SetText("1") // saída
	ide.CreateElement("tpEmis").SetText(chave[34:35])
	ide.CreateElement("cDV").SetText(chave[43:44])
	ide.CreateElement("tpAmb").SetText(s.ambiente)
}

func (s *XMLBuilderService) writeEmit(inf *etree.Element, company *entity.Company) {
	emit := inf.CreateElement("emit")
	emit.CreateElement("CNPJ").SetText(soDigitos(company.CNPJ))
	emit.CreateElement("xNome").SetText(company.Name)
	if company.IE != "" {
		emit.CreateElement("IE").SetText(soDigitos(company.IE))
	}
	if company.Endereco != "" {
		ender := emit.CreateElement("enderEmit")
		ender.CreateElement("xLgr").SetText(company.Endereco)
	}
}

func (s *XMLBuilderService) writeDest(inf *etree.Element, nota *entity.NotaFiscal) {
	dest := inf.CreateElement("dest")
	documento := soDigitos(nota.CustomerDocumento)
	if len(documento) == 14 {
		dest.CreateElement("CNPJ").SetText(documento)
	} else {
		dest.CreateElement("CPF").SetText(documento)
	}
	dest.CreateElement("xNome").SetText(nota.CustomerNome)
	if nota.CustomerEndereco != "" {
		ender := dest.CreateElement("enderDest")
		ender.CreateElement("xLgr").SetText(nota.CustomerEndereco)
	}
}

func (s *XMLBuilderService) writeDet(inf *etree.Element, nItem int, item entity.ItemNota) {
	trib := item.Tributacao

	det := inf.CreateElement("det")
	det.CreateAttr("nItem", fmt.Sprintf("%d", nItem))

	prod := det.CreateElement("prod")
	cProd := item.ProductID
	if cProd == "" {
		cProd = item.ID
	}
	prod.CreateElement("cProd").SetText(cProd)
	prod.CreateElement("xProd").SetText(item.Descricao)
	prod.CreateElement("NCM").SetText(soDigitos(trib.Fiscal.NCM))
	prod.CreateElement("CFOP").SetText(trib.Fiscal.CFOP)
	prod.CreateElement("uCom").SetText("UN")
	prod.CreateElement("qCom").SetText(item.Quantidade.StringFixed(4))
	prod.CreateElement("vUnCom").SetText(item.ValorUnitario.StringFixed(2))
	prod.CreateElement("vProd").SetText(item.ValorTotal.StringFixed(2))
	if trib.Desconto.Valor.IsPositive() || trib.Desconto.Percentual.IsPositive() {
		desconto := item.ValorTotal.Sub(fiscal.AplicarDesconto(item.ValorTotal, trib.Desconto))
		if desconto.IsPositive() {
			prod.CreateElement("vDesc").SetText(desconto.StringFixed(2))
		}
	}
	if trib.ValorFrete.IsPositive() {
		prod.CreateElement("vFrete").SetText(trib.ValorFrete.StringFixed(2))
	}
	if trib.ValorSeguro.IsPositive() {
		prod.CreateElement("vSeg").SetText(trib.ValorSeguro.StringFixed(2))
	}
	if trib.OutrasDespesas.IsPositive() {
		prod.CreateElement("vOutro").SetText(trib.OutrasDespesas.StringFixed(2))
	}

	imposto := det.CreateElement("imposto")
	s.writeICMS(imposto, trib)
	s.writeIPI(imposto, trib)
	s.writePISCOFINS(imposto, trib)
}

func (s *XMLBuilderService) writeICMS(imposto *etree.Element, trib entity.Tributacao) {
	if !trib.ICMS.Enabled {
		return
	}
	icms := imposto.CreateElement("ICMS")
	// Grupo pelo CST: com ST informado, o layout pede o grupo ICMS10.
	var grupo *etree.Element
	if trib.ICMS.ValorST.IsPositive() || trib.ICMS.BaseCalculoST.IsPositive() {
		grupo = icms.CreateElement("ICMS10")
	} else {
		grupo = icms.CreateElement("ICMS00")
	}
	grupo.CreateElement("orig").SetText(trib.Fiscal.Origem)
	grupo.CreateElement("CST").SetText(trib.Fiscal.CSTICMS)
	grupo.CreateElement("vBC").SetText(trib.ICMS.BaseCalculo.StringFixed(2))
	grupo.CreateElement("pICMS").SetText(trib.ICMS.Aliquota.StringFixed(2))
	grupo.CreateElement("vICMS").SetText(trib.ICMS.Valor.StringFixed(2))
	if grupo.Tag == "ICMS10" {
		grupo.CreateElement("vBCST").SetText(trib.ICMS.BaseCalculoST.StringFixed(2))
		grupo.CreateElement("pICMSST").SetText(trib.ICMS.AliquotaST.StringFixed(2))
		grupo.CreateElement("vICMSST").SetText(trib.ICMS.ValorST.StringFixed(2))
		if trib.ICMS.ValorFCPST.IsPositive() {
			grupo.CreateElement("vBCFCPST").SetText(trib.ICMS.BaseFCPST.StringFixed(2))
			grupo.CreateElement("vFCPST").SetText(trib.ICMS.ValorFCPST.StringFixed(2))
		}
	}
}

func (s *XMLBuilderService) writeIPI(imposto *etree.Element, trib entity.Tributacao) {
	if !trib.IPI.Aliquota.IsPositive() {
		return
	}
	ipi := imposto.CreateElement("IPI")
	ipiTrib := ipi.CreateElement("IPITrib")
	ipiTrib.CreateElement("CST").SetText(trib.Fiscal.CSTIPI)
	ipiTrib.CreateElement("vBC").SetText(trib.IPI.BaseCalculo.StringFixed(2))
	ipiTrib.CreateElement("pIPI").SetText(trib.IPI.Aliquota.StringFixed(2))
	ipiTrib.CreateElement("vIPI").SetText(trib.IPI.Valor.StringFixed(2))
}

func (s *XMLBuilderService) writePISCOFINS(imposto *etree.Element, trib entity.Tributacao) {
	pis := imposto.CreateElement("PIS")
	pisAliq := pis.CreateElement("PISAliq")
	pisAliq.CreateElement("CST").SetText(trib.Fiscal.CSTPISCOFINS)
	pisAliq.CreateElement("vBC").SetText(trib.PIS.BaseCalculo.StringFixed(2))
	pisAliq.CreateElement("pPIS").SetText(trib.PIS.Aliquota.StringFixed(2))
	pisAliq.CreateElement("vPIS").SetText(trib.PIS.Valor.StringFixed(2))

	cofins := imposto.CreateElement("COFINS")
	cofinsAliq := cofins.CreateElement("COFINSAliq")
	cofinsAliq.CreateElement("CST").SetText(trib.Fiscal.CSTPISCOFINS)
	cofinsAliq.CreateElement("vBC").SetText(trib.COFINS.BaseCalculo.StringFixed(2))
	cofinsAliq.CreateElement("pCOFINS").SetText(trib.COFINS.Aliquota.StringFixed(2))
	cofinsAliq.CreateElement("vCOFINS").SetText(trib.COFINS.Valor.StringFixed(2))
}

func (s *XMLBuilderService) writeTotal(inf *etree.Element, t entity.TotaisNota) {
	total := inf.CreateElement("total")
	icmsTot := total.CreateElement("ICMSTot")
	icmsTot.CreateElement("vICMS").SetText(t.ValorICMS.StringFixed(2))
	icmsTot.CreateElement("vST").SetText(t.ValorICMSST.StringFixed(2))
	icmsTot.CreateElement("vProd").SetText(t.ValorProdutos.StringFixed(2))
	icmsTot.CreateElement("vFrete").SetText(t.ValorFrete.StringFixed(2))
	icmsTot.CreateElement("vSeg").SetText(t.ValorSeguro.StringFixed(2))
	icmsTot.CreateElement("vDesc").SetText(t.ValorDesconto.StringFixed(2))
	icmsTot.CreateElement("vIPI").SetText(t.ValorIPI.StringFixed(2))
	icmsTot.CreateElement("vPIS").SetText(t.ValorPIS.StringFixed(2))
	icmsTot.CreateElement("vCOFINS").SetText(t.ValorCOFINS.StringFixed(2))
	icmsTot.CreateElement("vOutro").SetText(t.OutrasDespesas.StringFixed(2))
	icmsTot.CreateElement("vNF").SetText(t.ValorTotalNota.StringFixed(2))
}

// soDigitos remove máscara de documentos e códigos (pontos, traços, barras).
func soDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
