package nfe_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/fiscal"
	"github.com/gestaolivre/fiscal-api/internal/infrastructure/nfe"
	pkgfiscal "github.com/gestaolivre/fiscal-api/pkg/fiscal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildNota(t *testing.T) (*entity.Company, *entity.NotaFiscal) {
	t.Helper()
	company := &entity.Company{
		ID:   "empresa-1",
		Name: "Gestão Livre Comércio Ltda",
		CNPJ: "11.222.333/0001-81",
		IE:   "123456789",
		UF:   "SP",
	}
	emissao := time.Date(2024, 1, 15, 10, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	chave, err := pkgfiscal.BuildChaveAcesso(
		pkgfiscal.CodigoUF(company.UF), emissao, company.CNPJ, "1", "21", "12345678",
	)
	require.NoError(t, err)

	item := entity.ItemNota{
		ID:            "item-1",
		Descricao:     "Caneta esferográfica",
		Quantidade:    dec("10"),
		ValorUnitario: dec("2.50"),
		Tributacao:    fiscal.DefaultTributacao(),
	}
	item.Tributacao.ICMS.Aliquota = dec("18")
	item.Tributacao.Fiscal.NCM = "96081000"
	item = fiscal.Recalcular(item)

	nota := &entity.NotaFiscal{
		ID:                "nota-1",
		CompanyID:         company.ID,
		Numero:            "21",
		Serie:             "1",
		ChaveAcesso:       chave,
		CustomerNome:      "Cliente Exemplo",
		CustomerDocumento: "111.444.777-35",
		Itens:             []entity.ItemNota{item},
		Status:            entity.NotaStatusAutorizada,
		Emissao:           emissao,
	}
	nota.Totais = fiscal.CalcularTotais(nota.Itens)
	return company, nota
}

func TestBuildNotaXML_EstruturaBasica(t *testing.T) {
	company, nota := buildNota(t)
	builder := nfe.NewXMLBuilderService("2")

	out, err := builder.BuildNotaXML(company, nota)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(out))

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "NFe", root.Tag)
	assert.Equal(t, nfe.NamespaceNFe, root.SelectAttrValue("xmlns", ""))

	inf := root.SelectElement("infNFe")
	require.NotNil(t, inf)
	assert.Equal(t, "NFe"+nota.ChaveAcesso, inf.SelectAttrValue("Id", ""))
	assert.Equal(t, "4.00", inf.SelectAttrValue("versao", ""))
}

func TestBuildNotaXML_IdeConsistenteComAChave(t *testing.T) {
	company, nota := buildNota(t)
	builder := nfe.NewXMLBuilderService("2")

	out, err := builder.BuildNotaXML(company, nota)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(out))
	ide := doc.FindElement("//infNFe/ide")
	require.NotNil(t, ide)

	assert.Equal(t, "35", ide.SelectElement("cUF").Text(), "código da UF de SP")
	assert.Equal(t, "55", ide.SelectElement("mod").Text())
	assert.Equal(t, "1", ide.SelectElement("serie").Text())
	assert.Equal(t, "21", ide.SelectElement("nNF").Text())
	assert.Equal(t, "12345678", ide.SelectElement("cNF").Text())
	assert.Equal(t, "2", ide.SelectElement("tpAmb").Text(), "homologação")
	assert.Equal(t, nota.ChaveAcesso[43:], ide.SelectElement("cDV").Text())
}

func TestBuildNotaXML_DestinatarioCPFSemMascara(t *testing.T) {
	company, nota := buildNota(t)
	builder := nfe.NewXMLBuilderService("2")

	out, err := builder.BuildNotaXML(company, nota)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(out))

	dest := doc.FindElement("//infNFe/dest")
	require.NotNil(t, dest)
	require.NotNil(t, dest.SelectElement("CPF"), "documento de 11 dígitos entra como CPF")
	assert.Equal(t, "11144477735", dest.SelectElement("CPF").Text())

	emit := doc.FindElement("//infNFe/emit")
	require.NotNil(t, emit)
	assert.Equal(t, "11222333000181", emit.SelectElement("CNPJ").Text())
}

func TestBuildNotaXML_ImpostosETotais(t *testing.T) {
	company, nota := buildNota(t)
	builder := nfe.NewXMLBuilderService("2")

	out, err := builder.BuildNotaXML(company, nota)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(out))

	// 10 x 2,50 com ICMS 18% e sem ST -> grupo ICMS00
	icms := doc.FindElement("//det/imposto/ICMS/ICMS00")
	require.NotNil(t, icms)
	assert.Equal(t, "25.00", icms.SelectElement("vBC").Text())
	assert.Equal(t, "4.50", icms.SelectElement("vICMS").Text())

	tot := doc.FindElement("//infNFe/total/ICMSTot")
	require.NotNil(t, tot)
	assert.Equal(t, "25.00", tot.SelectElement("vProd").Text())
	assert.Equal(t, "25.00", tot.SelectElement("vNF").Text())
	assert.Equal(t, "4.50", tot.SelectElement("vICMS").Text())
}

func TestBuildNotaXML_SemChaveFalha(t *testing.T) {
	company, nota := buildNota(t)
	nota.ChaveAcesso = ""
	builder := nfe.NewXMLBuilderService("2")

	_, err := builder.BuildNotaXML(company, nota)
	assert.Error(t, err)
}
