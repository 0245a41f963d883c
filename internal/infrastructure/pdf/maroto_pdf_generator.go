// Package pdf implementa a geração do DANFE (Documento Auxiliar da Nota
// Fiscal Eletrônica), a representação gráfica da NF-e.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razão Social + CNPJ  │  N° da Nota + Data           │
//	│  ───────────────────────────────────────────────────────────│
//	│  EMITENTE: Endereço / IE                                     │
//	│  DESTINATÁRIO: Nome + CPF/CNPJ + endereço                    │
//	│  ───────────────────────────────────────────────────────────│
//	│  TABELA: Qtd | Descrição | V.Unit | ICMS% | IPI% | Total     │
//	│  ───────────────────────────────────────────────────────────│
//	│  TOTAIS: Produtos / ICMS / IPI / Desconto / TOTAL DA NOTA    │
//	│  ───────────────────────────────────────────────────────────│
//	│  RODAPÉ: Chave de acesso + QR + legenda legal                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/gestaolivre/fiscal-api/internal/application/billing"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.NotaPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.NotaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateNotaPDF gera o DANFE e devolve seus bytes.
func (g *MarotoPDFGenerator) GenerateNotaPDF(
	_ context.Context,
	company *entity.Company,
	nota *entity.NotaFiscal,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("DANFE - Documento Auxiliar da NF-e", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	// Cabeçalho principal
	m.AddRows(headerRow(nota, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emitenteRow(company))
	m.AddRows(destinatarioRow(nota))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabela de itens
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(nota.Itens) {
		m.AddRows(r)
	}

	// Totais
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totaisRow(nota.Totais))

	// Rodapé fiscal
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range chaveFooterRows(nota) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: razão social + CNPJ (esq.) e número da nota + data (dir.).
func headerRow(nota *entity.NotaFiscal, company *entity.Company) core.Row {
	numero := fmt.Sprintf("Nº %s  Série %s", nota.Numero, nota.Serie)
	data := nota.Emissao.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+company.CNPJ, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DANFE - NOTA FISCAL ELETRÔNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emissão: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emitenteRow: dados do emitente.
func emitenteRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DADOS DO EMITENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Endereço: %s   |   IE: %s   |   UF: %s",
				nonEmpty(company.Endereco, "—"),
				nonEmpty(company.IE, "—"),
				nonEmpty(company.UF, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// destinatarioRow: dados do destinatário.
func destinatarioRow(nota *entity.NotaFiscal) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DESTINATÁRIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nota.CustomerNome, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CPF/CNPJ: %s   |   Endereço: %s",
				nota.CustomerDocumento,
				nonEmpty(nota.CustomerEndereco, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de itens.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Descrição do produto", 5, align.Left),
		h("V. Unit.", 2, align.Right),
		h("ICMS%", 1, align.Center),
		h("IPI%", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: uma linha por item da nota.
func tableItemRows(itens []entity.ItemNota) []core.Row {
	result := make([]core.Row, 0, len(itens))
	for _, item := range itens {
		trib := item.Tributacao
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				item.Quantidade.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				item.Descricao,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"R$ "+item.ValorUnitario.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				trib.ICMS.Aliquota.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				trib.IPI.Aliquota.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"R$ "+trib.ValorTotalItem.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totaisRow: bloco de totais alinhado à direita.
func totaisRow(t entity.TotaisNota) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(34).Add(
		col.New(3),
		col.New(3).Add(
			label("Produtos:"),
			label("ICMS:"),
			label("IPI:"),
			label("Desconto:"),
			grandLabel("TOTAL DA NOTA:"),
		),
		col.New(3).Add(
			value("R$ "+t.ValorProdutos.StringFixed(2)),
			value("R$ "+t.ValorICMS.StringFixed(2)),
			value("R$ "+t.ValorIPI.StringFixed(2)),
			value("R$ "+t.ValorDesconto.StringFixed(2)),
			grandValue("R$ "+t.ValorTotalNota.StringFixed(2)),
		),
		col.New(3),
	)
}

// chaveFooterRows: chave de acesso + QR de consulta + legenda legal.
func chaveFooterRows(nota *entity.NotaFiscal) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INFORMAÇÕES DA NF-e", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if nota.ChaveAcesso != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Chave de acesso:", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)))
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chaveFormatada(nota.ChaveAcesso), props.Text{
				Size: 7, Color: colorGray, Top: 0.5, Left: 2,
			}),
		)))

		rows = append(rows, row.New(3))
		rows = append(rows, row.New(50).Add(
			col.New(4).Add(code.NewQr(nota.ChaveAcesso, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Consulte pela chave de acesso no\nportal nacional da NF-e.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("DOCUMENTO AUXILIAR DA\nNOTA FISCAL ELETRÔNICA", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 22,
					Left: 3, Color: colorPrimary,
				}),
			),
		))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"O DANFE é uma representação simplificada da NF-e e não substitui o "+
				"arquivo XML. Conserve este documento como suporte fiscal.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// chaveFormatada agrupa a chave em blocos de 4 dígitos, como no DANFE oficial.
func chaveFormatada(chave string) string {
	buf := make([]byte, 0, len(chave)+len(chave)/4)
	for i := 0; i < len(chave); i += 4 {
		if i > 0 {
			buf = append(buf, ' ')
		}
		end := i + 4
		if end > len(chave) {
			end = len(chave)
		}
		buf = append(buf, chave[i:end]...)
	}
	return string(buf)
}
