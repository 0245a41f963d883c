package fiscal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	pkgfiscal "github.com/gestaolivre/fiscal-api/pkg/fiscal"
)

// Limite superior de sanidade para valores monetários.
var valorMonetarioMaximo = decimal.RequireFromString("999999999.99")

// quantidadeMinima menor quantidade emitível numa linha.
var quantidadeMinima = decimal.RequireFromString("0.001")

// Resultado de validação de um item: a lista completa de problemas, nunca
// apenas o primeiro. A UI exibe todos de uma vez.
type Resultado struct {
	Valido bool     `json:"valido"`
	Erros  []string `json:"erros"`
}

// ResultadoNota resultado agregado da nota: erros de cabeçalho mais o
// resultado de cada item, na mesma ordem. A nota é emitível somente se o
// cabeçalho e todos os itens passarem.
type ResultadoNota struct {
	Valido bool        `json:"valido"`
	Erros  []string    `json:"erros"`
	Itens  []Resultado `json:"itens"`
}

// ValidarCFOP exige 4 dígitos e pertencimento à lista fechada de CFOPs
// conhecidos. Um código de 4 dígitos fora da lista é rejeitado: a lista é
// autoritativa, não um mero check de formato.
func ValidarCFOP(cfop string) error {
	if len(cfop) != 4 {
		return fmt.Errorf("CFOP deve ter 4 dígitos")
	}
	if !pkgfiscal.ValidCFOPCodes[cfop] {
		return fmt.Errorf("CFOP inválido")
	}
	return nil
}

// ValidarNCM exige 8 dígitos numéricos, ignorando pontos e espaços.
func ValidarNCM(ncm string) error {
	if ncm == "" {
		return fmt.Errorf("NCM é obrigatório")
	}
	limpo := strings.Map(func(r rune) rune {
		if r == '.' || r == ' ' {
			return -1
		}
		return r
	}, ncm)
	if len(limpo) != 8 {
		return fmt.Errorf("NCM deve ter 8 dígitos numéricos")
	}
	for _, r := range limpo {
		if r < '0' || r > '9' {
			return fmt.Errorf("NCM deve ter 8 dígitos numéricos")
		}
	}
	return nil
}

// Tipos de código de situação tributária aceitos por ValidarCST.
const (
	TipoCSTICMS   = "ICMS"
	TipoCSTIPI    = "IPI"
	TipoCSTPIS    = "PIS"
	TipoCSTCOFINS = "COFINS"
	TipoCSOSN     = "CSOSN"
)

// ValidarCST valida o código de situação tributária contra a lista fechada
// do tipo indicado. Código vazio falha sempre, independentemente do tipo.
func ValidarCST(cst, tipo string) error {
	if cst == "" {
		return fmt.Errorf("%s é obrigatório", tipo)
	}
	var validos map[string]bool
	switch tipo {
	case TipoCSTICMS:
		validos = pkgfiscal.ValidCSTICMSCodes
	case TipoCSTIPI:
		validos = pkgfiscal.ValidCSTIPICodes
	case TipoCSTPIS, TipoCSTCOFINS:
		validos = pkgfiscal.ValidCSTPISCOFINSCodes
	case TipoCSOSN:
		validos = pkgfiscal.ValidCSOSNCodes
	}
	if !validos[cst] {
		return fmt.Errorf("%s %s é inválido", tipo, cst)
	}
	return nil
}

// ValidarValorMonetario valida piso e teto de um valor monetário.
func ValidarValorMonetario(valor decimal.Decimal, campo string, minimo decimal.Decimal) error {
	if valor.LessThan(minimo) {
		return fmt.Errorf("%s deve ser maior ou igual a %s", campo, minimo.String())
	}
	if valor.GreaterThan(valorMonetarioMaximo) {
		return fmt.Errorf("%s muito alto", campo)
	}
	return nil
}

// ValidarAliquota valida uma alíquota percentual no intervalo [0, maximo].
func ValidarAliquota(aliquota decimal.Decimal, campo string, maximo decimal.Decimal) error {
	if aliquota.IsNegative() {
		return fmt.Errorf("%s não pode ser negativa", campo)
	}
	if aliquota.GreaterThan(maximo) {
		return fmt.Errorf("%s não pode ser maior que %s%%", campo, maximo.String())
	}
	return nil
}

// ValidarItem roda todas as validações da linha e devolve a lista completa
// de erros — sem curto-circuito no primeiro problema. CST e alíquota de ICMS
// só são exigidos quando o ICMS está habilitado na linha.
func ValidarItem(item entity.ItemNota) Resultado {
	var erros []string
	collect := func(err error) {
		if err != nil {
			erros = append(erros, err.Error())
		}
	}

	if strings.TrimSpace(item.Descricao) == "" {
		erros = append(erros, "Descrição do produto é obrigatória")
	}
	collect(ValidarValorMonetario(item.Quantidade, "Quantidade", quantidadeMinima))
	collect(ValidarValorMonetario(item.ValorUnitario, "Valor unitário", decimal.Zero))
	collect(ValidarCFOP(item.Tributacao.Fiscal.CFOP))
	collect(ValidarNCM(item.Tributacao.Fiscal.NCM))

	if item.Tributacao.ICMS.Enabled {
		collect(ValidarCST(item.Tributacao.Fiscal.CSTICMS, TipoCSTICMS))
		collect(ValidarAliquota(item.Tributacao.ICMS.Aliquota, "Alíquota ICMS", cem))
	}

	return Resultado{Valido: len(erros) == 0, Erros: erros}
}

// ValidarNota valida o cabeçalho (documento do destinatário, presença de
// itens) e cada linha. A nota é emitível somente com tudo válido.
func ValidarNota(nota entity.NotaFiscal) ResultadoNota {
	var erros []string

	if strings.TrimSpace(nota.CustomerNome) == "" {
		erros = append(erros, "Nome do destinatário é obrigatório")
	}
	if err := pkgfiscal.ValidateDocumento(nota.CustomerDocumento); err != nil {
		erros = append(erros, err.Error())
	}
	if len(nota.Itens) == 0 {
		erros = append(erros, "A nota deve ter ao menos um item")
	}

	itens := make([]Resultado, len(nota.Itens))
	valido := len(erros) == 0
	for i, item := range nota.Itens {
		itens[i] = ValidarItem(item)
		if !itens[i].Valido {
			valido = false
		}
	}

	return ResultadoNota{Valido: valido, Erros: erros, Itens: itens}
}
