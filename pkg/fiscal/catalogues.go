// Package fiscal contém catálogos e validações alinhados ao leiaute da
// Nota Fiscal Eletrônica (NF-e) brasileira: CFOP, NCM, CST/CSOSN e os
// algoritmos de dígito verificador de CPF e CNPJ.
package fiscal

// =============================================================================
// CFOP - Código Fiscal de Operações e Prestações
// Agrupados por natureza da operação. A lista é fechada: um código de 4
// dígitos fora dela é rejeitado.
// =============================================================================

var (
	CFOPVendaInterna         = []string{"5101", "5102", "5103", "5104", "5105"}
	CFOPDevolucaoInterna     = []string{"5201", "5202", "5208"}
	CFOPTransferenciaInterna = []string{"5151", "5152"}

	CFOPVendaInterestadual         = []string{"6101", "6102", "6103", "6104", "6105"}
	CFOPDevolucaoInterestadual     = []string{"6201", "6202", "6208"}
	CFOPTransferenciaInterestadual = []string{"6151", "6152"}

	CFOPCompraInterna        = []string{"1101", "1102", "1111"}
	CFOPCompraInterestadual  = []string{"2101", "2102", "2111"}
)

// ValidCFOPCodes contém todos os CFOPs aceitos pela aplicação.
var ValidCFOPCodes = buildCFOPIndex(
	CFOPVendaInterna,
	CFOPDevolucaoInterna,
	CFOPTransferenciaInterna,
	CFOPVendaInterestadual,
	CFOPDevolucaoInterestadual,
	CFOPTransferenciaInterestadual,
	CFOPCompraInterna,
	CFOPCompraInterestadual,
)

func buildCFOPIndex(groups ...[]string) map[string]bool {
	idx := make(map[string]bool)
	for _, g := range groups {
		for _, code := range g {
			idx[code] = true
		}
	}
	return idx
}

// =============================================================================
// CST - Código de Situação Tributária (regime normal)
// =============================================================================

// ValidCSTICMSCodes situações tributárias do ICMS (Tabela B do Convênio s/nº).
var ValidCSTICMSCodes = map[string]bool{
	"00": true, "10": true, "20": true, "30": true, "40": true,
	"41": true, "50": true, "51": true, "60": true, "70": true, "90": true,
}

// ValidCSTIPICodes situações tributárias do IPI.
var ValidCSTIPICodes = map[string]bool{
	"00": true, "49": true, "50": true, "99": true,
}

// ValidCSTPISCOFINSCodes situações tributárias de PIS e COFINS (mesma tabela).
var ValidCSTPISCOFINSCodes = map[string]bool{
	"01": true, "02": true, "03": true, "04": true, "05": true,
	"06": true, "07": true, "08": true, "09": true, "99": true,
}

// =============================================================================
// CSOSN - Código de Situação da Operação no Simples Nacional
// =============================================================================

// ValidCSOSNCodes códigos válidos para emitentes optantes do Simples Nacional.
var ValidCSOSNCodes = map[string]bool{
	"101": true, "102": true, "103": true, "201": true, "202": true,
	"203": true, "300": true, "400": true, "500": true, "900": true,
}

// =============================================================================
// Código IBGE da UF (primeiros 2 dígitos da chave de acesso)
// =============================================================================

var codigosUF = map[string]string{
	"AC": "12", "AL": "27", "AP": "16", "AM": "13", "BA": "29",
	"CE": "23", "DF": "53", "ES": "32", "GO": "52", "MA": "21",
	"MT": "51", "MS": "50", "MG": "31", "PA": "15", "PB": "25",
	"PR": "41", "PE": "26", "PI": "22", "RJ": "33", "RN": "24",
	"RS": "43", "RO": "11", "RR": "14", "SC": "42", "SP": "35",
	"SE": "28", "TO": "17",
}

// CodigoUF devolve o código IBGE da sigla da UF; "35" (SP) quando a sigla é
// desconhecida, para nunca travar a montagem da chave.
func CodigoUF(sigla string) string {
	if c, ok := codigosUF[sigla]; ok {
		return c
	}
	return "35"
}
